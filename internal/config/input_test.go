package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/rgehrsitz/isoamt/internal/optimizer"
	"github.com/rgehrsitz/isoamt/internal/secure"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPlan = `
tax_year: 2025
filing_status: single
ordinary_income: 180000
itemized_deductions: 0
iso_strike: 0.50
iso_fmv: 25
total_shares_available: 20000
target_amt_budget: 15000
`

func TestLoadFromFile_Fixture(t *testing.T) {
	plan, err := NewInputParser().LoadFromFile(filepath.Join("..", "..", "testdata", "plan_single.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 2024, plan.TaxYear)
	assert.Equal(t, "holder@example.com", plan.Email)
	assert.True(t, plan.OrdinaryIncome.Equal(decimal.NewFromInt(150000)))
	assert.True(t, plan.ISOFMV.Equal(decimal.NewFromInt(10)))

	in, err := plan.OptimizationInput()
	require.NoError(t, err)
	assert.Equal(t, domain.FilingStatusSingle, in.FilingStatus)
	assert.Equal(t, int64(10000), in.TotalSharesAvailable)
	assert.True(t, in.TargetAMTBudget.Equal(decimal.NewFromInt(5000)))
}

func TestLoadFromFile_MarriedAlias(t *testing.T) {
	plan, err := NewInputParser().LoadFromFile(filepath.Join("..", "..", "testdata", "plan_married.yaml"))
	require.NoError(t, err)

	in, err := plan.OptimizationInput()
	require.NoError(t, err)
	assert.Equal(t, domain.FilingStatusMarried, in.FilingStatus)
}

func TestLoadFromFile_FractionalShares(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join("..", "..", "testdata", "plan_invalid.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whole number")
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := NewInputParser().LoadFromFile("does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParse_DefaultsTaxYear(t *testing.T) {
	plan, err := NewInputParser().Parse([]byte(`
filing_status: single
ordinary_income: 100000
iso_strike: 1
iso_fmv: 2
total_shares_available: 100
target_amt_budget: 0
`))
	require.NoError(t, err)
	assert.Equal(t, 2025, plan.TaxYear)
}

func TestParse_BadYAML(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("ordinary_income: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidatePlan_Ranges(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *PlanFile)
		wantErr string
	}{
		{"valid", func(p *PlanFile) {}, ""},
		{"income too high", func(p *PlanFile) { p.OrdinaryIncome = decimal.NewFromInt(10000001) }, "ordinary_income"},
		{"negative income", func(p *PlanFile) { p.OrdinaryIncome = decimal.NewFromInt(-1) }, "ordinary_income"},
		{"negative deductions", func(p *PlanFile) { p.ItemizedDeductions = decimal.NewFromInt(-1) }, "itemized_deductions"},
		{"strike too low", func(p *PlanFile) { p.ISOStrike = decimal.NewFromFloat(0.001) }, "iso_strike"},
		{"fmv too high", func(p *PlanFile) { p.ISOFMV = decimal.NewFromInt(100001) }, "iso_fmv"},
		{"zero shares", func(p *PlanFile) { p.TotalShares = decimal.Zero }, "total_shares_available"},
		{"too many shares", func(p *PlanFile) { p.TotalShares = decimal.NewFromInt(10000001) }, "total_shares_available"},
		{"budget too high", func(p *PlanFile) { p.TargetAMTBudget = decimal.NewFromInt(1000001) }, "target_amt_budget"},
		{"negative budget", func(p *PlanFile) { p.TargetAMTBudget = decimal.NewFromInt(-10) }, "target_amt_budget"},
		{"bad email", func(p *PlanFile) { p.Email = "not-an-email" }, "email"},
		{"unknown status", func(p *PlanFile) { p.FilingStatus = "corporate" }, "filing_status"},
		{"unknown year", func(p *PlanFile) { p.TaxYear = 2019 }, "tax_year"},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := parser.Parse([]byte(validPlan))
			require.NoError(t, err)
			tt.mutate(plan)

			err = parser.ValidatePlan(plan)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidatePlan_OverrideSkipsYearCheck(t *testing.T) {
	plan, err := NewInputParser().Parse([]byte(validPlan))
	require.NoError(t, err)
	plan.TaxYear = 2026
	plan.ParametersFile = "params-2026.yaml"
	assert.NoError(t, NewInputParser().ValidatePlan(plan))
}

func TestNormalizeFilingStatus(t *testing.T) {
	tests := []struct {
		in           string
		want         domain.FilingStatus
		approximated bool
	}{
		{"single", domain.FilingStatusSingle, false},
		{"Married", domain.FilingStatusMarried, false},
		{"married_joint", domain.FilingStatusMarried, false},
		{"married-separate", domain.FilingStatusSingle, true},
		{"head_of_household", domain.FilingStatusSingle, true},
		{"qualifying_widow", domain.FilingStatusSingle, true},
	}
	for _, tt := range tests {
		got, approx, err := NormalizeFilingStatus(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.approximated, approx, tt.in)
	}

	_, _, err := NormalizeFilingStatus("")
	assert.Error(t, err)
}

func TestPlanFile_TaxInputCarriesAdjustments(t *testing.T) {
	plan, err := NewInputParser().Parse([]byte(validPlan + "other_amt_adjustments: 12000\n"))
	require.NoError(t, err)

	ti, err := plan.TaxInput(500)
	require.NoError(t, err)
	assert.Equal(t, int64(500), ti.SharesExercised)
	assert.True(t, ti.OtherAMTAdjustments.Equal(decimal.NewFromInt(12000)))
}

func TestPlanFile_OptimizationInputRejectsFraction(t *testing.T) {
	plan := &PlanFile{FilingStatus: "single", TotalShares: decimal.NewFromFloat(2.5)}
	_, err := plan.OptimizationInput()
	assert.ErrorIs(t, err, optimizer.ErrInvalidShareCount)
}

func TestLoadFromFile_Encrypted(t *testing.T) {
	sealed, err := secure.Seal([]byte(validPlan), "hunter2")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "plan.yaml.age")
	require.NoError(t, os.WriteFile(path, sealed, 0o600))

	parser := NewInputParser()
	parser.Passphrase = func(string) (string, error) { return "hunter2", nil }

	plan, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, plan.TargetAMTBudget.Equal(decimal.NewFromInt(15000)))

	parser.Passphrase = func(string) (string, error) { return "", errors.New("no tty") }
	_, err = parser.LoadFromFile(path)
	assert.EqualError(t, err, "no tty")
}
