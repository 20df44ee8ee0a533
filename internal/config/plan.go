package config

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/rgehrsitz/isoamt/internal/optimizer"
	"github.com/shopspring/decimal"
)

// PlanFile is the on-disk description of one exercise scenario
type PlanFile struct {
	TaxYear             int             `yaml:"tax_year"`
	Email               string          `yaml:"email,omitempty"`
	FilingStatus        string          `yaml:"filing_status"`
	OrdinaryIncome      decimal.Decimal `yaml:"ordinary_income"`
	ItemizedDeductions  decimal.Decimal `yaml:"itemized_deductions"`
	ISOStrike           decimal.Decimal `yaml:"iso_strike"`
	ISOFMV              decimal.Decimal `yaml:"iso_fmv"`
	TotalShares         decimal.Decimal `yaml:"total_shares_available"`
	TargetAMTBudget     decimal.Decimal `yaml:"target_amt_budget"`
	OtherAMTAdjustments decimal.Decimal `yaml:"other_amt_adjustments,omitempty"`

	// ParametersFile optionally replaces the built-in table for TaxYear
	ParametersFile string `yaml:"parameters_file,omitempty"`
}

// statusAliases maps every accepted filing status onto a modeled one.
// Only single and married-joint tables exist, so the remaining statuses
// are computed with the single table.
var statusAliases = map[string]domain.FilingStatus{
	"single":            domain.FilingStatusSingle,
	"married":           domain.FilingStatusMarried,
	"married_joint":     domain.FilingStatusMarried,
	"married_separate":  domain.FilingStatusSingle,
	"head_of_household": domain.FilingStatusSingle,
	"qualifying_widow":  domain.FilingStatusSingle,
}

// NormalizeFilingStatus maps a plan's filing status to the table used.
// approximated is true when the status had to be substituted.
func NormalizeFilingStatus(s string) (status domain.FilingStatus, approximated bool, err error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	status, ok := statusAliases[key]
	if !ok {
		return "", false, fmt.Errorf("unknown filing status %q", s)
	}
	return status, key != "single" && key != "married" && key != "married_joint", nil
}

// OptimizationInput converts the plan into optimizer input
func (p *PlanFile) OptimizationInput() (domain.OptimizationInput, error) {
	status, _, err := NormalizeFilingStatus(p.FilingStatus)
	if err != nil {
		return domain.OptimizationInput{}, err
	}
	shares, err := optimizer.SharesFromDecimal(p.TotalShares)
	if err != nil {
		return domain.OptimizationInput{}, err
	}
	return domain.OptimizationInput{
		OrdinaryIncome:       p.OrdinaryIncome,
		ItemizedDeductions:   p.ItemizedDeductions,
		FilingStatus:         status,
		ISOStrike:            p.ISOStrike,
		ISOFMV:               p.ISOFMV,
		TotalSharesAvailable: shares,
		TargetAMTBudget:      p.TargetAMTBudget,
	}, nil
}

// TaxInput converts the plan into calculator input for a given exercise
func (p *PlanFile) TaxInput(shares int64) (domain.TaxInput, error) {
	in, err := p.OptimizationInput()
	if err != nil {
		return domain.TaxInput{}, err
	}
	ti := in.TaxInput(shares)
	ti.OtherAMTAdjustments = p.OtherAMTAdjustments
	return ti, nil
}
