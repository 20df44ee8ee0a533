package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/isoamt/internal/optimizer"
	"github.com/rgehrsitz/isoamt/internal/taxparams"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const singlePlan = "../../testdata/plan_single.yaml"

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "isoamt", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	out, _, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestCommandSubcommands(t *testing.T) {
	expected := []string{"optimize", "tax", "tiles", "sensitivity", "validate", "params", "report", "encrypt", "decrypt", "version"}

	names := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		names[c.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, names[name], "missing command %s", name)
	}
}

func TestOptimizeConsole(t *testing.T) {
	out, _, err := run(t, "optimize", singlePlan)
	require.NoError(t, err)

	assert.Contains(t, out, "ISO EXERCISE PLAN - TAX YEAR 2024")
	assert.Contains(t, out, "5,906 shares")
	assert.Contains(t, out, "$4,999.54")
	assert.Contains(t, out, "Prepared for: holder@example.com")
}

func TestOptimizeJSON(t *testing.T) {
	out, _, err := run(t, "optimize", singlePlan, "--format", "json")
	require.NoError(t, err)

	var decoded struct {
		TaxYear int `json:"tax_year"`
		Result  struct {
			Optimal struct {
				MaxShares int64 `json:"max_shares"`
			} `json:"optimal"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 2024, decoded.TaxYear)
	assert.Equal(t, int64(5906), decoded.Result.Optimal.MaxShares)
}

func TestOptimizeWritesOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.csv")
	out, stderr, err := run(t, "optimize", singlePlan, "--format", "csv", "--output", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "optimal,10.00,5906,")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestOptimizeRejectsUnknownFormat(t *testing.T) {
	_, _, err := run(t, "optimize", singlePlan, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestOptimizeYearOverride(t *testing.T) {
	_, _, err := run(t, "optimize", singlePlan, "--year", "1999")
	require.Error(t, err)
	assert.ErrorIs(t, err, taxparams.ErrUnsupportedYear)
}

func TestOptimizeInvalidPlan(t *testing.T) {
	_, _, err := run(t, "optimize", "../../testdata/plan_invalid.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whole number")
}

func TestTaxCommand(t *testing.T) {
	out, _, err := run(t, "tax", singlePlan, "--shares", "5906")
	require.NoError(t, err)

	assert.Contains(t, out, "5,906 SHARES EXERCISED")
	assert.Contains(t, out, "$25,538.50")
	assert.Contains(t, out, "$4,999.54")
}

func TestTaxCommandNoExercise(t *testing.T) {
	out, _, err := run(t, "tax", singlePlan, "--json")
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "25538.5", decoded["regular_tax"])
	assert.Equal(t, "0", decoded["amt_owed"])
}

func TestTaxCommandRejectsBadAdjustment(t *testing.T) {
	_, _, err := run(t, "tax", singlePlan, "--shares", "10", "--other-adjustments", "lots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--other-adjustments")
}

func TestTilesCommand(t *testing.T) {
	out, _, err := run(t, "tiles", singlePlan)
	require.NoError(t, err)
	assert.Contains(t, out, "25%")
	assert.Contains(t, out, "2,500")
	assert.Contains(t, out, "$14,579.50")

	out, _, err = run(t, "tiles", singlePlan, "--percentages", "0.1")
	require.NoError(t, err)
	assert.Contains(t, out, "10%")
	assert.Contains(t, out, "1,000")
	assert.NotContains(t, out, "2,500")
}

func TestTilesCommandRejectsPercentageOutsideGrant(t *testing.T) {
	out, _, err := run(t, "tiles", singlePlan, "--percentages=-0.5,1")
	require.ErrorIs(t, err, optimizer.ErrInvalidPercentage)
	assert.Contains(t, err.Error(), "between 0 and 1")
	assert.NotContains(t, out, "-5,000")

	_, _, err = run(t, "tiles", singlePlan, "--percentages", "1.5")
	require.ErrorIs(t, err, optimizer.ErrInvalidPercentage)
}

func TestSensitivityCommand(t *testing.T) {
	out, _, err := run(t, "sensitivity", singlePlan)
	require.NoError(t, err)
	assert.Contains(t, out, "-10%")
	assert.Contains(t, out, "6,644")
	assert.Contains(t, out, "+10%")
	assert.Contains(t, out, "5,315")
}

func TestSensitivityCommandSkipsBelowStrike(t *testing.T) {
	out, _, err := run(t, "sensitivity", singlePlan, "--adjustments=-0.95,0.1")
	require.NoError(t, err)
	assert.Contains(t, out, "1 adjustment(s) skipped")
	assert.Contains(t, out, "5,315")
}

func TestSensitivityCommandRejectsBadNumber(t *testing.T) {
	_, _, err := run(t, "sensitivity", singlePlan, "--adjustments", "ten")
	require.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	out, _, err := run(t, "validate", singlePlan)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (tax year 2024, Single)")

	_, _, err = run(t, "validate", "../../testdata/plan_invalid.yaml")
	assert.Error(t, err)

	_, _, err = run(t, "validate", "does-not-exist.yaml")
	assert.Error(t, err)
}

func TestParamsCommand(t *testing.T) {
	out, _, err := run(t, "params", "2024")
	require.NoError(t, err)
	assert.Contains(t, out, "year: 2024")

	parsed, err := taxparams.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year)

	_, _, err = run(t, "params", "1999")
	assert.ErrorIs(t, err, taxparams.ErrUnsupportedYear)

	_, _, err = run(t, "params", "next")
	assert.Error(t, err)
}

func TestParamsFileOverride(t *testing.T) {
	dir := t.TempDir()
	table, err := taxparams.Marshal(taxparams.TaxYear2024())
	require.NoError(t, err)
	path := filepath.Join(dir, "2024.yaml")
	require.NoError(t, os.WriteFile(path, table, 0o600))

	out, _, err := run(t, "--params-file", path, "optimize", singlePlan)
	require.NoError(t, err)
	assert.Contains(t, out, "5,906 shares")
}

func TestReportHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.html")
	_, _, err := run(t, "report", singlePlan, "--html", "--output", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<table>")
	assert.Contains(t, string(data), "holder@example.com")
}

func TestReportRejectsBothFormats(t *testing.T) {
	_, _, err := run(t, "report", singlePlan, "--html", "--pdf")
	require.Error(t, err)
}

func TestEncryptRejectsEncryptedInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml.age")
	require.NoError(t, os.WriteFile(path, []byte("age-encryption.org/v1\n-> scrypt"), 0o600))

	_, _, err := run(t, "encrypt", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already encrypted")
}

func TestDecryptRejectsPlainInput(t *testing.T) {
	_, _, err := run(t, "decrypt", singlePlan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an age-encrypted file")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "isoamt dev")
}
