package config

import (
	"fmt"
	"net/mail"
	"os"

	"github.com/rgehrsitz/isoamt/internal/secure"
	"github.com/rgehrsitz/isoamt/internal/taxparams"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Intake limits for plan files
var (
	MaxOrdinaryIncome = decimal.NewFromInt(10000000)
	MinISOStrike      = decimal.NewFromFloat(0.01)
	MaxISOStrike      = decimal.NewFromInt(10000)
	MinISOFMV         = decimal.NewFromFloat(0.01)
	MaxISOFMV         = decimal.NewFromInt(100000)
	MinTotalShares    = decimal.NewFromInt(1)
	MaxTotalShares    = decimal.NewFromInt(10000000)
	MaxAMTBudget      = decimal.NewFromInt(1000000)
)

// InputParser handles parsing of plan files
type InputParser struct {
	// Passphrase supplies the key for age-encrypted plan files
	Passphrase func(prompt string) (string, error)
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{Passphrase: secure.Passphrase}
}

// LoadFromFile loads and validates a YAML plan file, decrypting it first
// when it is an age envelope
func (ip *InputParser) LoadFromFile(filename string) (*PlanFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if secure.IsEncrypted(data) {
		if ip.Passphrase == nil {
			return nil, fmt.Errorf("%s is encrypted and no passphrase source is configured", filename)
		}
		pass, err := ip.Passphrase(fmt.Sprintf("Passphrase for %s: ", filename))
		if err != nil {
			return nil, err
		}
		if data, err = secure.Open(data, pass); err != nil {
			return nil, fmt.Errorf("failed to decrypt %s: %w", filename, err)
		}
	}

	return ip.Parse(data)
}

// Parse decodes and validates plan YAML
func (ip *InputParser) Parse(data []byte) (*PlanFile, error) {
	var plan PlanFile
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if plan.TaxYear == 0 {
		plan.TaxYear = taxparams.DefaultYear
	}

	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	return &plan, nil
}

// ValidatePlan checks every field against the intake limits
func (ip *InputParser) ValidatePlan(plan *PlanFile) error {
	if plan.ParametersFile == "" {
		if _, err := taxparams.ForYear(plan.TaxYear); err != nil {
			return fmt.Errorf("tax_year: %w", err)
		}
	}
	if plan.Email != "" {
		if _, err := mail.ParseAddress(plan.Email); err != nil {
			return fmt.Errorf("email %q is not a valid address", plan.Email)
		}
	}
	if _, _, err := NormalizeFilingStatus(plan.FilingStatus); err != nil {
		return fmt.Errorf("filing_status: %w", err)
	}
	if err := inRange("ordinary_income", plan.OrdinaryIncome, decimal.Zero, MaxOrdinaryIncome); err != nil {
		return err
	}
	if plan.ItemizedDeductions.IsNegative() {
		return fmt.Errorf("itemized_deductions cannot be negative")
	}
	if err := inRange("iso_strike", plan.ISOStrike, MinISOStrike, MaxISOStrike); err != nil {
		return err
	}
	if err := inRange("iso_fmv", plan.ISOFMV, MinISOFMV, MaxISOFMV); err != nil {
		return err
	}
	if !plan.TotalShares.Equal(plan.TotalShares.Truncate(0)) {
		return fmt.Errorf("total_shares_available must be a whole number, got %s", plan.TotalShares)
	}
	if err := inRange("total_shares_available", plan.TotalShares, MinTotalShares, MaxTotalShares); err != nil {
		return err
	}
	if err := inRange("target_amt_budget", plan.TargetAMTBudget, decimal.Zero, MaxAMTBudget); err != nil {
		return err
	}
	return nil
}

func inRange(field string, v, min, max decimal.Decimal) error {
	if v.LessThan(min) || v.GreaterThan(max) {
		return fmt.Errorf("%s must be between %s and %s, got %s", field, min, max, v)
	}
	return nil
}
