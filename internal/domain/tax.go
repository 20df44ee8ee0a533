package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FilingStatus identifies which parameter set of a tax year applies
type FilingStatus string

const (
	FilingStatusSingle  FilingStatus = "single"
	FilingStatusMarried FilingStatus = "married"
)

// FilingStatuses lists the statuses every tax table must define
var FilingStatuses = []FilingStatus{FilingStatusSingle, FilingStatusMarried}

// String implements fmt.Stringer
func (s FilingStatus) String() string { return string(s) }

// Label returns a human readable filing status
func (s FilingStatus) Label() string {
	switch s {
	case FilingStatusSingle:
		return "Single"
	case FilingStatusMarried:
		return "Married Filing Jointly"
	default:
		return strings.ToUpper(string(s))
	}
}

// TaxBracket is one progressive bracket. Min is inclusive and Max exclusive;
// a zero Max marks the open-ended top bracket.
type TaxBracket struct {
	Min  decimal.Decimal `yaml:"min" json:"min"`
	Max  decimal.Decimal `yaml:"max" json:"max"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the bracket has no upper limit
func (b TaxBracket) Unbounded() bool {
	return b.Max.IsZero()
}

// AMTRateStructure is the two-tier tentative minimum tax schedule
type AMTRateStructure struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	LowerRate decimal.Decimal `yaml:"lower_rate" json:"lower_rate"`
	UpperRate decimal.Decimal `yaml:"upper_rate" json:"upper_rate"`
}

// FilingStatusParams holds the regular and AMT constants for one filing status
type FilingStatusParams struct {
	StandardDeduction decimal.Decimal  `yaml:"standard_deduction" json:"standard_deduction"`
	AMTExemption      decimal.Decimal  `yaml:"amt_exemption" json:"amt_exemption"`
	AMTPhaseoutStart  decimal.Decimal  `yaml:"amt_phaseout_start" json:"amt_phaseout_start"`
	AMTPhaseoutRate   decimal.Decimal  `yaml:"amt_phaseout_rate" json:"amt_phaseout_rate"`
	Brackets          []TaxBracket     `yaml:"brackets" json:"brackets"`
	AMTRates          AMTRateStructure `yaml:"amt_rates" json:"amt_rates"`
}

// TaxParameters is the parameter table for a single tax year.
// Tables are treated as read-only once built.
type TaxParameters struct {
	Year     int                                 `yaml:"year" json:"year"`
	Statuses map[FilingStatus]FilingStatusParams `yaml:"statuses" json:"statuses"`
}

// ForStatus resolves the parameters for a filing status
func (p *TaxParameters) ForStatus(status FilingStatus) (FilingStatusParams, error) {
	if p == nil {
		return FilingStatusParams{}, fmt.Errorf("no tax parameters supplied")
	}
	sp, ok := p.Statuses[status]
	if !ok {
		return FilingStatusParams{}, fmt.Errorf("tax year %d has no parameters for filing status %q", p.Year, status)
	}
	return sp, nil
}

// TaxInput describes one tax scenario
type TaxInput struct {
	OrdinaryIncome     decimal.Decimal `json:"ordinary_income"`
	ItemizedDeductions decimal.Decimal `json:"itemized_deductions"`
	FilingStatus       FilingStatus    `json:"filing_status"`
	ISOStrike          decimal.Decimal `json:"iso_strike"`
	ISOFMV             decimal.Decimal `json:"iso_fmv"`
	SharesExercised    int64           `json:"shares_exercised"`

	// OtherAMTAdjustments defaults to zero
	OtherAMTAdjustments decimal.Decimal `json:"other_amt_adjustments"`
}

// TaxResult is the full breakdown produced by the calculator
type TaxResult struct {
	RegularTaxableIncome decimal.Decimal `json:"regular_taxable_income"`
	RegularTax           decimal.Decimal `json:"regular_tax"`
	AMTIncome            decimal.Decimal `json:"amt_income"`
	AMTExemption         decimal.Decimal `json:"amt_exemption"`
	AMTTaxableIncome     decimal.Decimal `json:"amt_taxable_income"`
	TentativeMinimumTax  decimal.Decimal `json:"tentative_minimum_tax"`
	AMTOwed              decimal.Decimal `json:"amt_owed"`
	TotalTaxOwed         decimal.Decimal `json:"total_tax_owed"`
	BargainElement       decimal.Decimal `json:"bargain_element"`
	EffectiveTaxRate     decimal.Decimal `json:"effective_tax_rate"`
}
