package taxparams

import (
	"fmt"

	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/shopspring/decimal"
)

// Validate checks the structural invariants the calculator and the share
// search rely on. Brackets must start at zero, be contiguous and ascending,
// and end with exactly one open-ended bracket.
func Validate(params *domain.TaxParameters) error {
	if params == nil {
		return fmt.Errorf("%w: nil table", ErrInvalidTable)
	}
	if params.Year <= 0 {
		return fmt.Errorf("%w: year must be positive, got %d", ErrInvalidTable, params.Year)
	}
	for _, status := range domain.FilingStatuses {
		sp, ok := params.Statuses[status]
		if !ok {
			return fmt.Errorf("%w: year %d is missing filing status %q", ErrInvalidTable, params.Year, status)
		}
		if err := validateStatus(sp); err != nil {
			return fmt.Errorf("%w: year %d, %s: %v", ErrInvalidTable, params.Year, status, err)
		}
	}
	return nil
}

func validateStatus(sp domain.FilingStatusParams) error {
	for name, v := range map[string]decimal.Decimal{
		"standard_deduction":  sp.StandardDeduction,
		"amt_exemption":       sp.AMTExemption,
		"amt_phaseout_start":  sp.AMTPhaseoutStart,
		"amt_rates.threshold": sp.AMTRates.Threshold,
	} {
		if v.IsNegative() {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}
	if err := validateRate("amt_phaseout_rate", sp.AMTPhaseoutRate); err != nil {
		return err
	}
	if err := validateRate("amt_rates.lower_rate", sp.AMTRates.LowerRate); err != nil {
		return err
	}
	if err := validateRate("amt_rates.upper_rate", sp.AMTRates.UpperRate); err != nil {
		return err
	}
	// a falling second tier would make AMT non-monotonic in income
	if sp.AMTRates.UpperRate.LessThan(sp.AMTRates.LowerRate) {
		return fmt.Errorf("amt upper rate %s is below lower rate %s", sp.AMTRates.UpperRate, sp.AMTRates.LowerRate)
	}
	return validateBrackets(sp.Brackets)
}

func validateRate(name string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be between 0 and 1, got %s", name, rate)
	}
	return nil
}

func validateBrackets(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("no tax brackets defined")
	}
	if !brackets[0].Min.IsZero() {
		return fmt.Errorf("first bracket must start at 0, starts at %s", brackets[0].Min)
	}
	last := len(brackets) - 1
	for i, b := range brackets {
		if err := validateRate(fmt.Sprintf("brackets[%d].rate", i), b.Rate); err != nil {
			return err
		}
		if i > 0 && !b.Min.Equal(brackets[i-1].Max) {
			return fmt.Errorf("bracket %d starts at %s but bracket %d ends at %s", i, b.Min, i-1, brackets[i-1].Max)
		}
		if i == last {
			if !b.Unbounded() {
				return fmt.Errorf("top bracket must be open-ended (max 0), got max %s", b.Max)
			}
			continue
		}
		if !b.Max.GreaterThan(b.Min) {
			return fmt.Errorf("bracket %d has max %s not above min %s", i, b.Max, b.Min)
		}
	}
	return nil
}
