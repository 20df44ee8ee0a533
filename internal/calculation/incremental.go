package calculation

import (
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateIncrementalAmt returns the AMT attributable to the exercise
// scenario over the baseline, never negative.
func CalculateIncrementalAmt(baseline, exercise domain.TaxInput, params *domain.TaxParameters) (decimal.Decimal, error) {
	base, err := CalculateTax(baseline, params)
	if err != nil {
		return decimal.Zero, err
	}
	withExercise, err := CalculateTax(exercise, params)
	if err != nil {
		return decimal.Zero, err
	}
	return nonNegative(withExercise.AMTOwed.Sub(base.AMTOwed)), nil
}
