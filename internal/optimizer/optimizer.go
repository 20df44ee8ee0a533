package optimizer

import (
	"github.com/rgehrsitz/isoamt/internal/calculation"
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/shopspring/decimal"
)

// Tolerance is the rounding allowance, one cent, accepted above the budget
var Tolerance = decimal.New(1, -2)

var hundred = decimal.NewFromInt(100)

// FindMaxSharesWithinAmtBudget binary-searches [0, TotalSharesAvailable] for
// the largest share count whose incremental AMT over the zero-exercise
// baseline stays within TargetAMTBudget + Tolerance. The search relies on
// AMT owed being non-decreasing in shares exercised.
func FindMaxSharesWithinAmtBudget(input domain.OptimizationInput, params *domain.TaxParameters) (domain.OptimizationResult, error) {
	if err := validate(input); err != nil {
		return domain.OptimizationResult{}, err
	}

	baseline, err := calculation.CalculateTax(input.TaxInput(0), params)
	if err != nil {
		return domain.OptimizationResult{}, err
	}

	// nothing to exercise, or the budget is already consumed without exercising
	if input.TotalSharesAvailable == 0 || baseline.AMTOwed.GreaterThanOrEqual(input.TargetAMTBudget) {
		return zeroExercise(baseline), nil
	}

	limit := input.TargetAMTBudget.Add(Tolerance)
	left, right := int64(0), input.TotalSharesAvailable
	best, bestTax := int64(0), baseline

	for left <= right {
		mid := left + (right-left)/2
		tax, err := calculation.CalculateTax(input.TaxInput(mid), params)
		if err != nil {
			return domain.OptimizationResult{}, err
		}

		incremental := tax.AMTOwed.Sub(baseline.AMTOwed)
		if incremental.LessThanOrEqual(limit) {
			best, bestTax = mid, tax
			left = mid + 1
		} else {
			right = mid - 1
		}
	}

	utilization := decimal.Zero
	if input.TargetAMTBudget.IsPositive() {
		utilization = bestTax.AMTOwed.Sub(baseline.AMTOwed).Div(input.TargetAMTBudget).Mul(hundred)
	}

	return domain.OptimizationResult{
		MaxShares:         best,
		ProjectedAMT:      bestTax.AMTOwed,
		ProjectedTotalTax: bestTax.TotalTaxOwed,
		BargainElement:    bestTax.BargainElement,
		BudgetUtilization: utilization,
		CashNeeded:        input.ISOStrike.Mul(decimal.NewFromInt(best)),
		TaxDetails:        bestTax,
	}, nil
}

func zeroExercise(baseline domain.TaxResult) domain.OptimizationResult {
	return domain.OptimizationResult{
		MaxShares:         0,
		ProjectedAMT:      baseline.AMTOwed,
		ProjectedTotalTax: baseline.TotalTaxOwed,
		BargainElement:    decimal.Zero,
		BudgetUtilization: decimal.Zero,
		CashNeeded:        decimal.Zero,
		TaxDetails:        baseline,
	}
}
