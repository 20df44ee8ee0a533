package optimizer

import (
	"github.com/rgehrsitz/isoamt/internal/calculation"
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	tile25  = decimal.NewFromFloat(0.25)
	tile50  = decimal.NewFromFloat(0.5)
	tile100 = decimal.NewFromInt(1)

	fmvDown = decimal.NewFromFloat(-0.10)
	fmvUp   = decimal.NewFromFloat(0.10)
)

// DefaultTilePercentages are the canonical 25/50/100 percent tiles
func DefaultTilePercentages() []decimal.Decimal {
	return []decimal.Decimal{tile25, tile50, tile100}
}

// DefaultFMVAdjustments are the canonical -10%/+10% FMV perturbations
func DefaultFMVAdjustments() []decimal.Decimal {
	return []decimal.Decimal{fmvDown, fmvUp}
}

// CalculateTiles runs the calculator, with no budget constraint, at
// floor(total x percentage) shares for each percentage in order.
// With no percentages the default tiles are used. A percentage outside
// [0, 1] is rejected with ErrInvalidPercentage.
func CalculateTiles(input domain.OptimizationInput, params *domain.TaxParameters, percentages ...decimal.Decimal) ([]domain.TileResult, error) {
	if len(percentages) == 0 {
		percentages = DefaultTilePercentages()
	}

	for _, pct := range percentages {
		if pct.IsNegative() || pct.GreaterThan(tile100) {
			e := newError(ErrInvalidPercentage, "Tile percentage must be between 0 and 1, got %s", pct)
			e.Operation = "calculate_tiles"
			return nil, e
		}
	}

	total := decimal.NewFromInt(input.TotalSharesAvailable)
	tiles := make([]domain.TileResult, 0, len(percentages))
	for _, pct := range percentages {
		shares := total.Mul(pct).Floor().IntPart()
		tax, err := calculation.CalculateTax(input.TaxInput(shares), params)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, domain.TileResult{
			Percentage:        pct,
			Shares:            shares,
			CashNeeded:        input.ISOStrike.Mul(decimal.NewFromInt(shares)),
			BargainElement:    tax.BargainElement,
			ProjectedAMT:      tax.AMTOwed,
			ProjectedTotalTax: tax.TotalTaxOwed,
		})
	}
	return tiles, nil
}

// PerformSensitivityAnalysis reruns the optimizer at FMV x (1 + adjustment)
// for each adjustment. Adjustments that leave the FMV at or below the strike
// are omitted. With no adjustments the defaults are used.
func PerformSensitivityAnalysis(input domain.OptimizationInput, params *domain.TaxParameters, adjustments ...decimal.Decimal) ([]domain.SensitivityResult, error) {
	if len(adjustments) == 0 {
		adjustments = DefaultFMVAdjustments()
	}

	results := make([]domain.SensitivityResult, 0, len(adjustments))
	for _, adj := range adjustments {
		res, ok, err := sensitivityAt(input, params, adj)
		if err != nil {
			return nil, err
		}
		if ok {
			results = append(results, res)
		}
	}
	return results, nil
}

func sensitivityAt(input domain.OptimizationInput, params *domain.TaxParameters, adj decimal.Decimal) (domain.SensitivityResult, bool, error) {
	fmv := input.ISOFMV.Mul(decimal.NewFromInt(1).Add(adj))
	if fmv.LessThanOrEqual(input.ISOStrike) {
		return domain.SensitivityResult{}, false, nil
	}

	opt, err := FindMaxSharesWithinAmtBudget(input.WithFMV(fmv), params)
	if err != nil {
		return domain.SensitivityResult{}, false, err
	}
	return domain.SensitivityResult{
		Adjustment:   adj,
		FMV:          fmv,
		MaxShares:    opt.MaxShares,
		ProjectedAMT: opt.ProjectedAMT,
	}, true, nil
}

// PerformCompleteOptimization combines the optimizer, the default tiles and
// the default sensitivity pair. Down and Up are each tied to their own
// adjustment, so a skipped Down never moves Up into its place.
func PerformCompleteOptimization(input domain.OptimizationInput, params *domain.TaxParameters) (domain.CompleteOptimizationResult, error) {
	optimal, err := FindMaxSharesWithinAmtBudget(input, params)
	if err != nil {
		return domain.CompleteOptimizationResult{}, err
	}

	tiles, err := CalculateTiles(input, params)
	if err != nil {
		return domain.CompleteOptimizationResult{}, err
	}

	var sensitivity domain.Sensitivity
	for _, side := range []struct {
		adj  decimal.Decimal
		slot **domain.SensitivityResult
	}{
		{fmvDown, &sensitivity.Down},
		{fmvUp, &sensitivity.Up},
	} {
		res, ok, err := sensitivityAt(input, params, side.adj)
		if err != nil {
			return domain.CompleteOptimizationResult{}, err
		}
		if ok {
			*side.slot = &res
		}
	}

	return domain.CompleteOptimizationResult{
		Optimal: optimal,
		Tiles: domain.Tiles{
			Tile25:  tiles[0],
			Tile50:  tiles[1],
			Tile100: tiles[2],
		},
		Sensitivity: sensitivity,
	}, nil
}
