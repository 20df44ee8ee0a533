package optimizer

import (
	"context"

	"github.com/rgehrsitz/isoamt/internal/calculation"
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/shopspring/decimal"
)

// Planner binds a parameter table and a logger to the optimizer entry points.
// It is what the CLI and TUI call; the package-level functions stay pure.
type Planner struct {
	Params *domain.TaxParameters
	Logger calculation.Logger
}

// NewPlanner creates a planner. A nil logger discards output.
func NewPlanner(params *domain.TaxParameters, logger calculation.Logger) *Planner {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Planner{Params: params, Logger: logger}
}

// Tax runs the calculator once
func (p *Planner) Tax(ctx context.Context, input domain.TaxInput) (domain.TaxResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.TaxResult{}, err
	}
	result, err := calculation.CalculateTax(input, p.Params)
	if err != nil {
		p.Logger.Errorf("tax calculation failed: %v", err)
		return domain.TaxResult{}, err
	}
	p.Logger.Debugf("tax %d/%s shares=%d: regular=%s amti=%s exemption=%s tmt=%s amt=%s",
		p.Params.Year, input.FilingStatus, input.SharesExercised,
		result.RegularTax.StringFixed(2), result.AMTIncome.StringFixed(2), result.AMTExemption.StringFixed(2),
		result.TentativeMinimumTax.StringFixed(2), result.AMTOwed.StringFixed(2))
	return result, nil
}

// Optimize finds the maximum affordable share count
func (p *Planner) Optimize(ctx context.Context, input domain.OptimizationInput) (domain.OptimizationResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.OptimizationResult{}, err
	}
	p.logInput(input)
	result, err := FindMaxSharesWithinAmtBudget(input, p.Params)
	if err != nil {
		p.Logger.Warnf("optimization rejected: %v", err)
		return domain.OptimizationResult{}, err
	}
	p.Logger.Debugf("optimal: %d of %d shares, amt=%s, utilization=%s%%",
		result.MaxShares, input.TotalSharesAvailable, result.ProjectedAMT.StringFixed(2), result.BudgetUtilization.StringFixed(1))
	return result, nil
}

// Tiles computes unconstrained tiles, defaulting to 25/50/100 percent
func (p *Planner) Tiles(ctx context.Context, input domain.OptimizationInput, percentages ...decimal.Decimal) ([]domain.TileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tiles, err := CalculateTiles(input, p.Params, percentages...)
	if err != nil {
		return nil, err
	}
	for _, t := range tiles {
		p.Logger.Debugf("tile %s: %d shares, amt=%s", t.Percentage, t.Shares, t.ProjectedAMT.StringFixed(2))
	}
	return tiles, nil
}

// Sensitivity reruns the optimizer at perturbed FMVs
func (p *Planner) Sensitivity(ctx context.Context, input domain.OptimizationInput, adjustments ...decimal.Decimal) ([]domain.SensitivityResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results, err := PerformSensitivityAnalysis(input, p.Params, adjustments...)
	if err != nil {
		p.Logger.Warnf("sensitivity analysis rejected: %v", err)
		return nil, err
	}
	if want := len(adjustments); want > 0 && len(results) < want {
		p.Logger.Infof("%d FMV adjustment(s) skipped: adjusted FMV at or below strike", want-len(results))
	}
	return results, nil
}

// Plan runs the complete optimization
func (p *Planner) Plan(ctx context.Context, input domain.OptimizationInput) (*domain.CompleteOptimizationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.logInput(input)
	result, err := PerformCompleteOptimization(input, p.Params)
	if err != nil {
		p.Logger.Warnf("optimization rejected: %v", err)
		return nil, err
	}
	p.Logger.Debugf("plan: optimal=%d shares, tiles=%d/%d/%d, down=%t up=%t",
		result.Optimal.MaxShares, result.Tiles.Tile25.Shares, result.Tiles.Tile50.Shares, result.Tiles.Tile100.Shares,
		result.Sensitivity.Down != nil, result.Sensitivity.Up != nil)
	return &result, nil
}

func (p *Planner) logInput(input domain.OptimizationInput) {
	p.Logger.Debugf("optimizing %d/%s: income=%s strike=%s fmv=%s shares=%d budget=%s",
		p.Params.Year, input.FilingStatus, input.OrdinaryIncome.StringFixed(2),
		input.ISOStrike.StringFixed(2), input.ISOFMV.StringFixed(2),
		input.TotalSharesAvailable, input.TargetAMTBudget.StringFixed(2))
}
