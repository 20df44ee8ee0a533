package integration

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rgehrsitz/isoamt/internal/calculation"
	"github.com/rgehrsitz/isoamt/internal/config"
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/rgehrsitz/isoamt/internal/optimizer"
	"github.com/rgehrsitz/isoamt/internal/output"
	"github.com/rgehrsitz/isoamt/internal/taxparams"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loadedPlan struct {
	plan   *config.PlanFile
	input  domain.OptimizationInput
	params *domain.TaxParameters
}

func loadPlan(t *testing.T, path string) loadedPlan {
	t.Helper()
	plan, err := config.NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	input, err := plan.OptimizationInput()
	require.NoError(t, err)
	params, err := taxparams.Resolve(plan.TaxYear, "")
	require.NoError(t, err)
	return loadedPlan{plan: plan, input: input, params: params}
}

func incremental(t *testing.T, lp loadedPlan, shares int64) decimal.Decimal {
	t.Helper()
	inc, err := calculation.CalculateIncrementalAmt(lp.input.TaxInput(0), lp.input.TaxInput(shares), lp.params)
	require.NoError(t, err)
	return inc
}

func TestEndToEndSinglePlan(t *testing.T) {
	lp := loadPlan(t, "../../testdata/plan_single.yaml")
	planner := optimizer.NewPlanner(lp.params, nil)

	result, err := planner.Plan(context.Background(), lp.input)
	require.NoError(t, err)
	assert.Equal(t, int64(5906), result.Optimal.MaxShares)
	assert.Equal(t, int64(2500), result.Tiles.Tile25.Shares)
	assert.Equal(t, int64(5000), result.Tiles.Tile50.Shares)
	assert.Equal(t, int64(10000), result.Tiles.Tile100.Shares)
	require.NotNil(t, result.Sensitivity.Down)
	require.NotNil(t, result.Sensitivity.Up)
	assert.Equal(t, int64(6644), result.Sensitivity.Down.MaxShares)
	assert.Equal(t, int64(5315), result.Sensitivity.Up.MaxShares)

	plan := output.NewPlan(lp.params.Year, lp.input, result)
	for _, name := range output.FormatNames() {
		f := output.GetFormatterByName(name)
		require.NotNil(t, f, name)
		data, err := f.Format(plan)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}

	csv, err := output.CSVFormatter{}.Format(plan)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(csv)), "\n"), 7)
}

func TestEndToEndMarriedPlan(t *testing.T) {
	lp := loadPlan(t, "../../testdata/plan_married.yaml")
	assert.Equal(t, domain.FilingStatusMarried, lp.input.FilingStatus)

	result, err := optimizer.PerformCompleteOptimization(lp.input, lp.params)
	require.NoError(t, err)

	opt := result.Optimal
	assert.LessOrEqual(t, opt.MaxShares, lp.input.TotalSharesAvailable)
	assert.True(t, incremental(t, lp, opt.MaxShares).LessThanOrEqual(lp.input.TargetAMTBudget))
	if opt.MaxShares < lp.input.TotalSharesAvailable {
		assert.True(t, incremental(t, lp, opt.MaxShares+1).GreaterThan(lp.input.TargetAMTBudget),
			"one more share must exceed the budget")
	}
	assert.True(t, opt.CashNeeded.Equal(lp.input.ISOStrike.Mul(decimal.NewFromInt(opt.MaxShares))))

	require.NotNil(t, result.Sensitivity.Down)
	require.NotNil(t, result.Sensitivity.Up)
	assert.LessOrEqual(t, result.Sensitivity.Up.MaxShares, opt.MaxShares)
	assert.GreaterOrEqual(t, result.Sensitivity.Down.MaxShares, opt.MaxShares)
}

func TestParameterTableRoundTrip(t *testing.T) {
	lp := loadPlan(t, "../../testdata/plan_married.yaml")

	data, err := taxparams.Marshal(lp.params)
	require.NoError(t, err)
	reloaded, err := taxparams.Parse(data)
	require.NoError(t, err)

	want, err := optimizer.FindMaxSharesWithinAmtBudget(lp.input, lp.params)
	require.NoError(t, err)
	got, err := optimizer.FindMaxSharesWithinAmtBudget(lp.input, reloaded)
	require.NoError(t, err)

	assert.Equal(t, want.MaxShares, got.MaxShares)
	assert.True(t, want.ProjectedAMT.Equal(got.ProjectedAMT))
}

func TestConcurrentPlansShareParameters(t *testing.T) {
	lp := loadPlan(t, "../../testdata/plan_single.yaml")
	planner := optimizer.NewPlanner(lp.params, nil)

	budgets := []int64{0, 1000, 5000, 10000, 20000}
	results := make([]int64, len(budgets))
	var wg sync.WaitGroup
	for i, b := range budgets {
		wg.Add(1)
		go func(i int, budget int64) {
			defer wg.Done()
			in := lp.input
			in.TargetAMTBudget = decimal.NewFromInt(budget)
			res, err := planner.Optimize(context.Background(), in)
			if err == nil {
				results[i] = res.MaxShares
			}
		}(i, b)
	}
	wg.Wait()

	assert.Equal(t, int64(0), results[0])
	assert.Equal(t, int64(5906), results[2])
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i], results[i-1], "more budget never buys fewer shares")
	}
	assert.Equal(t, lp.input.TotalSharesAvailable, results[len(results)-1])
}

func TestErrorHandling(t *testing.T) {
	t.Run("fractional_shares", func(t *testing.T) {
		_, err := config.NewInputParser().LoadFromFile("../../testdata/plan_invalid.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "whole number")
	})

	t.Run("strike_above_fmv", func(t *testing.T) {
		lp := loadPlan(t, "../../testdata/plan_single.yaml")
		in := lp.input.WithFMV(decimal.NewFromFloat(0.5))
		_, err := optimizer.PerformCompleteOptimization(in, lp.params)
		assert.ErrorIs(t, err, optimizer.ErrInvalidExercise)
	})

	t.Run("cancelled_context", func(t *testing.T) {
		lp := loadPlan(t, "../../testdata/plan_single.yaml")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := optimizer.NewPlanner(lp.params, nil).Plan(ctx, lp.input)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
