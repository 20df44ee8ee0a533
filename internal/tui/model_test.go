package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/isoamt/internal/optimizer"
	"github.com/rgehrsitz/isoamt/internal/taxparams"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const singlePlan = "../../testdata/plan_single.yaml"

// drive feeds a command's messages back into the model until none remain
func drive(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				m = drive(t, m, c)
			}
			return m
		}
		updated, next := m.Update(msg)
		m = updated.(Model)
		cmd = next
	}
	return m
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(singlePlan)
	m = drive(t, m, m.Init())
	require.NoError(t, m.err)
	require.NotNil(t, m.result)
	return m
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	return drive(t, updated.(Model), cmd)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModelLoadsPlanAndOptimizes(t *testing.T) {
	m := loadedModel(t)

	assert.False(t, m.loading)
	assert.Equal(t, 2024, m.params.Year)
	assert.Equal(t, int64(5906), m.result.Optimal.MaxShares)
	assert.Same(t, m.baseline, m.result)
	assert.Len(t, m.curve, len(curvePoints))

	view := m.View()
	assert.Contains(t, view, "Tax year 2024")
	assert.Contains(t, view, "5,906")
	assert.Contains(t, view, "$4,999.54")
	assert.Contains(t, view, "FMV -10%")
}

func TestModelViewWhileLoading(t *testing.T) {
	m := NewModel(singlePlan)
	assert.Contains(t, m.View(), "Loading")
}

func TestModelMissingPlan(t *testing.T) {
	m := NewModel("does-not-exist.yaml")
	m = drive(t, m, m.Init())

	assert.Error(t, m.err)
	assert.Nil(t, m.plan)
	assert.Contains(t, m.View(), "Error:")
}

func TestModelBudgetSliderRecalculates(t *testing.T) {
	m := loadedModel(t)
	require.Equal(t, sliderBudget, m.focus)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})

	assert.True(t, m.currentInput().TargetAMTBudget.Equal(decimal.NewFromInt(5500)))
	assert.Greater(t, m.result.Optimal.MaxShares, int64(5906))
	assert.Equal(t, int64(5906), m.baseline.Optimal.MaxShares)
	assert.Contains(t, m.View(), "vs plan")
}

func TestModelSliderStopsAtMinimum(t *testing.T) {
	m := loadedModel(t)
	m.sliders[sliderBudget].SetValue(0)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Nil(t, cmd, "no recalculation when the value cannot move")
	assert.Equal(t, 0.0, updated.(Model).sliders[sliderBudget].Value)
}

func TestModelFocusWraps(t *testing.T) {
	m := loadedModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, sliderFMV, m.focus)
	assert.True(t, m.sliders[sliderFMV].IsFocused)
	assert.False(t, m.sliders[sliderBudget].IsFocused)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, sliderIncome, m.focus)
}

func TestModelYearToggle(t *testing.T) {
	m := loadedModel(t)

	m = press(t, m, runeKey('y'))
	require.NoError(t, m.err)
	assert.Equal(t, 2025, m.params.Year)
	require.NotNil(t, m.result)
	require.NotNil(t, m.baseline)
	assert.Contains(t, m.View(), "Tax year 2025")

	m = press(t, m, runeKey('y'))
	assert.Equal(t, 2024, m.params.Year)
}

func TestModelDropsStaleYearResults(t *testing.T) {
	m := loadedModel(t)
	stale := m.recalculate(m.currentInput())

	updated, _ := m.Update(runeKey('y'))
	m = updated.(Model)
	updated, _ = m.Update(stale())
	m = updated.(Model)

	assert.Nil(t, m.result, "a 2024 result must not land on the 2025 view")
}

func TestModelShowsOnlyLatestSliderResult(t *testing.T) {
	m := loadedModel(t)

	updated, first := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(Model)
	updated, second := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(Model)
	require.NotNil(t, first)
	require.NotNil(t, second)

	latest := second().(PlanCalculatedMsg)
	require.NoError(t, latest.Err)
	superseded := first().(PlanCalculatedMsg)
	assert.ErrorIs(t, superseded.Err, context.Canceled, "the superseded run is cancelled")

	// deliver out of order: the superseded run arrives last
	updated, _ = m.Update(latest)
	m = updated.(Model)
	updated, _ = m.Update(superseded)
	m = updated.(Model)

	want, err := m.planner.Optimize(context.Background(), m.currentInput())
	require.NoError(t, err)
	assert.True(t, m.currentInput().TargetAMTBudget.Equal(decimal.NewFromInt(6000)))
	assert.NoError(t, m.err)
	assert.Equal(t, want.MaxShares, m.result.Optimal.MaxShares)
	assert.Greater(t, m.result.Optimal.MaxShares, int64(6119))
}

func TestModelIgnoresCompletedOlderRun(t *testing.T) {
	m := loadedModel(t)
	planInput := m.currentInput()
	raised := planInput
	raised.TargetAMTBudget = decimal.NewFromInt(10000)

	m.recalculate(planInput)
	newer := m.recalculate(raised)

	updated, _ := m.Update(newer())
	m = updated.(Model)
	require.Equal(t, int64(8042), m.result.Optimal.MaxShares)

	// the older run finished before it could be cancelled
	older := calculateCmd(context.Background(), m.planner, planInput, m.seq-1, false)().(PlanCalculatedMsg)
	require.NoError(t, older.Err)
	require.Equal(t, int64(5906), older.Result.Optimal.MaxShares)

	updated, _ = m.Update(older)
	m = updated.(Model)
	assert.Equal(t, int64(8042), m.result.Optimal.MaxShares)
	assert.NoError(t, m.err)
}

func TestModelShowsOptimizerErrors(t *testing.T) {
	m := loadedModel(t)
	input := m.currentInput()
	input.ISOFMV = input.ISOStrike

	msg := m.recalculate(input)().(PlanCalculatedMsg)
	require.ErrorIs(t, msg.Err, optimizer.ErrInvalidExercise)

	updated, _ := m.Update(msg)
	m = updated.(Model)
	assert.Contains(t, m.View(), "Strike price must be less than FMV for ISO exercise")
	assert.NotNil(t, m.result, "the last good result stays on screen")
}

func TestModelResetRestoresPlanValues(t *testing.T) {
	m := loadedModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(t, m, runeKey('r'))

	assert.True(t, m.currentInput().TargetAMTBudget.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, int64(5906), m.result.Optimal.MaxShares)
}

func TestModelQuit(t *testing.T) {
	m := NewModel(singlePlan)
	_, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelFromPreloadedPlan(t *testing.T) {
	loaded, err := LoadPlan(singlePlan)
	require.NoError(t, err)
	assert.Empty(t, loaded.ParamsPath)

	m := NewModelFromPlan(loaded)
	m = drive(t, m, m.Init())
	require.NoError(t, m.err)
	assert.Equal(t, singlePlan, m.planPath)
	assert.Equal(t, int64(5906), m.result.Optimal.MaxShares)
}

func TestModelKeepsOverrideTableOnYearKey(t *testing.T) {
	dir := t.TempDir()
	table, err := taxparams.Marshal(taxparams.TaxYear2024())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "table.yaml"), table, 0o600))

	plan, err := os.ReadFile(singlePlan)
	require.NoError(t, err)
	plan = append(plan, []byte("parameters_file: table.yaml\n")...)
	planPath := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(planPath, plan, 0o600))

	m := NewModel(planPath)
	m = drive(t, m, m.Init())
	require.NoError(t, m.err)
	assert.Equal(t, filepath.Join(dir, "table.yaml"), m.paramsPath)
	assert.False(t, m.keys.Year.Enabled())
	before := m.params

	m = press(t, m, runeKey('y'))
	assert.Same(t, before, m.params, "the override table stays in use")
	assert.Equal(t, 2024, m.params.Year)
	assert.Equal(t, int64(5906), m.result.Optimal.MaxShares)
	assert.NotContains(t, m.help.View(m.keys), "tax year")
}

func TestModelHelpToggle(t *testing.T) {
	m := loadedModel(t)
	m = press(t, m, runeKey('?'))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "reset to plan")
}

func TestNiceStep(t *testing.T) {
	assert.Equal(t, 500.0, niceStep(500))
	assert.Equal(t, 1000.0, niceStep(510))
	assert.Equal(t, 10000.0, niceStep(9000))
	assert.InDelta(t, 1.0, niceStep(0.58), 1e-9)
	assert.Equal(t, 1.0, niceStep(0))
}
