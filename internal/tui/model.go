package tui

import (
	"context"
	"math"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/isoamt/internal/config"
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/rgehrsitz/isoamt/internal/optimizer"
	"github.com/rgehrsitz/isoamt/internal/output"
	"github.com/rgehrsitz/isoamt/internal/taxparams"
	"github.com/rgehrsitz/isoamt/internal/tui/components"
	"github.com/shopspring/decimal"
)

// slider positions
const (
	sliderBudget = iota
	sliderFMV
	sliderIncome
)

// curvePoints are the grant fractions plotted on the AMT chart
var curvePoints = func() []decimal.Decimal {
	pts := make([]decimal.Decimal, 11)
	for i := range pts {
		pts[i] = decimal.New(int64(i), -1)
	}
	return pts
}()

// Model represents the entire application state
type Model struct {
	// Terminal dimensions
	width  int
	height int

	planPath string
	// paramsPath is the plan's tax table override, empty for built-in tables
	paramsPath string
	plan       *config.PlanFile
	base       domain.OptimizationInput
	params     *domain.TaxParameters
	planner    *optimizer.Planner
	preloaded  *PlanLoadedMsg

	sliders []*components.ParameterSlider
	focus   int

	// baseline is the plan file's own scenario at the current year
	baseline *domain.CompleteOptimizationResult
	result   *domain.CompleteOptimizationResult
	curve    []decimal.Decimal

	// seq numbers slider-driven runs; only the latest one is shown
	seq    int
	cancel context.CancelFunc

	keys keyMap
	help help.Model

	err     error
	loading bool
}

// NewModel creates a model that loads the plan file at planPath on start
func NewModel(planPath string) Model {
	return Model{
		planPath: planPath,
		keys:     defaultKeyMap(),
		help:     help.New(),
		width:    100,
		height:   40,
		loading:  true,
	}
}

// NewModelFromPlan creates a model for a plan loaded before the program
// starts, so a passphrase prompt never competes with the TUI for stdin
func NewModelFromPlan(loaded PlanLoadedMsg) Model {
	m := NewModel(loaded.Path)
	m.preloaded = &loaded
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.preloaded != nil {
		loaded := *m.preloaded
		return func() tea.Msg { return loaded }
	}
	return loadPlanCmd(m.planPath)
}

// LoadPlan reads and validates the plan file and resolves its tax table.
// Encrypted plans may prompt for a passphrase on the terminal.
func LoadPlan(path string) (PlanLoadedMsg, error) {
	plan, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return PlanLoadedMsg{}, err
	}
	input, err := plan.OptimizationInput()
	if err != nil {
		return PlanLoadedMsg{}, err
	}
	paramsPath := plan.ParametersFile
	if paramsPath != "" && !filepath.IsAbs(paramsPath) {
		paramsPath = filepath.Join(filepath.Dir(path), paramsPath)
	}
	params, err := taxparams.Resolve(plan.TaxYear, paramsPath)
	if err != nil {
		return PlanLoadedMsg{}, err
	}
	return PlanLoadedMsg{Path: path, ParamsPath: paramsPath, Plan: plan, Input: input, Params: params}, nil
}

func loadPlanCmd(path string) tea.Cmd {
	return func() tea.Msg {
		loaded, err := LoadPlan(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return loaded
	}
}

// calculateCmd runs the complete optimization and the AMT curve off the
// update loop
func calculateCmd(ctx context.Context, planner *optimizer.Planner, input domain.OptimizationInput, seq int, baseline bool) tea.Cmd {
	return func() tea.Msg {
		msg := PlanCalculatedMsg{Input: input, Year: planner.Params.Year, Seq: seq, Baseline: baseline}
		msg.Result, msg.Err = planner.Plan(ctx, input)
		if msg.Err != nil {
			return msg
		}
		tiles, err := planner.Tiles(ctx, input, curvePoints...)
		if err != nil {
			msg.Err = err
			return msg
		}
		for _, t := range tiles {
			msg.Curve = append(msg.Curve, t.ProjectedAMT)
		}
		return msg
	}
}

// recalculate starts a run for input and cancels the run it supersedes
func (m *Model) recalculate(input domain.OptimizationInput) tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.seq++
	return calculateCmd(ctx, m.planner, input, m.seq, false)
}

func (m Model) baselineCmd() tea.Cmd {
	return calculateCmd(context.Background(), m.planner, m.base, 0, true)
}

// buildSliders sizes each slider around the plan's own value
func buildSliders(in domain.OptimizationInput) []*components.ParameterSlider {
	budget := in.TargetAMTBudget.InexactFloat64()
	fmv := in.ISOFMV.InexactFloat64()
	strike := in.ISOStrike.InexactFloat64()
	income := in.OrdinaryIncome.InexactFloat64()
	money := func(v float64) string { return output.FormatCurrency(decimal.NewFromFloat(v)) }

	budgetMax := math.Max(4*budget, 25000)
	fmvMax := math.Max(3*fmv, 2*strike+1)
	incomeMax := math.Max(3*income, 200000)

	return []*components.ParameterSlider{
		components.NewParameterSlider("AMT budget", budget, 0, budgetMax, niceStep(budgetMax/50)).
			WithFormat(money).
			WithDescription("Most AMT you are willing to pay on top of the no-exercise baseline"),
		components.NewParameterSlider("Fair market value", fmv, strike, fmvMax, niceStep((fmvMax-strike)/50)).
			WithFormat(money).
			WithDescription("Per-share FMV at exercise; must stay above the strike"),
		components.NewParameterSlider("Ordinary income", income, 0, incomeMax, niceStep(incomeMax/50)).
			WithFormat(money).
			WithDescription("W-2 and other ordinary income for the year"),
	}
}

// niceStep rounds x up to 1, 2 or 5 times a power of ten
func niceStep(x float64) float64 {
	if x <= 0 {
		return 1
	}
	base := math.Pow(10, math.Floor(math.Log10(x)))
	for _, mult := range []float64{1, 2, 5, 10} {
		if mult*base >= x {
			return mult * base
		}
	}
	return 10 * base
}

// currentInput applies the slider values to the plan's scenario
func (m Model) currentInput() domain.OptimizationInput {
	in := m.base
	if len(m.sliders) == 0 {
		return in
	}
	in.TargetAMTBudget = decimal.NewFromFloat(m.sliders[sliderBudget].Value).Round(2)
	in.ISOFMV = decimal.NewFromFloat(m.sliders[sliderFMV].Value).Round(2)
	in.OrdinaryIncome = decimal.NewFromFloat(m.sliders[sliderIncome].Value).Round(2)
	return in
}

// nextYear returns the supported tax year after the current one, wrapping
func (m Model) nextYear() int {
	years := taxparams.SupportedYears()
	for i, y := range years {
		if y == m.params.Year {
			return years[(i+1)%len(years)]
		}
	}
	return years[0]
}
