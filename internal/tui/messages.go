package tui

import (
	"github.com/rgehrsitz/isoamt/internal/config"
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/shopspring/decimal"
)

// Message types for the Bubble Tea update cycle

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// PlanLoadedMsg carries the parsed plan file and its parameter table.
// ParamsPath is the resolved tax table override, if the plan names one.
type PlanLoadedMsg struct {
	Path       string
	ParamsPath string
	Plan       *config.PlanFile
	Input      domain.OptimizationInput
	Params     *domain.TaxParameters
}

// PlanCalculatedMsg carries a finished complete optimization. Baseline marks
// the run for the plan file's own values, which trends are measured against.
// Seq identifies the slider-driven run that produced it.
type PlanCalculatedMsg struct {
	Input    domain.OptimizationInput
	Year     int
	Seq      int
	Result   *domain.CompleteOptimizationResult
	Curve    []decimal.Decimal
	Baseline bool
	Err      error
}
