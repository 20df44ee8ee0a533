package domain

import (
	"github.com/shopspring/decimal"
)

// OptimizationInput is the scenario handed to the share optimizer
type OptimizationInput struct {
	OrdinaryIncome       decimal.Decimal `json:"ordinary_income"`
	ItemizedDeductions   decimal.Decimal `json:"itemized_deductions"`
	FilingStatus         FilingStatus    `json:"filing_status"`
	ISOStrike            decimal.Decimal `json:"iso_strike"`
	ISOFMV               decimal.Decimal `json:"iso_fmv"`
	TotalSharesAvailable int64           `json:"total_shares_available"`
	TargetAMTBudget      decimal.Decimal `json:"target_amt_budget"`
}

// TaxInput builds the calculator input for exercising the given number of shares
func (in OptimizationInput) TaxInput(shares int64) TaxInput {
	return TaxInput{
		OrdinaryIncome:     in.OrdinaryIncome,
		ItemizedDeductions: in.ItemizedDeductions,
		FilingStatus:       in.FilingStatus,
		ISOStrike:          in.ISOStrike,
		ISOFMV:             in.ISOFMV,
		SharesExercised:    shares,
	}
}

// WithFMV returns a copy of the input priced at a different fair market value
func (in OptimizationInput) WithFMV(fmv decimal.Decimal) OptimizationInput {
	in.ISOFMV = fmv
	return in
}

// OptimizationResult is the outcome of the budget-constrained share search
type OptimizationResult struct {
	MaxShares         int64           `json:"max_shares"`
	ProjectedAMT      decimal.Decimal `json:"projected_amt"`
	ProjectedTotalTax decimal.Decimal `json:"projected_total_tax"`
	BargainElement    decimal.Decimal `json:"bargain_element"`
	BudgetUtilization decimal.Decimal `json:"budget_utilization"` // percent of budget used
	CashNeeded        decimal.Decimal `json:"cash_needed"`
	TaxDetails        TaxResult       `json:"tax_details"`
}

// TileResult is the unconstrained outcome of exercising a fixed share of the grant
type TileResult struct {
	Percentage        decimal.Decimal `json:"percentage"`
	Shares            int64           `json:"shares"`
	CashNeeded        decimal.Decimal `json:"cash_needed"`
	BargainElement    decimal.Decimal `json:"bargain_element"`
	ProjectedAMT      decimal.Decimal `json:"projected_amt"`
	ProjectedTotalTax decimal.Decimal `json:"projected_total_tax"`
}

// SensitivityResult is the optimizer outcome at a perturbed FMV
type SensitivityResult struct {
	Adjustment   decimal.Decimal `json:"adjustment"`
	FMV          decimal.Decimal `json:"fmv"`
	MaxShares    int64           `json:"max_shares"`
	ProjectedAMT decimal.Decimal `json:"projected_amt"`
}

// Tiles exposes the three canonical tiles by name
type Tiles struct {
	Tile25  TileResult `json:"tile25"`
	Tile50  TileResult `json:"tile50"`
	Tile100 TileResult `json:"tile100"`
}

// All returns the tiles in ascending order
func (t Tiles) All() []TileResult {
	return []TileResult{t.Tile25, t.Tile50, t.Tile100}
}

// Sensitivity holds the FMV-down and FMV-up results; either may be nil
// when the adjusted FMV does not exceed the strike price.
type Sensitivity struct {
	Down *SensitivityResult `json:"down,omitempty"`
	Up   *SensitivityResult `json:"up,omitempty"`
}

// CompleteOptimizationResult aggregates the optimizer, tiles and sensitivity
type CompleteOptimizationResult struct {
	Optimal     OptimizationResult `json:"optimal"`
	Tiles       Tiles              `json:"tiles"`
	Sensitivity Sensitivity        `json:"sensitivity"`
}
