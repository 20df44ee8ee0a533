package output

import (
	"fmt"
	"strings"
)

// ConsoleFormatter renders a plan as a plain-text report
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(plan *Plan) ([]byte, error) {
	if plan == nil || plan.Result == nil {
		return nil, fmt.Errorf("no plan to format")
	}
	in := plan.Input
	res := plan.Result
	opt := res.Optimal

	var sb strings.Builder
	rule := strings.Repeat("=", 80)

	sb.WriteString(rule + "\n")
	sb.WriteString(fmt.Sprintf("ISO EXERCISE PLAN - TAX YEAR %d\n", plan.TaxYear))
	sb.WriteString(rule + "\n")
	sb.WriteString(fmt.Sprintf("Reference: %s\n", plan.Reference))
	if plan.Email != "" {
		sb.WriteString(fmt.Sprintf("Prepared for: %s\n", plan.Email))
	}
	sb.WriteString("\n")

	sb.WriteString("SCENARIO\n")
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	sb.WriteString(fmt.Sprintf("  %-24s %s\n", "Filing status:", in.FilingStatus.Label()))
	if plan.StatusNote != "" {
		sb.WriteString(fmt.Sprintf("  %-24s %s\n", "", plan.StatusNote))
	}
	sb.WriteString(fmt.Sprintf("  %-24s %s\n", "Ordinary income:", FormatCurrency(in.OrdinaryIncome)))
	sb.WriteString(fmt.Sprintf("  %-24s %s\n", "Itemized deductions:", FormatCurrency(in.ItemizedDeductions)))
	sb.WriteString(fmt.Sprintf("  %-24s %s\n", "Strike price:", FormatCurrency(in.ISOStrike)))
	sb.WriteString(fmt.Sprintf("  %-24s %s\n", "Fair market value:", FormatCurrency(in.ISOFMV)))
	sb.WriteString(fmt.Sprintf("  %-24s %s\n", "Shares available:", FormatShares(in.TotalSharesAvailable)))
	sb.WriteString(fmt.Sprintf("  %-24s %s\n", "AMT budget:", FormatCurrency(in.TargetAMTBudget)))
	sb.WriteString("\n")

	sb.WriteString("OPTIMAL RECOMMENDATION\n")
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	sb.WriteString(fmt.Sprintf("  %-24s %s\n", "Exercise:", FormatShares(opt.MaxShares)+" shares"))
	sb.WriteString(fmt.Sprintf("  %-24s %s\n", "Cash needed:", FormatCurrency(opt.CashNeeded)))
	sb.WriteString(fmt.Sprintf("  %-24s %s\n", "Bargain element:", FormatCurrency(opt.BargainElement)))
	sb.WriteString(fmt.Sprintf("  %-24s %s\n", "Projected AMT:", FormatCurrency(opt.ProjectedAMT)))
	sb.WriteString(fmt.Sprintf("  %-24s %s\n", "Projected total tax:", FormatCurrency(opt.ProjectedTotalTax)))
	sb.WriteString(fmt.Sprintf("  %-24s %s\n", "Budget utilization:", FormatPercentage(opt.BudgetUtilization)))
	sb.WriteString("\n")

	sb.WriteString("QUICK SCENARIOS (no budget limit)\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("  %-6s %12s %16s %16s %14s %14s\n", "Tile", "Shares", "Cash", "Bargain", "AMT", "Total Tax"))
	for _, t := range res.Tiles.All() {
		sb.WriteString(fmt.Sprintf("  %-6s %12s %16s %16s %14s %14s\n",
			tileLabel(t), FormatShares(t.Shares), FormatCurrency(t.CashNeeded),
			FormatCurrency(t.BargainElement), FormatCurrency(t.ProjectedAMT), FormatCurrency(t.ProjectedTotalTax)))
	}
	sb.WriteString("\n")

	sb.WriteString("FMV SENSITIVITY (same budget)\n")
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	for _, row := range sensitivityRows(res.Sensitivity) {
		if row.Result == nil {
			sb.WriteString(fmt.Sprintf("  %-10s not meaningful: FMV at or below strike\n", row.Label))
			continue
		}
		sb.WriteString(fmt.Sprintf("  %-10s FMV %s: %s shares, AMT %s\n",
			row.Label, FormatCurrency(row.Result.FMV), FormatShares(row.Result.MaxShares), FormatCurrency(row.Result.ProjectedAMT)))
	}
	sb.WriteString("\n")

	d := opt.TaxDetails
	sb.WriteString(fmt.Sprintf("TAX DETAILS AT %s SHARES\n", FormatShares(opt.MaxShares)))
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	for _, line := range []struct {
		label string
		value string
	}{
		{"Regular taxable income:", FormatCurrency(d.RegularTaxableIncome)},
		{"Regular tax:", FormatCurrency(d.RegularTax)},
		{"AMT income:", FormatCurrency(d.AMTIncome)},
		{"AMT exemption:", FormatCurrency(d.AMTExemption)},
		{"AMT taxable income:", FormatCurrency(d.AMTTaxableIncome)},
		{"Tentative minimum tax:", FormatCurrency(d.TentativeMinimumTax)},
		{"AMT owed:", FormatCurrency(d.AMTOwed)},
		{"Total tax owed:", FormatCurrency(d.TotalTaxOwed)},
		{"Effective tax rate:", FormatRate(d.EffectiveTaxRate)},
	} {
		sb.WriteString(fmt.Sprintf("  %-24s %s\n", line.label, line.value))
	}
	sb.WriteString("\n")

	sb.WriteString("ASSUMPTIONS\n")
	for _, a := range DefaultAssumptions {
		sb.WriteString("  - " + a + "\n")
	}
	sb.WriteString("\n" + Disclaimer + "\n")

	return []byte(sb.String()), nil
}
