package output

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders the plan as GitHub-flavored markdown. It is the
// source document for the HTML and PDF reports.
type MarkdownFormatter struct{}

func (MarkdownFormatter) Name() string { return "markdown" }

func (MarkdownFormatter) Format(plan *Plan) ([]byte, error) {
	if plan == nil || plan.Result == nil {
		return nil, fmt.Errorf("no plan to format")
	}
	in := plan.Input
	res := plan.Result
	opt := res.Optimal
	d := opt.TaxDetails

	var sb strings.Builder
	fmt.Fprintf(&sb, "# ISO Exercise Plan: Tax Year %d\n\n", plan.TaxYear)
	fmt.Fprintf(&sb, "Reference `%s`, generated %s", plan.Reference, plan.GeneratedAt.Format("January 2, 2006"))
	if plan.Email != "" {
		fmt.Fprintf(&sb, " for %s", plan.Email)
	}
	sb.WriteString(".\n\n")

	sb.WriteString("## Scenario\n\n")
	sb.WriteString("| Item | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Filing status | %s |\n", in.FilingStatus.Label())
	fmt.Fprintf(&sb, "| Ordinary income | %s |\n", FormatCurrency(in.OrdinaryIncome))
	fmt.Fprintf(&sb, "| Itemized deductions | %s |\n", FormatCurrency(in.ItemizedDeductions))
	fmt.Fprintf(&sb, "| Strike price | %s |\n", FormatCurrency(in.ISOStrike))
	fmt.Fprintf(&sb, "| Fair market value | %s |\n", FormatCurrency(in.ISOFMV))
	fmt.Fprintf(&sb, "| Shares available | %s |\n", FormatShares(in.TotalSharesAvailable))
	fmt.Fprintf(&sb, "| AMT budget | %s |\n\n", FormatCurrency(in.TargetAMTBudget))
	if plan.StatusNote != "" {
		fmt.Fprintf(&sb, "> %s\n\n", plan.StatusNote)
	}

	sb.WriteString("## Recommendation\n\n")
	fmt.Fprintf(&sb, "Exercise **%s shares** for **%s** in cash. Projected AMT is %s (%s of the budget) and total federal tax is %s.\n\n",
		FormatShares(opt.MaxShares), FormatCurrency(opt.CashNeeded), FormatCurrency(opt.ProjectedAMT),
		FormatPercentage(opt.BudgetUtilization), FormatCurrency(opt.ProjectedTotalTax))

	sb.WriteString("## Quick Scenarios\n\n")
	sb.WriteString("Tiles ignore the budget and show the cost of exercising a fixed share of the grant.\n\n")
	sb.WriteString("| Tile | Shares | Cash needed | Bargain element | AMT | Total tax |\n|---|---:|---:|---:|---:|---:|\n")
	for _, t := range res.Tiles.All() {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %s |\n", tileLabel(t), FormatShares(t.Shares),
			FormatCurrency(t.CashNeeded), FormatCurrency(t.BargainElement),
			FormatCurrency(t.ProjectedAMT), FormatCurrency(t.ProjectedTotalTax))
	}
	sb.WriteString("\n")

	sb.WriteString("## FMV Sensitivity\n\n")
	sb.WriteString("| Case | FMV | Max shares | AMT |\n|---|---:|---:|---:|\n")
	for _, row := range sensitivityRows(res.Sensitivity) {
		if row.Result == nil {
			fmt.Fprintf(&sb, "| %s | at or below strike | - | - |\n", row.Label)
			continue
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", row.Label, FormatCurrency(row.Result.FMV),
			FormatShares(row.Result.MaxShares), FormatCurrency(row.Result.ProjectedAMT))
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "## Tax Details at %s Shares\n\n", FormatShares(opt.MaxShares))
	sb.WriteString("| Line | Amount |\n|---|---:|\n")
	fmt.Fprintf(&sb, "| Regular taxable income | %s |\n", FormatCurrency(d.RegularTaxableIncome))
	fmt.Fprintf(&sb, "| Regular tax | %s |\n", FormatCurrency(d.RegularTax))
	fmt.Fprintf(&sb, "| Bargain element | %s |\n", FormatCurrency(d.BargainElement))
	fmt.Fprintf(&sb, "| AMT income | %s |\n", FormatCurrency(d.AMTIncome))
	fmt.Fprintf(&sb, "| AMT exemption | %s |\n", FormatCurrency(d.AMTExemption))
	fmt.Fprintf(&sb, "| AMT taxable income | %s |\n", FormatCurrency(d.AMTTaxableIncome))
	fmt.Fprintf(&sb, "| Tentative minimum tax | %s |\n", FormatCurrency(d.TentativeMinimumTax))
	fmt.Fprintf(&sb, "| AMT owed | %s |\n", FormatCurrency(d.AMTOwed))
	fmt.Fprintf(&sb, "| Total tax owed | %s |\n", FormatCurrency(d.TotalTaxOwed))
	fmt.Fprintf(&sb, "| Effective tax rate | %s |\n\n", FormatRate(d.EffectiveTaxRate))

	sb.WriteString("## Assumptions\n\n")
	for _, a := range DefaultAssumptions {
		sb.WriteString("- " + a + "\n")
	}
	sb.WriteString("\n_" + Disclaimer + "_\n")

	return []byte(sb.String()), nil
}
