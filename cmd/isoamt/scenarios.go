package main

import (
	"fmt"

	"github.com/rgehrsitz/isoamt/internal/optimizer"
	"github.com/rgehrsitz/isoamt/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func tilesCmd(opts *globalOptions) *cobra.Command {
	var percentages []string
	cmd := &cobra.Command{
		Use:   "tiles [plan-file]",
		Short: "Show the cost of exercising fixed fractions of the grant",
		Long: `Quick scenarios ignore the AMT budget and show cash, bargain element and
tax for exercising a fixed fraction of the available shares.

Examples:
  isoamt tiles plan.yaml
  isoamt tiles plan.yaml --percentages 0.1,0.2,0.3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pcts, err := parseDecimals("percentages", percentages)
			if err != nil {
				return err
			}
			s, err := loadScenario(opts, args[0], 0)
			if err != nil {
				return err
			}
			tiles, err := s.planner.Tiles(cmd.Context(), s.input, pcts...)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "  %-6s %12s %16s %16s %14s %14s\n", "Tile", "Shares", "Cash", "Bargain", "AMT", "Total Tax")
			for _, t := range tiles {
				fmt.Fprintf(w, "  %-6s %12s %16s %16s %14s %14s\n",
					t.Percentage.Mul(decimal.NewFromInt(100)).String()+"%", output.FormatShares(t.Shares),
					output.FormatCurrency(t.CashNeeded), output.FormatCurrency(t.BargainElement),
					output.FormatCurrency(t.ProjectedAMT), output.FormatCurrency(t.ProjectedTotalTax))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&percentages, "percentages", decimalStrings(optimizer.DefaultTilePercentages()), "Fractions of the available shares")
	return cmd
}

func sensitivityCmd(opts *globalOptions) *cobra.Command {
	var adjustments []string
	cmd := &cobra.Command{
		Use:   "sensitivity [plan-file]",
		Short: "Rerun the optimizer at adjusted fair market values",
		Long: `Rerun the budget-constrained optimizer with the FMV moved by each relative
adjustment. Adjustments that put the FMV at or below the strike are skipped.

Examples:
  isoamt sensitivity plan.yaml
  isoamt sensitivity plan.yaml --adjustments=-0.2,-0.1,0.1,0.2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adjs, err := parseDecimals("adjustments", adjustments)
			if err != nil {
				return err
			}
			s, err := loadScenario(opts, args[0], 0)
			if err != nil {
				return err
			}
			results, err := s.planner.Sensitivity(cmd.Context(), s.input, adjs...)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "  %-10s %14s %12s %14s\n", "Change", "FMV", "Max Shares", "AMT")
			for _, r := range results {
				fmt.Fprintf(w, "  %-10s %14s %12s %14s\n", output.FormatAdjustment(r.Adjustment),
					output.FormatCurrency(r.FMV), output.FormatShares(r.MaxShares), output.FormatCurrency(r.ProjectedAMT))
			}
			if skipped := len(adjs) - len(results); skipped > 0 {
				fmt.Fprintf(w, "\n%d adjustment(s) skipped: adjusted FMV at or below strike %s\n", skipped, output.FormatCurrency(s.input.ISOStrike))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&adjustments, "adjustments", decimalStrings(optimizer.DefaultFMVAdjustments()), "Relative FMV changes")
	return cmd
}

func decimalStrings(values []decimal.Decimal) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}
