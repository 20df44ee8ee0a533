package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/rgehrsitz/isoamt/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func taxCmd(opts *globalOptions) *cobra.Command {
	var (
		shares    int64
		otherAdjs string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "tax [plan-file]",
		Short: "Compute regular tax and AMT for a specific exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if shares < 0 {
				return fmt.Errorf("--shares cannot be negative")
			}
			s, err := loadScenario(opts, args[0], 0)
			if err != nil {
				return err
			}
			input, err := s.plan.TaxInput(shares)
			if err != nil {
				return err
			}
			if otherAdjs != "" {
				adj, err := decimal.NewFromString(otherAdjs)
				if err != nil {
					return fmt.Errorf("--other-adjustments: %q is not a number", otherAdjs)
				}
				input.OtherAMTAdjustments = adj
			}

			result, err := s.planner.Tax(cmd.Context(), input)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			printTaxResult(cmd.OutOrStdout(), s.params.Year, input, result)
			return nil
		},
	}
	cmd.Flags().Int64Var(&shares, "shares", 0, "Shares exercised")
	cmd.Flags().StringVar(&otherAdjs, "other-adjustments", "", "Other AMT adjustments, overriding the plan file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func printTaxResult(w io.Writer, year int, in domain.TaxInput, r domain.TaxResult) {
	fmt.Fprintf(w, "TAX YEAR %d, %s, %s SHARES EXERCISED\n", year, in.FilingStatus.Label(), output.FormatShares(in.SharesExercised))
	for _, line := range []struct {
		label string
		value string
	}{
		{"Regular taxable income:", output.FormatCurrency(r.RegularTaxableIncome)},
		{"Regular tax:", output.FormatCurrency(r.RegularTax)},
		{"Bargain element:", output.FormatCurrency(r.BargainElement)},
		{"AMT income:", output.FormatCurrency(r.AMTIncome)},
		{"AMT exemption:", output.FormatCurrency(r.AMTExemption)},
		{"AMT taxable income:", output.FormatCurrency(r.AMTTaxableIncome)},
		{"Tentative minimum tax:", output.FormatCurrency(r.TentativeMinimumTax)},
		{"AMT owed:", output.FormatCurrency(r.AMTOwed)},
		{"Total tax owed:", output.FormatCurrency(r.TotalTaxOwed)},
		{"Effective tax rate:", output.FormatRate(r.EffectiveTaxRate)},
	} {
		fmt.Fprintf(w, "  %-24s %s\n", line.label, line.value)
	}
}
