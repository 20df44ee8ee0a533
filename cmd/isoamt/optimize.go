package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/isoamt/internal/output"
	"github.com/spf13/cobra"
)

func optimizeCmd(opts *globalOptions) *cobra.Command {
	var (
		format  string
		year    int
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "optimize [plan-file]",
		Short: "Find the most shares exercisable within the AMT budget",
		Long: `Run the complete optimization for a plan: the budget-constrained optimum,
25/50/100 percent quick scenarios and a +/-10% FMV sensitivity check.

Examples:
  isoamt optimize plan.yaml
  isoamt optimize plan.yaml --format json --output plan.json
  isoamt optimize plan.yaml --year 2024`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unsupported format %q (available: %s)", format, strings.Join(output.FormatNames(), ", "))
			}
			s, err := loadScenario(opts, args[0], year)
			if err != nil {
				return err
			}
			result, err := s.planner.Plan(cmd.Context(), s.input)
			if err != nil {
				return err
			}
			plan := s.newPlan(result)
			if outPath != "" {
				written, err := output.WriteFormatted(f, plan, outPath, f.Name())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", written)
				return nil
			}
			data, err := f.Format(plan)
			if err != nil {
				return err
			}
			return writeResult(cmd, data, "", false)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format ("+strings.Join(output.FormatNames(), ", ")+")")
	cmd.Flags().IntVar(&year, "year", 0, "Tax year overriding the plan file")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}
