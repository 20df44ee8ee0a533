package main

import (
	"fmt"
	"strconv"

	"github.com/rgehrsitz/isoamt/internal/taxparams"
	"github.com/spf13/cobra"
)

func validateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [plan-file]",
		Short: "Validate a plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(opts, args[0], 0)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan file %s is valid (tax year %d, %s)\n", args[0], s.params.Year, s.input.FilingStatus.Label())
			if s.note != "" {
				fmt.Fprintln(cmd.OutOrStdout(), s.note)
			}
			return nil
		},
	}
}

func paramsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "params [year]",
		Short: "Print a tax parameter table as YAML",
		Long: `Print the built-in tax parameter table for a year (default ` + strconv.Itoa(taxparams.DefaultYear) + `).
With --params-file the file is validated and printed instead. The output is a
valid --params-file, so it can be edited for a new tax year.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := 0
			if len(args) == 1 {
				y, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid year %q", args[0])
				}
				year = y
			}
			params, err := taxparams.Resolve(year, opts.paramsFile)
			if err != nil {
				return err
			}
			data, err := taxparams.Marshal(params)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

