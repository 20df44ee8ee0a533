package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/isoamt/internal/config"
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/rgehrsitz/isoamt/internal/optimizer"
	"github.com/rgehrsitz/isoamt/internal/output"
	"github.com/rgehrsitz/isoamt/internal/secure"
	"github.com/rgehrsitz/isoamt/internal/taxparams"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// scenario is a loaded plan file bound to its parameter table
type scenario struct {
	plan    *config.PlanFile
	input   domain.OptimizationInput
	params  *domain.TaxParameters
	note    string
	planner *optimizer.Planner
}

// loadScenario reads a plan and resolves its tax table. A non-zero year
// replaces the plan's tax year.
func loadScenario(opts *globalOptions, path string, year int) (*scenario, error) {
	plan, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if year != 0 {
		plan.TaxYear = year
	}
	input, err := plan.OptimizationInput()
	if err != nil {
		return nil, err
	}

	paramsPath := opts.paramsFile
	if paramsPath == "" && plan.ParametersFile != "" {
		paramsPath = plan.ParametersFile
		if !filepath.IsAbs(paramsPath) {
			paramsPath = filepath.Join(filepath.Dir(path), paramsPath)
		}
	}
	params, err := taxparams.Resolve(plan.TaxYear, paramsPath)
	if err != nil {
		return nil, err
	}

	logger := opts.logger()
	s := &scenario{plan: plan, input: input, params: params, planner: optimizer.NewPlanner(params, logger)}
	if _, approximated, _ := config.NormalizeFilingStatus(plan.FilingStatus); approximated {
		s.note = fmt.Sprintf("Filing status %q is computed with the %s table.", plan.FilingStatus, input.FilingStatus.Label())
		logger.Warnf("%s", s.note)
	}
	return s, nil
}

func (s *scenario) newPlan(result *domain.CompleteOptimizationResult) *output.Plan {
	p := output.NewPlan(s.params.Year, s.input, result)
	p.Email = s.plan.Email
	p.StatusNote = s.note
	return p
}

// parseDecimals parses flag values such as 0.25,0.5,1
func parseDecimals(flag string, values []string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("--%s: %q is not a number", flag, v)
		}
		out = append(out, d)
	}
	return out, nil
}

// writeResult sends data to stdout, or to path when one is given,
// sealing it with age first when encrypt is set.
func writeResult(cmd *cobra.Command, data []byte, path string, encrypt bool) error {
	if encrypt {
		if path == "" {
			return fmt.Errorf("--encrypt requires --output")
		}
		pass, err := secure.Passphrase("Passphrase: ")
		if err != nil {
			return err
		}
		if data, err = secure.Seal(data, pass); err != nil {
			return err
		}
	}
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}
