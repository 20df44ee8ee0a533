package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVFormatter emits one row per scenario: the optimum, each tile and each
// sensitivity side. Skipped sensitivity sides are left out and total tax is
// blank for sensitivity rows.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(plan *Plan) ([]byte, error) {
	if plan == nil || plan.Result == nil {
		return nil, fmt.Errorf("no plan to format")
	}
	in := plan.Input
	res := plan.Result

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	rows := [][]string{{"scenario", "fmv", "shares", "cash_needed", "bargain_element", "projected_amt", "projected_total_tax"}}

	opt := res.Optimal
	rows = append(rows, []string{
		"optimal", in.ISOFMV.StringFixed(2), strconv.FormatInt(opt.MaxShares, 10),
		opt.CashNeeded.StringFixed(2), opt.BargainElement.StringFixed(2),
		opt.ProjectedAMT.StringFixed(2), opt.ProjectedTotalTax.StringFixed(2),
	})
	for _, t := range res.Tiles.All() {
		rows = append(rows, []string{
			"tile_" + strings.TrimSuffix(tileLabel(t), "%"), in.ISOFMV.StringFixed(2), strconv.FormatInt(t.Shares, 10),
			t.CashNeeded.StringFixed(2), t.BargainElement.StringFixed(2),
			t.ProjectedAMT.StringFixed(2), t.ProjectedTotalTax.StringFixed(2),
		})
	}
	for _, side := range []struct {
		name string
		s    *domain.SensitivityResult
	}{
		{"sensitivity_down", res.Sensitivity.Down},
		{"sensitivity_up", res.Sensitivity.Up},
	} {
		s := side.s
		if s == nil {
			continue
		}
		shares := decimal.NewFromInt(s.MaxShares)
		rows = append(rows, []string{
			side.name, s.FMV.StringFixed(2), strconv.FormatInt(s.MaxShares, 10),
			in.ISOStrike.Mul(shares).StringFixed(2), s.FMV.Sub(in.ISOStrike).Mul(shares).StringFixed(2),
			s.ProjectedAMT.StringFixed(2), "",
		})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
