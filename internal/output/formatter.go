package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/shopspring/decimal"
)

// Plan is a complete optimization together with the scenario that produced it.
// StatusNote explains a filing status that had to be approximated.
type Plan struct {
	Reference   string                             `json:"reference"`
	GeneratedAt time.Time                          `json:"generated_at"`
	TaxYear     int                                `json:"tax_year"`
	Email       string                             `json:"email,omitempty"`
	StatusNote  string                             `json:"status_note,omitempty"`
	Input       domain.OptimizationInput           `json:"input"`
	Result      *domain.CompleteOptimizationResult `json:"result"`
}

// NewPlan wraps a result with a fresh reference ID
func NewPlan(taxYear int, input domain.OptimizationInput, result *domain.CompleteOptimizationResult) *Plan {
	return &Plan{
		Reference:   uuid.New().String(),
		GeneratedAt: time.Now(),
		TaxYear:     taxYear,
		Input:       input,
		Result:      result,
	}
}

// Formatter renders a plan in one output format
type Formatter interface {
	Name() string
	Format(plan *Plan) ([]byte, error)
}

// GetFormatterByName returns the formatter for a format name, or nil
func GetFormatterByName(name string) Formatter {
	switch strings.ToLower(name) {
	case "console", "table", "":
		return ConsoleFormatter{}
	case "json":
		return JSONFormatter{Pretty: true}
	case "csv":
		return CSVFormatter{}
	case "markdown", "md":
		return MarkdownFormatter{}
	case "html":
		return HTMLFormatter{}
	}
	return nil
}

// WriteFormatted renders the plan and writes it to path. An empty path
// writes isoamt_plan_<timestamp>.<ext> in the working directory.
func WriteFormatted(f Formatter, plan *Plan, path, ext string) (string, error) {
	data, err := f.Format(plan)
	if err != nil {
		return "", fmt.Errorf("format %s: %w", f.Name(), err)
	}
	if path == "" {
		path = fmt.Sprintf("isoamt_plan_%s.%s", time.Now().Format("20060102_150405"), ext)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// FormatNames lists the accepted --format values
func FormatNames() []string {
	return []string{"console", "json", "csv", "markdown", "html"}
}

// FormatCurrency renders an amount as $1,234.56
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	whole, frac := fixed[:len(fixed)-3], fixed[len(fixed)-3:]
	return sign + "$" + groupThousands(whole) + frac
}

// FormatShares renders a share count with thousands separators
func FormatShares(shares int64) string {
	s := decimal.NewFromInt(shares).String()
	if shares < 0 {
		return "-" + groupThousands(s[1:])
	}
	return groupThousands(s)
}

// FormatPercentage renders a percentage value (already x100)
func FormatPercentage(pct decimal.Decimal) string {
	return pct.StringFixed(2) + "%"
}

// FormatRate renders a fraction as a percentage
func FormatRate(rate decimal.Decimal) string {
	return FormatPercentage(rate.Mul(decimal.NewFromInt(100)))
}

// FormatAdjustment renders a signed FMV adjustment such as -10%
func FormatAdjustment(adj decimal.Decimal) string {
	pct := adj.Mul(decimal.NewFromInt(100))
	if pct.IsPositive() {
		return "+" + pct.String() + "%"
	}
	return pct.String() + "%"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// sensitivityRows pairs each side label with its result, nil when skipped
func sensitivityRows(s domain.Sensitivity) []struct {
	Label  string
	Result *domain.SensitivityResult
} {
	return []struct {
		Label  string
		Result *domain.SensitivityResult
	}{
		{"FMV -10%", s.Down},
		{"FMV +10%", s.Up},
	}
}

// tileLabel names a tile by its percentage
func tileLabel(t domain.TileResult) string {
	return t.Percentage.Mul(decimal.NewFromInt(100)).String() + "%"
}
