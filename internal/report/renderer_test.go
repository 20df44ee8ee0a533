package report

import (
	"context"
	"strings"
	"testing"

	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/rgehrsitz/isoamt/internal/optimizer"
	"github.com/rgehrsitz/isoamt/internal/output"
	"github.com/rgehrsitz/isoamt/internal/taxparams"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan(t *testing.T) *output.Plan {
	t.Helper()
	input := domain.OptimizationInput{
		OrdinaryIncome:       decimal.NewFromInt(150000),
		FilingStatus:         domain.FilingStatusSingle,
		ISOStrike:            decimal.NewFromInt(1),
		ISOFMV:               decimal.NewFromInt(10),
		TotalSharesAvailable: 10000,
		TargetAMTBudget:      decimal.NewFromInt(5000),
	}
	result, err := optimizer.PerformCompleteOptimization(input, taxparams.TaxYear2024())
	require.NoError(t, err)
	return output.NewPlan(2024, input, &result)
}

func TestApplyPrintLayoutHooksBreaksBeforeAssumptions(t *testing.T) {
	in := "<h2>Recommendation</h2><p>x</p><h2>Assumptions</h2><ul></ul>"
	out := applyPrintLayoutHooks(in)
	assert.Contains(t, out, `<h2 data-page-break-before="true">Assumptions</h2>`)
	assert.Contains(t, out, "<h2>Recommendation</h2>")
}

func TestApplyPrintLayoutHooksNoopWhenHeadingMissing(t *testing.T) {
	in := "<h2>Recommendation</h2><p>x</p>"
	assert.Equal(t, in, applyPrintLayoutHooks(in))
}

func TestHTMLRenderer(t *testing.T) {
	plan := testPlan(t)

	doc, err := HTMLRenderer{}.Render(context.Background(), plan)
	require.NoError(t, err)
	text := string(doc)
	assert.Contains(t, text, plan.Reference)
	assert.Contains(t, text, `data-page-break-before="true">Assumptions`)
	assert.Contains(t, text, "<table>")
}

func TestHTMLRendererHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := HTMLRenderer{}.Render(ctx, testPlan(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChromePathFromEnvironment(t *testing.T) {
	t.Setenv(ChromePathEnv, "/opt/chrome/chrome")
	r := NewChromiumPDFRenderer()
	assert.Equal(t, "/opt/chrome/chrome", r.chromePath)
}

func TestPrintParamsLetterWithFooter(t *testing.T) {
	params := printParams("ref-42")
	assert.Equal(t, 8.5, params.PaperWidth)
	assert.Equal(t, 11.0, params.PaperHeight)
	assert.Equal(t, 0.75, params.MarginBottom)
	assert.True(t, params.DisplayHeaderFooter)
	assert.True(t, params.PrintBackground)
	assert.Contains(t, params.FooterTemplate, "ref-42")
}

func TestFooterTemplateCarriesReference(t *testing.T) {
	footer := footerTemplate("abc-123")
	assert.True(t, strings.Contains(footer, "abc-123"))
	assert.Contains(t, footer, `class="pageNumber"`)
}

var _ Renderer = HTMLRenderer{}
var _ Renderer = (*ChromiumPDFRenderer)(nil)
