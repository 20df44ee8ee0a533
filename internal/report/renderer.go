package report

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rgehrsitz/isoamt/internal/output"
)

// ChromePathEnv overrides Chrome auto-detection
const ChromePathEnv = "ISOAMT_CHROME_PATH"

// Renderer turns a plan into a finished CPA pack document
type Renderer interface {
	Render(ctx context.Context, plan *output.Plan) ([]byte, error)
}

// HTMLRenderer produces the standalone HTML report
type HTMLRenderer struct{}

func (HTMLRenderer) Render(ctx context.Context, plan *output.Plan) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return buildHTML(plan)
}

// ChromiumPDFRenderer prints the HTML report to PDF with headless Chrome
type ChromiumPDFRenderer struct {
	chromePath string
	timeout    time.Duration
}

func NewChromiumPDFRenderer() *ChromiumPDFRenderer {
	path := os.Getenv(ChromePathEnv)
	if path == "" {
		path = detectChromePath()
	}
	return &ChromiumPDFRenderer{chromePath: path, timeout: 60 * time.Second}
}

// Render loads the report into a blank tab and prints it on US letter paper
func (r *ChromiumPDFRenderer) Render(ctx context.Context, plan *output.Plan) ([]byte, error) {
	doc, err := buildHTML(plan)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	ctx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	ctx, cancelTab := chromedp.NewContext(ctx)
	defer cancelTab()

	var pdf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(doc)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) (err error) {
			pdf, _, err = printParams(plan.Reference).Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("render pdf for plan %s: %w", plan.Reference, err)
	}
	return pdf, nil
}

// printParams is letter paper with half-inch margins and a reference footer
func printParams(reference string) *page.PrintToPDFParams {
	return page.PrintToPDF().
		WithPaperWidth(8.5).
		WithPaperHeight(11).
		WithMarginTop(0.5).
		WithMarginBottom(0.75).
		WithMarginLeft(0.5).
		WithMarginRight(0.5).
		WithPrintBackground(true).
		WithDisplayHeaderFooter(true).
		WithHeaderTemplate("<span></span>").
		WithFooterTemplate(footerTemplate(reference))
}

func buildHTML(plan *output.Plan) ([]byte, error) {
	doc, err := output.HTMLFormatter{}.Format(plan)
	if err != nil {
		return nil, err
	}
	return []byte(applyPrintLayoutHooks(string(doc))), nil
}

var assumptionsHeading = regexp.MustCompile(`<h2([^>]*)>\s*Assumptions\s*</h2>`)

// applyPrintLayoutHooks starts the assumptions section on its own page
func applyPrintLayoutHooks(doc string) string {
	return assumptionsHeading.ReplaceAllString(doc, `<h2$1 data-page-break-before="true">Assumptions</h2>`)
}

func footerTemplate(reference string) string {
	return `<div style="width:100%;font-size:9px;color:#666;padding:0 12px;display:flex;justify-content:space-between;">` +
		`<span>` + reference + `</span>` +
		`<span>Page <span class="pageNumber"></span> of <span class="totalPages"></span></span></div>`
}

func detectChromePath() string {
	candidates := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
