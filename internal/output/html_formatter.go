package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTMLFormatter produces a standalone HTML report from the markdown rendering.
// The same document is what the PDF renderer prints.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/plan.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("plan").Parse(htmlTemplateSource))

var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

func (h HTMLFormatter) Format(plan *Plan) ([]byte, error) {
	md, err := MarkdownFormatter{}.Format(plan)
	if err != nil {
		return nil, err
	}
	var body bytes.Buffer
	if err := markdownRenderer.Convert(md, &body); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	var buf bytes.Buffer
	data := struct {
		TaxYear   int
		Reference string
		Email     string
		Body      template.HTML
	}{plan.TaxYear, plan.Reference, plan.Email, template.HTML(body.String())}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
