package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// ErrTemplateRender indicates a document template failed to execute.
var ErrTemplateRender = errors.New("document template rendering failed")

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized to prevent injection attacks.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	// Check for cancellation
	if ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	// Try inserting before </head>
	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	// Try inserting after <body>
	if pos, ok := afterOpenTag(htmlContent, lowerHTML, "<body"); ok {
		return htmlContent[:pos] + styleBlock + htmlContent[pos:]
	}

	// Fallback: prepend
	return styleBlock + htmlContent
}

// afterOpenTag returns the offset just past the first opening tag that
// starts with prefix. lower must be strings.ToLower(content).
func afterOpenTag(content, lower, prefix string) (int, bool) {
	idx := strings.Index(lower, prefix)
	if idx == -1 {
		return 0, false
	}
	closeIdx := strings.Index(content[idx:], ">")
	if closeIdx == -1 {
		return 0, false
	}
	return idx + closeIdx + 1, true
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	// Escape </ sequences to prevent closing the style tag prematurely
	return strings.ReplaceAll(css, "</", `<\/`)
}

// DocumentData fills a document template.
type DocumentData struct {
	Title     string
	Generator string
	Body      string // rendered fragment, inserted unescaped
}

// DocumentWrapper defines the contract for wrapping a fragment into a
// full HTML document.
type DocumentWrapper interface {
	WrapDocument(ctx context.Context, data *DocumentData) (string, error)
}

// DocumentTemplate renders a fragment into a document template. Templates
// are text/template sources so that conditional comments and the
// StartFragment markers survive; Title and Generator must be escaped in
// the template with the html function.
type DocumentTemplate struct {
	tmpl *template.Template
}

// NewDocumentTemplate parses a document template.
// Returns error if the template cannot be parsed.
func NewDocumentTemplate(name, tmplContent string) (*DocumentTemplate, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing %s template: %w", name, err)
	}
	return &DocumentTemplate{tmpl: tmpl}, nil
}

// WrapDocument executes the template with data.
// If data is nil, an empty document is rendered.
func (d *DocumentTemplate) WrapDocument(ctx context.Context, data *DocumentData) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if data == nil {
		data = &DocumentData{}
	}

	var buf bytes.Buffer
	if err := d.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.String(), nil
}

// Compile-time interface checks.
var (
	_ CSSInjector     = (*CSSInjection)(nil)
	_ DocumentWrapper = (*DocumentTemplate)(nil)
)
