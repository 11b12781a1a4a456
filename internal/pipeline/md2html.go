package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkOption configures a GoldmarkConverter.
type GoldmarkOption func(*goldmarkConfig)

type goldmarkConfig struct {
	style        string
	inlineStyles bool
}

// WithHighlightStyle sets the chroma style for fenced code blocks.
func WithHighlightStyle(name string) GoldmarkOption {
	return func(c *goldmarkConfig) {
		if name != "" {
			c.style = name
		}
	}
}

// WithInlineStyles makes code highlighting emit style attributes instead
// of CSS classes.
func WithInlineStyles(inline bool) GoldmarkOption {
	return func(c *goldmarkConfig) {
		c.inlineStyles = inline
	}
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark (pure Go).
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and syntax highlighting.
func NewGoldmarkConverter(opts ...GoldmarkOption) *GoldmarkConverter {
	cfg := goldmarkConfig{style: DefaultHighlightStyle}
	for _, opt := range opts {
		opt(&cfg)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithStyle(cfg.style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(!cfg.inlineStyles),
				),
				highlighting.WithWrapperRenderer(codeBlockWrapper),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Chat output treats newlines as breaks
			html.WithXHTML(),     // Self-closing tags
			// Note: WithUnsafe() intentionally NOT used. Math and rendered
			// markup are hidden behind placeholders and restored afterwards.
		),
	)
	return &GoldmarkConverter{md: md}
}

// codeBlockWrapper puts every fenced block in a div carrying the
// code-block class and the block's language. Unhighlighted blocks get no
// <pre><code> from the highlighter, so the wrapper writes it.
func codeBlockWrapper(w util.BufWriter, c highlighting.CodeBlockContext, entering bool) {
	if entering {
		lang := []byte("plaintext")
		if l, ok := c.Language(); ok {
			lang = l
		}
		_, _ = w.WriteString(`<div class="code-block" data-language="`)
		_, _ = w.Write(util.EscapeHTML(lang))
		_, _ = w.WriteString(`">`)
		if !c.Highlighted() {
			_, _ = w.WriteString("<pre><code>")
		}
		return
	}
	if !c.Highlighted() {
		_, _ = w.WriteString("</code></pre>")
	}
	_, _ = w.WriteString("</div>\n")
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
