package aipaste

import (
	"fmt"
	"strings"

	"github.com/dandandujie/ai-paste/internal/pipeline"
	"github.com/dandandujie/ai-paste/internal/protect"
)

// SourceType says how Input.Content is written.
type SourceType string

// Source types.
const (
	// SourceMarkdown is chat output: Markdown with LaTeX and rendered math.
	SourceMarkdown SourceType = "markdown"
	// SourceHTML is HTML copied from a chat page.
	SourceHTML SourceType = "html"
)

// ParseSourceType validates a source type name. The empty string selects
// SourceMarkdown.
func ParseSourceType(name string) (SourceType, error) {
	switch SourceType(strings.ToLower(strings.TrimSpace(name))) {
	case "", SourceMarkdown, "md":
		return SourceMarkdown, nil
	case SourceHTML:
		return SourceHTML, nil
	}
	return "", fmt.Errorf("%w: %q (must be markdown or html)", ErrInvalidSourceType, name)
}

// Format selects the shape of Result.HTML.
type Format string

// Output formats.
const (
	// FormatWord is a complete document for the clipboard: office
	// namespaces, fragment markers and the style sheet. Math is OMML.
	FormatWord Format = "word"
	// FormatFragment is the converted body alone. Math is OMML.
	FormatFragment Format = "fragment"
	// FormatPreview is a standalone page for a browser. Math is MathML.
	FormatPreview Format = "preview"
)

// ParseFormat validates a format name. The empty string selects FormatWord.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatWord:
		return FormatWord, nil
	case FormatFragment:
		return FormatFragment, nil
	case FormatPreview:
		return FormatPreview, nil
	}
	return "", fmt.Errorf("%w: %q (must be word, fragment, or preview)", ErrInvalidFormat, name)
}

// MathStrategy selects how LaTeX is turned into Word equations.
type MathStrategy string

// Math strategies.
const (
	// MathLatex compiles LaTeX directly to OMML.
	MathLatex MathStrategy = "latex"
	// MathMathML renders LaTeX to MathML first, then converts the MathML
	// tree. Falls back to MathLatex for anything it cannot render.
	MathMathML MathStrategy = "mathml"
)

// ParseMathStrategy validates a strategy name. The empty string selects
// MathLatex.
func ParseMathStrategy(name string) (MathStrategy, error) {
	s, err := pipeline.ParseStrategy(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q (must be latex or mathml)", ErrInvalidMathStrategy, name)
	}
	return MathStrategy(s), nil
}

// Input contains conversion parameters.
type Input struct {
	Content    string     // Markdown or HTML content (required)
	SourceType SourceType // Empty means SourceMarkdown
	Title      string     // Document title (optional)
	Style      string     // Preset name or YAML path overriding the converter's (optional)
	CSS        string     // Extra CSS appended after the preset rules (optional)
}

// Result holds the outputs of one conversion.
type Result struct {
	HTML         string // Document or fragment, depending on the converter's Format
	PlainText    string // Readable text with formulas kept as $...$ and $$...$$
	HasFormula   bool   // At least one formula was found
	FormulaCount int    // Protected spans, or converted containers for HTML input
}

// Span is one protected math region.
type Span = protect.Span

// Spans is the ordered placeholder table built by ProtectMathSpans.
type Spans = protect.Spans

// SpanKind tells a resolver how a span should be rendered.
type SpanKind = protect.Kind

// Span kinds.
const (
	SpanRendered    = protect.Rendered
	SpanLatexBlock  = protect.LatexBlock
	SpanLatexInline = protect.LatexInline
)
