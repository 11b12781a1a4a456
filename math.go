package aipaste

import (
	"github.com/dandandujie/ai-paste/internal/latex"
	"github.com/dandandujie/ai-paste/internal/mathml"
	"github.com/dandandujie/ai-paste/internal/protect"
)

// CompileLatex converts a LaTeX formula to an OMML fragment. Display
// formulas are wrapped in m:oMathPara. Input that cannot be parsed still
// yields an equation holding its text; CompileLatex never fails.
func CompileLatex(source string, display bool) string {
	return latex.Compile(source, display)
}

// CompileMathML converts a serialized MathML <math> element to an OMML
// fragment. Markup that does not parse yields a text run of its content.
func CompileMathML(markup string) string {
	return mathml.Compile(markup)
}

// ProtectMathSpans replaces every math region of chat Markdown by a
// placeholder so a Markdown renderer leaves it untouched. It returns the
// carrier text and the ordered span table. Fenced and inline code is
// never scanned.
func ProtectMathSpans(text string) (string, *Spans) {
	return protect.Protect(text)
}

// RestoreMathSpans substitutes resolve(span) for every placeholder of
// carrier in a single pass.
func RestoreMathSpans(carrier string, spans *Spans, resolve func(Span) string) string {
	return protect.Restore(carrier, spans, resolve)
}
