package pipeline

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/wyatt915/treeblood"

	"github.com/dandandujie/ai-paste/internal/latex"
	"github.com/dandandujie/ai-paste/internal/mathml"
	"github.com/dandandujie/ai-paste/internal/omml"
	"github.com/dandandujie/ai-paste/internal/protect"
)

// ErrInvalidStrategy indicates an unknown math strategy name.
var ErrInvalidStrategy = errors.New("invalid math strategy")

// Strategy selects how LaTeX is turned into OMML for the clipboard.
type Strategy string

const (
	// StrategyLatex compiles LaTeX straight to OMML.
	StrategyLatex Strategy = "latex"
	// StrategyMathML renders LaTeX to MathML first and converts that tree.
	// Any failure on the way falls back to StrategyLatex.
	StrategyMathML Strategy = "mathml"
)

// ParseStrategy validates a strategy name. The empty string selects
// StrategyLatex.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(name))) {
	case "", StrategyLatex:
		return StrategyLatex, nil
	case StrategyMathML:
		return StrategyMathML, nil
	}
	return "", fmt.Errorf("%w: %q (expected latex or mathml)", ErrInvalidStrategy, name)
}

// RenderContext says who the output is for. Clipboard output carries
// OMML that Word turns into native equations; preview output carries
// MathML a browser can display.
type RenderContext struct {
	Clipboard bool
	Strategy  Strategy
}

// MathResolver turns protected spans into markup for one RenderContext.
// It holds no mutable state and is safe for concurrent use.
type MathResolver struct {
	rc RenderContext
}

// NewMathResolver creates a resolver bound to rc.
func NewMathResolver(rc RenderContext) *MathResolver {
	if rc.Strategy == "" {
		rc.Strategy = StrategyLatex
	}
	return &MathResolver{rc: rc}
}

// Context returns the render context the resolver was built with.
func (r *MathResolver) Context() RenderContext {
	return r.rc
}

// Resolve returns the markup replacing sp's placeholder.
func (r *MathResolver) Resolve(sp protect.Span) string {
	if sp.Kind == protect.Rendered {
		return r.Rendered(sp.Content)
	}
	return r.Latex(sp.Content, sp.Kind.IsBlock())
}

// Latex renders a LaTeX source.
func (r *MathResolver) Latex(src string, display bool) string {
	if !r.rc.Clipboard {
		return previewLatex(src, display)
	}
	if r.rc.Strategy == StrategyMathML {
		if out, err := latexViaMathML(src, display); err == nil {
			return out
		}
	}
	return latex.Compile(src, display)
}

// latexViaMathML converts LaTeX to MathML with treeblood, then to OMML.
func latexViaMathML(src string, display bool) (string, error) {
	mml, err := texToMML(latex.RepairLineBreaks(strings.TrimSpace(src)), display)
	if err != nil {
		return "", err
	}
	m, err := mathml.Parse(mml)
	if err != nil {
		return "", err
	}
	return omml.Wrap(mathml.CompileElement(m), display), nil
}

// previewLatex renders LaTeX as MathML inside a math-block div or a
// math-inline span. Source treeblood rejects is shown escaped.
func previewLatex(src string, display bool) string {
	tag, class := "span", "math-inline"
	if display {
		tag, class = "div", "math-block"
	}

	body, err := texToMML(strings.TrimSpace(src), display)
	if err != nil {
		body = `<code class="math-source">` + html.EscapeString(src) + "</code>"
	}
	return "<" + tag + ` class="` + class + `">` + body + "</" + tag + ">"
}

// texToMML guards treeblood, which may panic on malformed input. The
// indentation treeblood puts around the markup is trimmed.
func texToMML(tex string, display bool) (mml string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("treeblood: %v", r)
		}
	}()
	mml, err = treeblood.TexToMML(tex, nil, display, false)
	return strings.TrimSpace(mml), err
}
