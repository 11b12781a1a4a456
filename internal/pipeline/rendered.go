package pipeline

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/dandandujie/ai-paste/internal/mathml"
	"github.com/dandandujie/ai-paste/internal/omml"
)

// displayMarker recognizes display containers of KaTeX, MathJax 2 and
// MathJax 3 in rendered markup.
var displayMarker = regexp.MustCompile(`(?i)katex-display|MathJax_Display|mjx-container[^>]+display=("|')?(true|block)`)

const (
	// maxPlainMath bounds the visible text that is still worth compiling
	// as LaTeX when no source could be recovered.
	maxPlainMath = 120

	// fallbackLabel stands in for math with no readable text at all.
	fallbackLabel = "公式"
)

// Rendered converts math that was already rendered to HTML upstream.
// Preview output keeps the markup in a preserved-math span. Clipboard
// output recovers the LaTeX source when possible and compiles it;
// otherwise an embedded <math> tree is converted directly, then visible
// text is compiled, and as a last resort a text run is emitted.
func (r *MathResolver) Rendered(markup string) string {
	if !r.rc.Clipboard {
		return `<span class="preserved-math">` + markup + `</span>`
	}
	return r.rendered(markup, false)
}

func (r *MathResolver) rendered(markup string, display bool) string {
	root, _, err := parseHTML(markup)
	if err != nil {
		return omml.Fallback(orFallbackLabel(collapseSpace(mathml.StripTags(markup))), display)
	}

	display = display || displayMarker.MatchString(markup)
	if tex, scriptDisplay, ok := extractLatex(root); ok {
		return r.Latex(tex, display || scriptDisplay)
	}

	if m := mathml.FindHTML(root); m != nil {
		el := mathml.FromHTML(m)
		return omml.Wrap(mathml.CompileElement(el), display || el.IsBlock())
	}

	visible := collapseSpace(textContent(root))
	if visible != "" && len([]rune(visible)) <= maxPlainMath {
		return r.Latex(visible, display)
	}
	return omml.Fallback(orFallbackLabel(visible), display)
}

// ExtractLatex recovers the LaTeX source from rendered math markup and
// reports whether the markup is display math.
func ExtractLatex(markup string) (tex string, display, ok bool) {
	root, _, err := parseHTML(markup)
	if err != nil {
		return "", false, false
	}
	tex, scriptDisplay, ok := extractLatex(root)
	return tex, ok && (scriptDisplay || displayMarker.MatchString(markup)), ok
}

// latexSource looks for a LaTeX source below root. display is set when
// the source itself declares display mode.
type latexSource func(root *html.Node) (tex string, display, ok bool)

// latexSources are tried in order; the first non-empty value wins.
// KaTeX keeps the source in a TeX annotation, MathJax 2 in a math/tex
// script, MathJax 3 in data-latex or in the assistive MathML.
var latexSources = []latexSource{
	annotationSource,
	attrSource("data-tex"),
	scriptSource,
	attrSource("aria-label"),
	attrSource("alttext"),
	attrSource("data-latex"),
}

func extractLatex(root *html.Node) (tex string, display, ok bool) {
	for _, source := range latexSources {
		if tex, display, ok := source(root); ok {
			return tex, display, true
		}
	}
	return "", false, false
}

// annotationSource returns the first TeX annotation, whether it sits in
// KaTeX's MathML or in MathJax's mjx-assistive-mml.
func annotationSource(root *html.Node) (string, bool, bool) {
	n := findFirst(root, func(n *html.Node) bool {
		if !isElement(n, "annotation") {
			return false
		}
		enc, _ := getAttr(n, "encoding")
		return strings.Contains(strings.ToLower(enc), "tex")
	})
	if n == nil {
		return "", false, false
	}
	tex, ok := nonEmpty(textContent(n))
	return tex, false, ok
}

// attrSource reads key from the first element carrying it.
func attrSource(key string) latexSource {
	return func(root *html.Node) (string, bool, bool) {
		n := findFirst(root, func(n *html.Node) bool {
			if n.Type != html.ElementNode {
				return false
			}
			_, ok := getAttr(n, key)
			return ok
		})
		if n == nil {
			return "", false, false
		}
		v, _ := getAttr(n, key)
		tex, ok := nonEmpty(v)
		return tex, false, ok
	}
}

// scriptSource reads a MathJax 2 <script type="math/tex"> block; a
// "mode=display" type marks display math.
func scriptSource(root *html.Node) (string, bool, bool) {
	n := findFirst(root, func(n *html.Node) bool {
		if !isElement(n, "script") {
			return false
		}
		typ, _ := getAttr(n, "type")
		return strings.HasPrefix(strings.ToLower(strings.TrimSpace(typ)), "math/tex")
	})
	if n == nil {
		return "", false, false
	}
	typ, _ := getAttr(n, "type")
	tex, ok := nonEmpty(textContent(n))
	return tex, strings.Contains(strings.ToLower(typ), "display"), ok
}

func nonEmpty(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

// collapseSpace trims s and folds every whitespace run into one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func orFallbackLabel(s string) string {
	if s == "" {
		return fallbackLabel
	}
	return s
}
