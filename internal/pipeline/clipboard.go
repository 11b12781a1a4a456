package pipeline

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// mathContainer matches one family of rendered-math containers.
type mathContainer struct {
	match   func(*html.Node) bool
	display bool
}

func classMatch(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && hasClass(n, class)
	}
}

func mjxDisplay(n *html.Node) bool {
	if !isElement(n, "mjx-container") {
		return false
	}
	v, _ := getAttr(n, "display")
	v = strings.ToLower(v)
	return v == "true" || v == "block"
}

// mathContainers lists container families in the order they are replaced.
// Display containers go first so the inline .katex inside a .katex-display
// is converted with its parent, never on its own.
var mathContainers = []mathContainer{
	{match: classMatch("katex-display"), display: true},
	{match: classMatch("MathJax_Display"), display: true},
	{match: mjxDisplay, display: true},
	{match: classMatch("katex")},
	{match: classMatch("MathJax")},
	{match: func(n *html.Node) bool { return isElement(n, "mjx-container") }},
	{match: func(n *html.Node) bool { return isElement(n, "math") }},
}

// ConvertHTML prepares HTML copied from a chat page for Word. Scripts,
// styles, meta and link elements are dropped and every outermost KaTeX,
// MathJax or bare MathML container is replaced by OMML, wrapped in a div
// for display math and a span for inline math. It returns the converted
// HTML and the number of containers replaced. The output is OMML whatever
// the resolver's Clipboard flag; only its Strategy applies.
func (r *MathResolver) ConvertHTML(content string) (string, int, error) {
	doc, isFragment, err := parseHTML(content)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	removeElements(doc, "script", "style", "meta", "link")

	clip := NewMathResolver(RenderContext{Clipboard: true, Strategy: r.rc.Strategy})
	replaced := 0
	for _, family := range mathContainers {
		for _, n := range outermost(doc, family.match) {
			out := clip.rendered(renderNode(n), family.display)
			wrapper := atom.Span
			if family.display || strings.HasPrefix(out, "<m:oMathPara") {
				wrapper = atom.Div
			}
			replaceWithRaw(n, wrapper, out)
			replaced++
		}
	}

	out, err := renderHTML(doc, isFragment)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return out, replaced, nil
}

// outermost collects nodes below root that satisfy match without
// descending into a match.
func outermost(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if match(c) {
				found = append(found, c)
				continue
			}
			walk(c)
		}
	}
	walk(root)
	return found
}
