package pipeline

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/dandandujie/ai-paste/internal/protect"
)

// elementClasses maps Markdown output elements to the classes the style
// sheet targets.
var elementClasses = map[string]string{
	"p":          "md-paragraph",
	"li":         "md-list-item",
	"blockquote": "md-blockquote",
	"a":          "md-link",
	"img":        "md-image",
	"strong":     "md-strong",
	"em":         "md-em",
	"table":      "md-table",
}

// AssignClasses adds the md-* classes to a rendered Markdown fragment so
// that style rules survive pasting, and unwraps paragraphs that hold
// nothing but one display-math placeholder, since display math is a block
// of its own.
func AssignClasses(fragment string, spans *protect.Spans) (string, error) {
	doc, isFragment, err := parseHTML(fragment)
	if err != nil {
		return "", err
	}
	classify(doc, spans)
	return renderHTML(doc, isFragment)
}

func classify(n *html.Node, spans *protect.Spans) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode {
			if ph, ok := lonePlaceholder(c, spans); ok {
				n.InsertBefore(&html.Node{Type: html.TextNode, Data: ph}, c)
				n.RemoveChild(c)
				c = next
				continue
			}
			classifyElement(c)
		}
		classify(c, spans)
		c = next
	}
}

func classifyElement(n *html.Node) {
	name := strings.ToLower(n.Data)
	if class, ok := elementClasses[name]; ok {
		addClass(n, class)
	}

	switch name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		addClass(n, "md-heading")
		addClass(n, "md-"+name)
	case "code":
		if !hasAncestor(n, func(p *html.Node) bool { return isElement(p, "pre") }) {
			addClass(n, "md-code-inline")
		}
	case "table":
		setAttr(n, "border", "1")
		setAttr(n, "cellspacing", "0")
		setAttr(n, "cellpadding", "6")
	case "img":
		setAttr(n, "style", "max-width: 100%;")
	}
}

// lonePlaceholder reports whether n is a paragraph whose only content is
// the placeholder of a display-math span.
func lonePlaceholder(n *html.Node, spans *protect.Spans) (string, bool) {
	if !isElement(n, "p") || n.FirstChild == nil || n.FirstChild != n.LastChild {
		return "", false
	}
	if n.FirstChild.Type != html.TextNode {
		return "", false
	}
	ph := strings.TrimSpace(n.FirstChild.Data)
	sp, ok := spans.Lookup(ph)
	if !ok || !sp.Kind.IsBlock() {
		return "", false
	}
	return ph, true
}
