package pipeline

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// blockElements end a line in plain-text output.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"pre": true, "blockquote": true, "table": true, "ul": true, "ol": true,
	"hr": true, "section": true, "article": true,
}

// HTMLPlainText renders HTML as plain text. Rendered math containers are
// replaced by their LaTeX source in $...$ or $$...$$ when it can be
// recovered, otherwise by their visible text.
func HTMLPlainText(content string) (string, error) {
	doc, _, err := parseHTML(content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	removeElements(doc, "script", "style", "meta", "link", "title")

	for _, family := range mathContainers {
		for _, n := range outermost(doc, family.match) {
			n.Parent.InsertBefore(&html.Node{Type: html.TextNode, Data: plainMath(n, family.display)}, n)
			n.Parent.RemoveChild(n)
		}
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[strings.ToLower(n.Data)] {
			b.WriteByte('\n')
		}
	}
	walk(doc)

	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = collapseSpace(line)
	}
	out := multipleBlankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(out), nil
}

func plainMath(n *html.Node, display bool) string {
	tex, scriptDisplay, ok := extractLatex(n)
	if !ok {
		return collapseSpace(textContent(n))
	}
	if display || scriptDisplay || displayMarker.MatchString(renderNode(n)) {
		return "\n\n$$" + tex + "$$\n\n"
	}
	return "$" + tex + "$"
}
