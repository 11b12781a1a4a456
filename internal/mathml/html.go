package mathml

import (
	"encoding/xml"
	"strings"

	"golang.org/x/net/html"
)

// FromHTML adapts a node from an HTML parse tree into an Element. Text
// directly under n becomes Content; comments are dropped.
func FromHTML(n *html.Node) *Element {
	e := &Element{XMLName: xml.Name{Local: n.Data}}
	for _, a := range n.Attr {
		e.Attrs = append(e.Attrs, xml.Attr{Name: xml.Name{Space: a.Namespace, Local: a.Key}, Value: a.Val})
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			e.Children = append(e.Children, *FromHTML(c))
		case html.TextNode:
			text.WriteString(c.Data)
		}
	}
	e.Content = text.String()
	return e
}

// FindHTML returns the first math element at or below n, or nil.
func FindHTML(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, "math") {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := FindHTML(c); found != nil {
			return found
		}
	}
	return nil
}
