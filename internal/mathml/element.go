// Package mathml converts presentation MathML into Office Math Markup.
//
// Markup is decoded with encoding/xml into a generic Element tree; HTML
// documents parsed with golang.org/x/net/html can be adapted into the same
// tree with FromHTML. Convert walks the tree with one policy per element
// name and produces omml nodes. Compile never fails: malformed markup
// degrades to a single text run holding the markup's text.
package mathml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

// ErrNoMath is returned by Parse when the markup holds no math element.
var ErrNoMath = errors.New("no math element")

// ErrMalformed is returned by Parse when the markup is not well-formed.
var ErrMalformed = errors.New("malformed MathML")

// Element is a MathML element. Content holds the element's own character
// data; text inside child elements stays with the child.
type Element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []Element  `xml:",any"`
	Content  string     `xml:",chardata"`
}

// Name returns the element's local name, lower-cased.
func (e *Element) Name() string {
	return strings.ToLower(e.XMLName.Local)
}

// Attr returns the value of the attribute with the given local name.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if strings.EqualFold(a.Name.Local, name) {
			return a.Value, true
		}
	}
	return "", false
}

// Text returns the character data of e and all its descendants.
func (e *Element) Text() string {
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

func (e *Element) writeText(b *strings.Builder) {
	b.WriteString(e.Content)
	for i := range e.Children {
		e.Children[i].writeText(b)
	}
}

// Find returns e or its first descendant named name, depth first.
func (e *Element) Find(name string) *Element {
	if e.Name() == name {
		return e
	}
	for i := range e.Children {
		if found := e.Children[i].Find(name); found != nil {
			return found
		}
	}
	return nil
}

// IsBlock reports whether a math element asks for display placement.
func (e *Element) IsBlock() bool {
	if v, ok := e.Attr("display"); ok {
		return strings.EqualFold(strings.TrimSpace(v), "block")
	}
	if v, ok := e.Attr("mode"); ok {
		return strings.EqualFold(strings.TrimSpace(v), "display")
	}
	return false
}

// Parse decodes markup and returns its math element. The root does not have
// to be math itself; the first math descendant is used.
func Parse(markup string) (*Element, error) {
	dec := xml.NewDecoder(strings.NewReader(markup))
	dec.Strict = true
	dec.Entity = xml.HTMLEntity

	var root Element
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	m := root.Find("math")
	if m == nil {
		return nil, ErrNoMath
	}
	return m, nil
}
