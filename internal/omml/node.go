// Package omml builds and serializes Office Math Markup trees.
//
// Both math front ends (LaTeX and presentation MathML) lower into the same
// generic tree defined here: a Node has a tag, ordered attributes and an
// ordered list of children, each of which is either another Node or a Text
// leaf. The tree knows nothing about OMML semantics beyond a few builders for
// recurring shapes (runs, property values); serialization and the Word
// placement wrappers live in serialize.go and wrap.go.
package omml

// Namespace is the OOXML math namespace URI expected by Word.
const Namespace = "http://schemas.openxmlformats.org/officeDocument/2006/math"

// Prefix is the namespace prefix used for every element.
const Prefix = "m"

// Child is an element of a Node's children: either *Node or Text.
// The interface is sealed; no other types implement it.
type Child interface {
	isChild()
}

// Attr is a single attribute. Attributes keep insertion order.
type Attr struct {
	Key   string
	Value string
}

// Node is an element in the markup tree.
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []Child
}

// Text is a character data leaf.
type Text string

func (*Node) isChild() {}
func (Text) isChild()  {}

// Compile-time checks that both variants satisfy Child.
var (
	_ Child = (*Node)(nil)
	_ Child = Text("")
)

// El creates a node with the given tag and children.
// Nil children are skipped so optional parts can be passed inline.
func El(tag string, children ...Child) *Node {
	n := &Node{Tag: tag}
	return n.Append(children...)
}

// Append adds children in order, skipping nil values, and returns n.
func (n *Node) Append(children ...Child) *Node {
	for _, c := range children {
		if isNil(c) {
			continue
		}
		n.Children = append(n.Children, c)
	}
	return n
}

// Attr appends an attribute and returns n.
// Setting an existing key replaces its value in place.
func (n *Node) Attr(key, value string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Value: value})
	return n
}

// Get returns the value of the attribute key and whether it is set.
func (n *Node) Get(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Find returns the first direct child element with the given tag, or nil.
func (n *Node) Find(tag string) *Node {
	for _, c := range n.Children {
		if el, ok := c.(*Node); ok && el.Tag == tag {
			return el
		}
	}
	return nil
}

// Elements returns the direct child elements, skipping text leaves.
func (n *Node) Elements() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if el, ok := c.(*Node); ok {
			out = append(out, el)
		}
	}
	return out
}

// TextContent concatenates every text leaf below n in document order.
func (n *Node) TextContent() string {
	var b []byte
	var walk func(*Node)
	walk = func(cur *Node) {
		for _, c := range cur.Children {
			switch v := c.(type) {
			case Text:
				b = append(b, v...)
			case *Node:
				walk(v)
			}
		}
	}
	walk(n)
	return string(b)
}

func isNil(c Child) bool {
	if c == nil {
		return true
	}
	n, ok := c.(*Node)
	return ok && n == nil
}

// Run builds a math run holding literal text: <m:r><m:t>text</m:t></m:r>.
func Run(text string) *Node {
	return El("m:r", El("m:t", Text(text)))
}

// StyledRun builds a run with a math style property, e.g. "p" for plain
// upright text or "b" for bold.
func StyledRun(text, sty string) *Node {
	return El("m:r",
		El("m:rPr", Val("m:sty", sty)),
		El("m:t", Text(text)),
	)
}

// EmptyRun is the placeholder emitted when a structure is missing parts.
func EmptyRun() *Node {
	return Run("")
}

// Val builds a property element carrying a single m:val attribute.
func Val(tag, value string) *Node {
	return El(tag).Attr("m:val", value)
}

// NAry builds a large operator with optional limits. Missing limits are
// hidden; the body is an empty placeholder.
func NAry(chr, limLoc string, sub, sup []Child) *Node {
	pr := El("m:naryPr", Val("m:chr", chr), Val("m:limLoc", limLoc))
	if len(sub) == 0 {
		pr.Append(Val("m:subHide", "1"))
	}
	if len(sup) == 0 {
		pr.Append(Val("m:supHide", "1"))
	}
	return El("m:nary", pr, El("m:sub", sub...), El("m:sup", sup...), El("m:e"))
}

// Accent builds a diacritic chr over base.
func Accent(chr string, base []Child) *Node {
	return El("m:acc", El("m:accPr", Val("m:chr", chr)), El("m:e", base...))
}
