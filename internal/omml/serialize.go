package omml

import (
	"strings"
)

// xmlEscaper replaces the five XML metacharacters.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape escapes s for use in character data or attribute values.
func Escape(s string) string {
	return xmlEscaper.Replace(s)
}

// String serializes the node and its subtree.
func (n *Node) String() string {
	var b strings.Builder
	n.writeTo(&b)
	return b.String()
}

// Serialize renders a sequence of children without an enclosing element.
func Serialize(children ...Child) string {
	var b strings.Builder
	for _, c := range children {
		writeChild(&b, c)
	}
	return b.String()
}

func writeChild(b *strings.Builder, c Child) {
	switch v := c.(type) {
	case *Node:
		if v != nil {
			v.writeTo(b)
		}
	case Text:
		b.WriteString(Escape(string(v)))
	}
}

// writeTo emits the element. A node without children self-closes.
func (n *Node) writeTo(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(Escape(a.Value))
		b.WriteByte('"')
	}

	if len(n.Children) == 0 {
		b.WriteString("/>")
		return
	}

	b.WriteByte('>')
	for _, c := range n.Children {
		writeChild(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}
