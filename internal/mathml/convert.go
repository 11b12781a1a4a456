package mathml

import (
	"strings"
	"unicode/utf8"

	"github.com/dandandujie/ai-paste/internal/omml"
)

// naryGlyphs are the large operators whose under/over scripts become limits.
const naryGlyphs = "∑∏∫∮∯∰∱∲∳"

// Convert lowers the children of a math element into OMML.
func Convert(math *Element) []omml.Child {
	return convertChildren(math)
}

// convertChildren lowers every child element in order. An element without
// child elements contributes its own non-blank text as a run.
func convertChildren(e *Element) []omml.Child {
	if len(e.Children) == 0 {
		if text := strings.TrimSpace(e.Content); text != "" {
			return []omml.Child{omml.Run(text)}
		}
		return nil
	}

	var out []omml.Child
	for i := range e.Children {
		out = append(out, convertElement(&e.Children[i])...)
	}
	return out
}

func convertElement(e *Element) []omml.Child {
	switch e.Name() {
	case "mrow", "mstyle", "math", "mpadded":
		return convertChildren(e)
	case "mi":
		return one(tokenRun(e))
	case "mn", "mo":
		return one(omml.Run(strings.TrimSpace(e.Text())))
	case "mtext", "ms":
		return one(omml.StyledRun(e.Text(), "p"))
	case "msup":
		return one(scripted(e, "m:sSup", "m:sup"))
	case "msub":
		return one(scripted(e, "m:sSub", "m:sub"))
	case "msubsup":
		return one(subSup(e))
	case "mfrac":
		return one(fraction(e))
	case "msqrt":
		return one(omml.El("m:rad",
			omml.El("m:radPr", omml.Val("m:degHide", "1")),
			omml.El("m:deg"),
			omml.El("m:e", convertChildren(e)...),
		))
	case "mroot":
		return one(root(e))
	case "munder":
		return one(under(e))
	case "mover":
		return one(over(e))
	case "munderover":
		return one(underOver(e))
	case "mfenced":
		return fenced(e)
	case "mtable":
		return one(table(e))
	case "mspace":
		return one(omml.Run(" "))
	case "semantics":
		if len(e.Children) == 0 {
			return nil
		}
		return convertElement(&e.Children[0])
	case "annotation", "annotation-xml", "none", "mprescripts":
		return nil
	default:
		return convertChildren(e)
	}
}

func one(n *omml.Node) []omml.Child {
	return []omml.Child{n}
}

// tokenRun maps an identifier, honoring upright and bold variants.
func tokenRun(e *Element) *omml.Node {
	text := strings.TrimSpace(e.Text())
	variant, _ := e.Attr("mathvariant")
	switch variant {
	case "normal":
		return omml.StyledRun(text, "p")
	case "bold":
		return omml.StyledRun(text, "b")
	case "bold-italic":
		return omml.StyledRun(text, "bi")
	}
	return omml.Run(text)
}

// arg lowers the i-th child element.
func arg(e *Element, i int) []omml.Child {
	return convertElement(&e.Children[i])
}

func scripted(e *Element, tag, scriptTag string) *omml.Node {
	if len(e.Children) < 2 {
		return omml.EmptyRun()
	}
	return omml.El(tag,
		omml.El("m:e", arg(e, 0)...),
		omml.El(scriptTag, arg(e, 1)...),
	)
}

func subSup(e *Element) *omml.Node {
	if len(e.Children) < 3 {
		return omml.EmptyRun()
	}
	return omml.El("m:sSubSup",
		omml.El("m:e", arg(e, 0)...),
		omml.El("m:sub", arg(e, 1)...),
		omml.El("m:sup", arg(e, 2)...),
	)
}

func fraction(e *Element) *omml.Node {
	if len(e.Children) < 2 {
		return omml.EmptyRun()
	}
	return omml.El("m:f",
		omml.El("m:num", arg(e, 0)...),
		omml.El("m:den", arg(e, 1)...),
	)
}

// root lowers mroot, whose children are base then index.
func root(e *Element) *omml.Node {
	if len(e.Children) < 2 {
		return omml.EmptyRun()
	}
	return omml.El("m:rad",
		omml.El("m:deg", arg(e, 1)...),
		omml.El("m:e", arg(e, 0)...),
	)
}

// naryGlyph returns the base's operator glyph when it is a single large
// operator character.
func naryGlyph(base *Element) (string, bool) {
	text := strings.TrimSpace(base.Text())
	if utf8.RuneCountInString(text) != 1 || !strings.Contains(naryGlyphs, text) {
		return "", false
	}
	return text, true
}

func under(e *Element) *omml.Node {
	if len(e.Children) < 2 {
		return omml.EmptyRun()
	}
	if chr, ok := naryGlyph(&e.Children[0]); ok {
		return omml.NAry(chr, "undOver", arg(e, 1), nil)
	}
	return omml.El("m:limLow",
		omml.El("m:e", arg(e, 0)...),
		omml.El("m:lim", arg(e, 1)...),
	)
}

// over lowers mover. A single-character overscript is an accent.
func over(e *Element) *omml.Node {
	if len(e.Children) < 2 {
		return omml.EmptyRun()
	}
	if chr, ok := naryGlyph(&e.Children[0]); ok {
		return omml.NAry(chr, "undOver", nil, arg(e, 1))
	}
	if mark := strings.TrimSpace(e.Children[1].Text()); utf8.RuneCountInString(mark) == 1 {
		return omml.Accent(mark, arg(e, 0))
	}
	return omml.El("m:limUpp",
		omml.El("m:e", arg(e, 0)...),
		omml.El("m:lim", arg(e, 1)...),
	)
}

// underOver stacks an upper limit inside a lower one unless the base is a
// large operator.
func underOver(e *Element) *omml.Node {
	if len(e.Children) < 3 {
		return omml.EmptyRun()
	}
	if chr, ok := naryGlyph(&e.Children[0]); ok {
		return omml.NAry(chr, "undOver", arg(e, 1), arg(e, 2))
	}
	return omml.El("m:limLow",
		omml.El("m:e", omml.El("m:limUpp",
			omml.El("m:e", arg(e, 0)...),
			omml.El("m:lim", arg(e, 2)...),
		)),
		omml.El("m:lim", arg(e, 1)...),
	)
}

// fenced brackets the children with the open and close characters, which
// default to parentheses. An explicitly empty attribute means no fence.
func fenced(e *Element) []omml.Child {
	open, ok := e.Attr("open")
	if !ok {
		open = "("
	}
	closing, ok := e.Attr("close")
	if !ok {
		closing = ")"
	}

	var out []omml.Child
	if open != "" {
		out = append(out, omml.Run(open))
	}
	out = append(out, convertChildren(e)...)
	if closing != "" {
		out = append(out, omml.Run(closing))
	}
	return out
}

// table lowers mtable rows and cells to a matrix in row-major order.
// Equation labels of mlabeledtr rows are dropped.
func table(e *Element) *omml.Node {
	m := omml.El("m:m")
	for i := range e.Children {
		row := &e.Children[i]
		cells := row.Children
		switch row.Name() {
		case "mtr":
		case "mlabeledtr":
			if len(cells) > 0 {
				cells = cells[1:]
			}
		default:
			continue
		}

		mr := omml.El("m:mr")
		for j := range cells {
			if cells[j].Name() != "mtd" {
				continue
			}
			mr.Append(omml.El("m:e", convertChildren(&cells[j])...))
		}
		m.Append(mr)
	}
	return m
}
