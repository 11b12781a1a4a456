package latex

import "github.com/dandandujie/ai-paste/internal/omml"

// Lower converts a parsed expression into OMML children.
func Lower(n Node) []omml.Child {
	l := &lowerer{}
	return l.lower(n)
}

// lowerer is a Visitor that appends OMML to out.
type lowerer struct {
	out []omml.Child
}

var _ Visitor = (*lowerer)(nil)

// lower returns the OMML for n without disturbing the caller's output.
func (l *lowerer) lower(n Node) []omml.Child {
	if n == nil {
		return nil
	}
	saved := l.out
	l.out = nil
	n.Accept(l)
	res := l.out
	l.out = saved
	return res
}

func (l *lowerer) lowerAll(nodes []Node) []omml.Child {
	var out []omml.Child
	for _, n := range nodes {
		out = append(out, l.lower(n)...)
	}
	return out
}

func (l *lowerer) emit(children ...omml.Child) {
	l.out = append(l.out, children...)
}

// emitScripted emits base, wrapped in a script structure when n carries a
// subscript, a superscript or both.
func (l *lowerer) emitScripted(n Node, base ...omml.Child) {
	s := ScriptsOf(n)
	switch {
	case s.Sub != nil && s.Sup != nil:
		l.emit(omml.El("m:sSubSup",
			omml.El("m:e", base...),
			omml.El("m:sub", l.lower(s.Sub)...),
			omml.El("m:sup", l.lower(s.Sup)...),
		))
	case s.Sub != nil:
		l.emit(omml.El("m:sSub",
			omml.El("m:e", base...),
			omml.El("m:sub", l.lower(s.Sub)...),
		))
	case s.Sup != nil:
		l.emit(omml.El("m:sSup",
			omml.El("m:e", base...),
			omml.El("m:sup", l.lower(s.Sup)...),
		))
	default:
		l.emit(base...)
	}
}

func (l *lowerer) VisitRoot(n *Root) {
	l.emitScripted(n, l.lowerAll(n.Children)...)
}

func (l *lowerer) VisitGroup(n *Group) {
	l.emitScripted(n, l.lowerAll(n.Children)...)
}

func (l *lowerer) VisitFrac(n *Frac) {
	l.emitScripted(n, omml.El("m:f",
		omml.El("m:num", l.lower(n.Num)...),
		omml.El("m:den", l.lower(n.Den)...),
	))
}

func (l *lowerer) VisitSqrt(n *Sqrt) {
	l.emitScripted(n, omml.El("m:rad",
		omml.El("m:radPr", omml.Val("m:degHide", "1")),
		omml.El("m:deg"),
		omml.El("m:e", l.lower(n.Base)...),
	))
}

func (l *lowerer) VisitRadical(n *Radical) {
	l.emitScripted(n, omml.El("m:rad",
		omml.El("m:deg", l.lower(n.Degree)...),
		omml.El("m:e", l.lower(n.Base)...),
	))
}

// VisitNAry places the operator's scripts as limits. The operand follows
// as ordinary siblings.
func (l *lowerer) VisitNAry(n *NAry) {
	l.emit(omml.NAry(n.Glyph, n.Limits, l.lower(n.Sub), l.lower(n.Sup)))
}

func (l *lowerer) VisitSymbol(n *Symbol) {
	l.emitScripted(n, omml.Run(n.Glyph))
}

func (l *lowerer) VisitText(n *Text) {
	if n.Style == "" && n.Font == "" {
		l.emitScripted(n, omml.Run(n.Value))
		return
	}
	pr := omml.El("m:rPr")
	if n.Font != "" {
		pr.Append(omml.Val("m:scr", n.Font))
	}
	if n.Style != "" {
		pr.Append(omml.Val("m:sty", n.Style))
	}
	l.emitScripted(n, omml.El("m:r", pr, omml.El("m:t", omml.Text(n.Value))))
}

func (l *lowerer) VisitNumber(n *Number) {
	l.emitScripted(n, omml.Run(n.Value))
}

func (l *lowerer) VisitOperator(n *Operator) {
	l.emitScripted(n, omml.Run(n.Value))
}

func (l *lowerer) VisitDelimiter(n *Delimiter) {
	if n.Glyph == "" {
		l.emitScripted(n)
		return
	}
	l.emitScripted(n, omml.Run(n.Glyph))
}

func (l *lowerer) VisitEmpty(n *Empty) {
	l.emitScripted(n)
}

func (l *lowerer) VisitAccent(n *Accent) {
	l.emitScripted(n, omml.Accent(n.Chr, l.lower(n.Base)))
}

// VisitEnvironment lowers matrix-like environments to m:m, fenced by m:d
// when the environment has delimiters. Anything else, such as align or
// gathered, becomes an equation array with one entry per row.
func (l *lowerer) VisitEnvironment(n *Environment) {
	fences, isMatrix := matrixDelimiters[n.Name]
	if !isMatrix {
		arr := omml.El("m:eqArr")
		for _, row := range n.Rows {
			var content []omml.Child
			for _, cell := range row {
				content = append(content, l.lower(cell)...)
			}
			arr.Append(omml.El("m:e", content...))
		}
		l.emitScripted(n, arr)
		return
	}

	m := omml.El("m:m")
	for _, row := range n.Rows {
		mr := omml.El("m:mr")
		for _, cell := range row {
			mr.Append(omml.El("m:e", l.lower(cell)...))
		}
		m.Append(mr)
	}

	if fences[0] == "" && fences[1] == "" {
		l.emitScripted(n, m)
		return
	}
	l.emitScripted(n, omml.El("m:d",
		omml.El("m:dPr",
			omml.Val("m:begChr", fences[0]),
			omml.Val("m:endChr", fences[1]),
		),
		omml.El("m:e", m),
	))
}
