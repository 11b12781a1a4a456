package latex

import (
	"errors"
	"strings"
)

// maxDepth bounds recursion for pathological input such as thousands of
// nested braces. Exceeding it panics with errTooDeep, which Compile turns
// into the plain-text fallback.
const maxDepth = 512

var errTooDeep = errors.New("latex: expression nested too deeply")

// Parser is a recursive-descent parser with one token of lookahead.
// Every command has a fixed arity, so the parser never backtracks.
type Parser struct {
	src    string
	tokens []Token
	pos    int
	depth  int
}

// NewParser tokenizes src and returns a parser positioned at its start.
func NewParser(src string) *Parser {
	return &Parser{src: src, tokens: Tokenize(src)}
}

// Parse parses src into a Root. It never fails: unknown commands become
// text atoms and unclosed groups run to the end of input.
func Parse(src string) *Root {
	return NewParser(src).Parse()
}

// Parse consumes every remaining token.
func (p *Parser) Parse() *Root {
	root := &Root{}
	for !p.done() {
		if p.peek().Kind == TokGroupClose {
			// Unbalanced closer at top level.
			p.pos++
			continue
		}
		if n := p.parseExpr(); n != nil {
			root.Children = append(root.Children, n)
		}
	}
	return root
}

func (p *Parser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *Parser) next() Token {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

// peekIs reports whether the next token has the given kind and text.
func (p *Parser) peekIs(kind Kind, text string) bool {
	return !p.done() && p.peek().Kind == kind && p.peek().Text == text
}

// parseSequence parses expressions until stop matches the next token, a
// group closer is reached, or input ends. Neither terminator is consumed.
func (p *Parser) parseSequence(stop func(Token) bool) []Node {
	var nodes []Node
	for !p.done() {
		tok := p.peek()
		if tok.Kind == TokGroupClose || (stop != nil && stop(tok)) {
			break
		}
		if n := p.parseExpr(); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// parseExpr parses a primary expression followed by its scripts.
func (p *Parser) parseExpr() Node {
	n := p.parsePrimary()
	if n == nil {
		return nil
	}
	return p.parseScripts(n)
}

func (p *Parser) parsePrimary() Node {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		panic(errTooDeep)
	}

	tok := p.next()
	switch tok.Kind {
	case TokGroupOpen:
		return p.parseGroupBody()
	case TokGroupClose:
		return nil
	case TokCommand:
		return p.parseCommand(tok)
	case TokNumber:
		return &Number{Value: tok.Text}
	case TokOperator:
		return &Operator{Value: tok.Text}
	case TokSubscript, TokSuperscript:
		// A script with no base attaches to an empty atom.
		p.pos--
		return &Empty{}
	default:
		return &Text{Value: tok.Text}
	}
}

// parseGroupBody parses after an opening brace up to and including the
// matching closer. A missing closer is accepted.
func (p *Parser) parseGroupBody() *Group {
	g := &Group{Children: p.parseSequence(nil)}
	if !p.done() && p.peek().Kind == TokGroupClose {
		p.pos++
	}
	return g
}

// parseNextArg takes a whole group when one follows, otherwise exactly one
// primary expression. Missing arguments are empty.
func (p *Parser) parseNextArg() Node {
	if p.done() {
		return &Empty{}
	}
	switch p.peek().Kind {
	case TokGroupOpen:
		p.pos++
		return p.parseGroupBody()
	case TokGroupClose:
		return &Empty{}
	}
	return p.parsePrimary()
}

// parseScripts attaches any number of trailing _ and ^ arguments.
func (p *Parser) parseScripts(n Node) Node {
	for !p.done() {
		switch p.peek().Kind {
		case TokSubscript:
			p.pos++
			n = attachScript(n, true, p.parseNextArg())
		case TokSuperscript:
			p.pos++
			n = attachScript(n, false, p.parseNextArg())
		default:
			return n
		}
	}
	return n
}

// attachScript sets the sub or sup slot of n. When the slot is already
// taken (x_1_2), n is wrapped in a group so no argument is lost.
func attachScript(n Node, sub bool, arg Node) Node {
	slot := n.scriptSlot()
	if (sub && slot.Sub != nil) || (!sub && slot.Sup != nil) {
		n = &Group{Children: []Node{n}}
		slot = n.scriptSlot()
	}
	if sub {
		slot.Sub = arg
	} else {
		slot.Sup = arg
	}
	return n
}

func (p *Parser) parseCommand(tok Token) Node {
	name := strings.TrimPrefix(tok.Text, `\`)

	switch name {
	case "frac", "dfrac", "tfrac", "cfrac":
		num := p.parseNextArg()
		den := p.parseNextArg()
		return &Frac{Num: num, Den: den}
	case "sqrt":
		return p.parseSqrt()
	case "left", "right":
		return p.parseDelimiter()
	case "begin":
		return p.parseEnvironment()
	case "end":
		// \end without a matching \begin.
		p.readGroupText()
		return &Empty{}
	case `\`, "":
		// Line break outside an environment, or a trailing lone backslash.
		return &Empty{}
	}

	if glyph, ok := symbols[name]; ok {
		return &Symbol{Name: name, Glyph: glyph}
	}
	if op, ok := naryOperators[name]; ok {
		return &NAry{Glyph: op.glyph, Limits: op.limits}
	}
	if functionNames[name] {
		return &Text{Value: name, Style: "p"}
	}
	if chr, ok := accents[name]; ok {
		return &Accent{Chr: chr, Base: p.parseNextArg()}
	}
	if tc, ok := textCommands[name]; ok {
		return &Text{Value: p.readArgText(), Style: tc.style, Font: tc.font}
	}
	if s, ok := spacing[tok.Text]; ok {
		if s == "" {
			return &Empty{}
		}
		return &Text{Value: s}
	}
	if s, ok := escapes[tok.Text]; ok {
		return &Text{Value: s}
	}
	if glyph, ok := delimiters[tok.Text]; ok {
		return &Operator{Value: glyph}
	}

	// Unknown command: degrade to its name. A following group is parsed as
	// an ordinary sibling by the caller.
	return &Text{Value: name}
}

// parseSqrt handles \sqrt{x} and \sqrt[n]{x}.
func (p *Parser) parseSqrt() Node {
	if !p.peekIs(TokOperator, "[") {
		return &Sqrt{Base: p.parseNextArg()}
	}

	p.pos++
	degree := p.parseSequence(func(t Token) bool {
		return t.Kind == TokOperator && t.Text == "]"
	})
	if p.peekIs(TokOperator, "]") {
		p.pos++
	}
	return &Radical{Degree: &Group{Children: degree}, Base: p.parseNextArg()}
}

// parseDelimiter consumes exactly the next token as a delimiter glyph.
func (p *Parser) parseDelimiter() Node {
	if p.done() {
		return &Empty{}
	}

	tok := p.next()
	if glyph, ok := delimiters[tok.Text]; ok {
		return &Delimiter{Glyph: glyph}
	}
	if tok.Kind == TokCommand {
		name := strings.TrimPrefix(tok.Text, `\`)
		if glyph, ok := symbols[name]; ok {
			return &Delimiter{Glyph: glyph}
		}
		return &Delimiter{Glyph: name}
	}
	return &Delimiter{Glyph: tok.Text}
}

// parseEnvironment parses after \begin: the name group, an optional column
// specification for array, then rows and cells up to \end{...}.
func (p *Parser) parseEnvironment() Node {
	if p.done() || p.peek().Kind != TokGroupOpen {
		return &Text{Value: "begin"}
	}
	env := &Environment{Name: strings.TrimSpace(p.readGroupText())}
	if env.Name == "array" && !p.done() && p.peek().Kind == TokGroupOpen {
		p.readGroupText()
	}

	isCellEnd := func(t Token) bool {
		return (t.Kind == TokLiteral && t.Text == "&") ||
			(t.Kind == TokCommand && (t.Text == `\\` || t.Text == `\end`))
	}

	var row []*Group
	for {
		row = append(row, &Group{Children: p.parseSequence(isCellEnd)})
		if p.done() || p.peek().Kind == TokGroupClose {
			break
		}

		tok := p.next()
		if tok.Kind == TokLiteral {
			continue
		}
		if tok.Text == `\\` {
			env.Rows = append(env.Rows, row)
			row = nil
			continue
		}
		// \end{name}
		p.readGroupText()
		break
	}
	env.Rows = append(env.Rows, row)

	// A trailing \\ leaves an empty last row.
	if n := len(env.Rows); n > 1 && rowIsEmpty(env.Rows[n-1]) {
		env.Rows = env.Rows[:n-1]
	}
	return env
}

func rowIsEmpty(row []*Group) bool {
	for _, cell := range row {
		if len(cell.Children) > 0 {
			return false
		}
	}
	return true
}

// readArgText returns the verbatim source of the next group, or the text of
// the next single token.
func (p *Parser) readArgText() string {
	if p.done() {
		return ""
	}
	if p.peek().Kind == TokGroupOpen {
		return p.readGroupText()
	}
	if p.peek().Kind == TokGroupClose {
		return ""
	}
	return p.next().Text
}

// readGroupText consumes a braced group and returns its raw source text.
// It returns "" without consuming anything if no group follows.
func (p *Parser) readGroupText() string {
	if p.done() || p.peek().Kind != TokGroupOpen {
		return ""
	}
	open := p.next()
	depth := 1
	start := p.pos
	for !p.done() {
		tok := p.next()
		switch tok.Kind {
		case TokGroupOpen:
			depth++
		case TokGroupClose:
			depth--
			if depth == 0 {
				return p.source(open.End, tok.Pos, start, p.pos-1)
			}
		}
	}
	return p.source(open.End, len(p.src), start, p.pos)
}

// source returns src[from:to], or the concatenated token texts in
// tokens[first:last] when the parser has no source.
func (p *Parser) source(from, to, first, last int) string {
	if p.src != "" && from <= to && to <= len(p.src) {
		return p.src[from:to]
	}
	var b strings.Builder
	for _, t := range p.tokens[first:last] {
		b.WriteString(t.Text)
	}
	return b.String()
}
