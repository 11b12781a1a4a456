package latex

// Node is a Math AST node. The set of implementations is closed: each one
// dispatches to its own Visitor method, so a new node kind cannot be added
// without every Visitor (and therefore every lowering) handling it.
type Node interface {
	Accept(v Visitor)
	scriptSlot() *Scripts
}

// Scripts holds the optional subscript and superscript of a node.
type Scripts struct {
	Sub Node
	Sup Node
}

func (s *Scripts) scriptSlot() *Scripts { return s }

// ScriptsOf returns the scripts attached to n.
func ScriptsOf(n Node) Scripts {
	return *n.scriptSlot()
}

// Visitor has one method per node kind.
type Visitor interface {
	VisitRoot(*Root)
	VisitGroup(*Group)
	VisitFrac(*Frac)
	VisitSqrt(*Sqrt)
	VisitRadical(*Radical)
	VisitNAry(*NAry)
	VisitSymbol(*Symbol)
	VisitText(*Text)
	VisitNumber(*Number)
	VisitOperator(*Operator)
	VisitDelimiter(*Delimiter)
	VisitEmpty(*Empty)
	VisitAccent(*Accent)
	VisitEnvironment(*Environment)
}

// Root is the top of a parsed expression.
type Root struct {
	Scripts
	Children []Node
}

// Group is a braced sequence.
type Group struct {
	Scripts
	Children []Node
}

// Frac is \frac{num}{den}. Both parts are always present.
type Frac struct {
	Scripts
	Num Node
	Den Node
}

// Sqrt is a square root with a hidden degree.
type Sqrt struct {
	Scripts
	Base Node
}

// Radical is a root with an explicit degree, \sqrt[n]{x}.
type Radical struct {
	Scripts
	Degree Node
	Base   Node
}

// Limit placement for n-ary operators.
const (
	LimitsUnderOver = "undOver"
	LimitsSubSup    = "subSup"
)

// NAry is a large operator. Its Sub and Sup are the limits.
type NAry struct {
	Scripts
	Glyph  string
	Limits string
}

// Symbol is a command mapped to a single glyph, such as \alpha.
type Symbol struct {
	Scripts
	Name  string
	Glyph string
}

// Text is a literal atom. Style is an OMML math style ("p" upright,
// "b" bold, empty for the default italic); Font is an OMML script
// ("double-struck", "script", "fraktur") or empty.
type Text struct {
	Scripts
	Value string
	Style string
	Font  string
}

// Number is a numeric literal.
type Number struct {
	Scripts
	Value string
}

// Operator is an operator character.
type Operator struct {
	Scripts
	Value string
}

// Delimiter is a glyph introduced by \left or \right.
// An empty Glyph is the invisible delimiter ".".
type Delimiter struct {
	Scripts
	Glyph string
}

// Empty produces no output. It carries scripts written without a base.
type Empty struct {
	Scripts
}

// Accent is a diacritic over a base, such as \hat{x}.
type Accent struct {
	Scripts
	Chr  string
	Base Node
}

// Environment is \begin{name}...\end{name}. Rows are split on \\ and
// cells on &.
type Environment struct {
	Scripts
	Name string
	Rows [][]*Group
}

func (n *Root) Accept(v Visitor)        { v.VisitRoot(n) }
func (n *Group) Accept(v Visitor)       { v.VisitGroup(n) }
func (n *Frac) Accept(v Visitor)        { v.VisitFrac(n) }
func (n *Sqrt) Accept(v Visitor)        { v.VisitSqrt(n) }
func (n *Radical) Accept(v Visitor)     { v.VisitRadical(n) }
func (n *NAry) Accept(v Visitor)        { v.VisitNAry(n) }
func (n *Symbol) Accept(v Visitor)      { v.VisitSymbol(n) }
func (n *Text) Accept(v Visitor)        { v.VisitText(n) }
func (n *Number) Accept(v Visitor)      { v.VisitNumber(n) }
func (n *Operator) Accept(v Visitor)    { v.VisitOperator(n) }
func (n *Delimiter) Accept(v Visitor)   { v.VisitDelimiter(n) }
func (n *Empty) Accept(v Visitor)       { v.VisitEmpty(n) }
func (n *Accent) Accept(v Visitor)      { v.VisitAccent(n) }
func (n *Environment) Accept(v Visitor) { v.VisitEnvironment(n) }

// Compile-time checks that every kind implements Node.
var (
	_ Node = (*Root)(nil)
	_ Node = (*Group)(nil)
	_ Node = (*Frac)(nil)
	_ Node = (*Sqrt)(nil)
	_ Node = (*Radical)(nil)
	_ Node = (*NAry)(nil)
	_ Node = (*Symbol)(nil)
	_ Node = (*Text)(nil)
	_ Node = (*Number)(nil)
	_ Node = (*Operator)(nil)
	_ Node = (*Delimiter)(nil)
	_ Node = (*Empty)(nil)
	_ Node = (*Accent)(nil)
	_ Node = (*Environment)(nil)
)
