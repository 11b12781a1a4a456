package latex

import (
	"io"
	"strings"
	"unicode"
)

// Kind classifies a token.
type Kind int

// Token kinds.
const (
	TokCommand     Kind = iota // \name or \<symbol>
	TokLiteral                 // a single letter or any other character
	TokNumber                  // digits with at most one decimal point
	TokOperator                // one of + - * / = < > ( ) [ ] , . | !
	TokGroupOpen               // {
	TokGroupClose              // }
	TokSubscript               // _
	TokSuperscript             // ^
)

var kindNames = [...]string{
	TokCommand:     "Command",
	TokLiteral:     "Literal",
	TokNumber:      "Number",
	TokOperator:    "Operator",
	TokGroupOpen:   "GroupOpen",
	TokGroupClose:  "GroupClose",
	TokSubscript:   "Subscript",
	TokSuperscript: "Superscript",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Token is a lexical unit. Pos and End are byte offsets into the source.
// TokCommand text keeps its leading backslash.
type Token struct {
	Kind Kind
	Text string
	Pos  int
	End  int
}

// operatorChars is the fixed operator class.
const operatorChars = "+-*/=<>()[],.|!"

// Tokenizer splits LaTeX source into tokens. It never fails: every
// non-whitespace character maps to some token.
type Tokenizer struct {
	src string
	r   *strings.Reader
}

// NewTokenizer creates a Tokenizer over src.
func NewTokenizer(src string) *Tokenizer {
	return &Tokenizer{src: src, r: strings.NewReader(src)}
}

// offset returns the byte offset of the next unread rune.
func (t *Tokenizer) offset() int {
	return len(t.src) - t.r.Len()
}

// Next returns the next token, or io.EOF when the input is exhausted.
func (t *Tokenizer) Next() (Token, error) {
	for {
		start := t.offset()
		char, _, err := t.r.ReadRune()
		if err != nil {
			return Token{}, io.EOF
		}

		switch {
		case unicode.IsSpace(char):
			continue
		case char == '\\':
			return t.readCommand(start), nil
		case char == '{':
			return t.single(TokGroupOpen, start), nil
		case char == '}':
			return t.single(TokGroupClose, start), nil
		case char == '_':
			return t.single(TokSubscript, start), nil
		case char == '^':
			return t.single(TokSuperscript, start), nil
		case isDigit(char):
			return t.readNumber(start), nil
		case strings.ContainsRune(operatorChars, char):
			return t.single(TokOperator, start), nil
		default:
			return t.single(TokLiteral, start), nil
		}
	}
}

func (t *Tokenizer) single(kind Kind, start int) Token {
	end := t.offset()
	return Token{Kind: kind, Text: t.src[start:end], Pos: start, End: end}
}

// readCommand reads letters after a backslash. With no letters it takes
// exactly one following character, so \\ and \{ are single commands.
// A trailing lone backslash is a command whose text is just "\".
func (t *Tokenizer) readCommand(start int) Token {
	letters := 0
	for {
		char, _, err := t.r.ReadRune()
		if err != nil {
			break
		}
		if !isASCIILetter(char) {
			_ = t.r.UnreadRune()
			break
		}
		letters++
	}

	if letters == 0 {
		_, _, _ = t.r.ReadRune()
	}
	return t.single(TokCommand, start)
}

// readNumber reads digits with at most one decimal point. The point is only
// taken when a digit follows it, so "1." is a number followed by an operator.
func (t *Tokenizer) readNumber(start int) Token {
	t.skipDigits()
	if rest := t.src[t.offset():]; len(rest) > 1 && rest[0] == '.' && isDigit(rune(rest[1])) {
		_, _, _ = t.r.ReadRune()
		t.skipDigits()
	}
	return t.single(TokNumber, start)
}

func (t *Tokenizer) skipDigits() {
	for {
		char, _, err := t.r.ReadRune()
		if err != nil {
			return
		}
		if !isDigit(char) {
			_ = t.r.UnreadRune()
			return
		}
	}
}

// Tokenize returns every token of src.
func Tokenize(src string) []Token {
	tz := NewTokenizer(src)
	var tokens []Token
	for {
		tok, err := tz.Next()
		if err != nil {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
