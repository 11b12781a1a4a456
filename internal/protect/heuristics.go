package protect

import (
	"regexp"
	"unicode"
)

var (
	latexIndicator = regexp.MustCompile(`\\[a-zA-Z]+|[_^]`)

	strongMath   = regexp.MustCompile(`(\\[a-zA-Z]+)|[_^=≈≤≥≠]`)
	functionCall = regexp.MustCompile(`\b(N|ln|exp|log|sin|cos|tan|f|g)\s*\(`)
	arithmetic   = regexp.MustCompile(`[+\-*/]\s*[\d.a-zA-Z]`)
)

// ContainsCJK reports whether s contains Chinese, Japanese or Korean script.
func ContainsCJK(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) {
			return true
		}
	}
	return false
}

// HasLatexIndicator reports whether s contains a LaTeX command or a script
// marker. Bracket-delimited blocks are math only when this holds.
func HasLatexIndicator(s string) bool {
	return latexIndicator.MatchString(s)
}

// IsMathExpression decides whether the content of a bare parenthesized
// group is math. Text with CJK characters never is; otherwise a LaTeX
// command, a script marker, a relation, a known function call, or an
// arithmetic operator next to an operand is enough.
func IsMathExpression(content string) bool {
	if ContainsCJK(content) {
		return false
	}
	return strongMath.MatchString(content) ||
		functionCall.MatchString(content) ||
		arithmetic.MatchString(content)
}
