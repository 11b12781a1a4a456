// Package latex converts LaTeX math source into Office Math Markup.
//
// Conversion runs in three stages: Tokenize splits the source, Parse builds
// a Node tree, and Lower turns the tree into omml nodes. Compile chains them
// and never fails; input it cannot make sense of degrades to text runs, and
// a crash anywhere below it yields a single-run fallback.
package latex

import (
	"regexp"
	"strings"

	"github.com/dandandujie/ai-paste/internal/omml"
)

// lineBreak matches a single backslash at the end of a line, which chat
// output commonly produces where \\ was meant. An escaped pair is left alone.
var lineBreak = regexp.MustCompile(`(^|[^\\])\\[ \t]*\n`)

// RepairLineBreaks rewrites a lone trailing backslash into the \\ row
// separator.
func RepairLineBreaks(src string) string {
	return lineBreak.ReplaceAllString(src, "$1\\\\\n")
}

// Compile converts src to OMML. Display output is wrapped in m:oMathPara,
// inline output in a bare m:oMath; the namespace is declared once on the
// outermost element.
func Compile(src string, display bool) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = omml.Fallback(src, display)
		}
	}()

	root := Parse(RepairLineBreaks(strings.TrimSpace(src)))
	return omml.Math(display, Lower(root)...)
}
