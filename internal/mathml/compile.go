package mathml

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/dandandujie/ai-paste/internal/omml"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// StripTags removes every tag from markup and returns the unescaped text.
func StripTags(markup string) string {
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(markup, "")))
}

// Compile converts serialized MathML to OMML. Markup that does not parse,
// or holds no math element, yields a fallback run of its text.
func Compile(markup string) string {
	m, err := Parse(markup)
	if err != nil {
		return omml.Fallback(StripTags(markup), false)
	}
	return CompileElement(m)
}

// CompileElement converts a parsed math element to OMML. The placement
// follows the element's display attribute.
func CompileElement(m *Element) (out string) {
	display := m.IsBlock()
	defer func() {
		if r := recover(); r != nil {
			out = omml.Fallback(strings.TrimSpace(m.Text()), display)
		}
	}()
	return omml.Math(display, Convert(m)...)
}
