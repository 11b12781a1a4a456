package style

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownHighlightStyle indicates a chroma style name that is not registered.
var ErrUnknownHighlightStyle = errors.New("unknown highlight style")

// HighlightCSS returns the chroma class rules for a highlight style, to be
// used with code blocks rendered with classes.
func HighlightCSS(styleName string) (string, error) {
	s, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, styleName)
	}

	var buf strings.Builder
	buf.WriteString("\n/* Code highlighting */\n")
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buf, s); err != nil {
		return "", fmt.Errorf("writing %s highlight CSS: %w", styleName, err)
	}
	return buf.String(), nil
}

// HighlightStyles returns the registered chroma style names, sorted.
func HighlightStyles() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidHighlightStyle reports whether name is a registered chroma style.
func ValidHighlightStyle(name string) bool {
	_, ok := styles.Registry[strings.ToLower(name)]
	return ok
}

// Stylesheet assembles the CSS of a converted document: the preset rules,
// then the highlight rules when the preset enables highlighting and code
// is rendered with classes. highlightStyle overrides the preset's choice
// when non-empty.
func Stylesheet(p *Preset, highlightStyle string, inlineStyles bool) (string, error) {
	css := BuildCSS(p)
	if !p.Code.EnableHighlight || inlineStyles {
		return css, nil
	}

	name := HighlightName(p, highlightStyle)
	hl, err := HighlightCSS(name)
	if err != nil {
		return "", err
	}
	return css + hl, nil
}

// HighlightName picks the chroma style for a preset: the override when
// set, else the preset's own, else github.
func HighlightName(p *Preset, override string) string {
	switch {
	case override != "":
		return override
	case p.Code.HighlightStyle != "":
		return p.Code.HighlightStyle
	default:
		return "github"
	}
}
