// Package style turns style presets into the CSS embedded in converted
// documents. A preset is a YAML document describing body text, headings,
// code, tables and lists; CSS values are copied verbatim, so they are
// checked for characters that could escape a declaration.
package style

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dandandujie/ai-paste/internal/fileutil"
	"github.com/dandandujie/ai-paste/internal/yamlutil"
)

// Sentinel errors for preset handling.
var (
	ErrInvalidPreset  = errors.New("invalid style preset")
	ErrUnsafeCSSValue = errors.New("unsafe CSS value")
)

// Preset is a named set of typographic choices.
type Preset struct {
	ID       string     `yaml:"id"`
	Name     string     `yaml:"name"`
	Body     BodyStyle  `yaml:"body"`
	Headings Headings   `yaml:"headings"`
	Code     CodeStyle  `yaml:"code"`
	Table    TableStyle `yaml:"table"`
	List     ListStyle  `yaml:"list"`
}

// BodyStyle applies to the whole pasted content.
type BodyStyle struct {
	FontFamily       string `yaml:"fontFamily"`
	FontSize         string `yaml:"fontSize"`
	LineHeight       string `yaml:"lineHeight"`
	Color            string `yaml:"color"`
	ParagraphSpacing string `yaml:"paragraphSpacing"`
}

// HeadingStyle applies to one heading level.
type HeadingStyle struct {
	FontSize     string `yaml:"fontSize"`
	FontWeight   string `yaml:"fontWeight"`
	MarginTop    string `yaml:"marginTop"`
	MarginBottom string `yaml:"marginBottom"`
	Color        string `yaml:"color"`
}

// Headings holds the six heading levels.
type Headings struct {
	H1 HeadingStyle `yaml:"h1"`
	H2 HeadingStyle `yaml:"h2"`
	H3 HeadingStyle `yaml:"h3"`
	H4 HeadingStyle `yaml:"h4"`
	H5 HeadingStyle `yaml:"h5"`
	H6 HeadingStyle `yaml:"h6"`
}

// Levels returns the heading styles ordered h1 to h6.
func (h Headings) Levels() [6]HeadingStyle {
	return [6]HeadingStyle{h.H1, h.H2, h.H3, h.H4, h.H5, h.H6}
}

// CodeStyle applies to code blocks and inline code.
type CodeStyle struct {
	FontFamily      string `yaml:"fontFamily"`
	FontSize        string `yaml:"fontSize"`
	BackgroundColor string `yaml:"backgroundColor"`
	TextColor       string `yaml:"textColor"`
	Padding         string `yaml:"padding"`
	BorderRadius    string `yaml:"borderRadius"`
	EnableHighlight bool   `yaml:"enableHighlight"`
	HighlightStyle  string `yaml:"highlightStyle"`
}

// TableStyle applies to Markdown tables.
type TableStyle struct {
	BorderWidth       string `yaml:"borderWidth"`
	BorderColor       string `yaml:"borderColor"`
	HeaderBgColor     string `yaml:"headerBgColor"`
	HeaderTextColor   string `yaml:"headerTextColor"`
	CellPadding       string `yaml:"cellPadding"`
	AlternateRowBg    bool   `yaml:"alternateRowBg"`
	AlternateRowColor string `yaml:"alternateRowColor"`
}

// ListStyle applies to bulleted and numbered lists.
type ListStyle struct {
	Indent      string `yaml:"indent"`
	BulletStyle string `yaml:"bulletStyle"`
	NumberStyle string `yaml:"numberStyle"`
	ItemSpacing string `yaml:"itemSpacing"`
}

// Loader is the part of an asset loader that serves presets by name.
type Loader interface {
	LoadStyle(name string) (string, error)
}

// Parse decodes a YAML preset and validates it. Unknown keys are rejected.
func Parse(data []byte) (*Preset, error) {
	var p Preset
	if err := yamlutil.UnmarshalStrict(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load resolves nameOrPath to a preset. A value containing a path
// separator is read from disk; anything else is looked up through loader.
func Load(loader Loader, nameOrPath string) (*Preset, error) {
	if fileutil.IsFilePath(nameOrPath) {
		var p Preset
		if err := yamlutil.ReadFileStrict(nameOrPath, &p); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPreset, nameOrPath, err)
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		return &p, nil
	}

	content, err := loader.LoadStyle(nameOrPath)
	if err != nil {
		return nil, err
	}
	return Parse([]byte(content))
}

// Validate checks that the preset is identified and that no CSS value can
// break out of its declaration.
func (p *Preset) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidPreset)
	}

	values := p.cssValues()
	fields := make([]string, 0, len(values))
	for field := range values {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		if value := values[field]; strings.ContainsAny(value, ";{}<>\\\n\r") {
			return fmt.Errorf("%w: %s = %q", ErrUnsafeCSSValue, field, value)
		}
	}
	return nil
}

// cssValues lists every value copied into the style sheet, keyed by its
// YAML path.
func (p *Preset) cssValues() map[string]string {
	values := map[string]string{
		"body.fontFamily":         p.Body.FontFamily,
		"body.fontSize":           p.Body.FontSize,
		"body.lineHeight":         p.Body.LineHeight,
		"body.color":              p.Body.Color,
		"body.paragraphSpacing":   p.Body.ParagraphSpacing,
		"code.fontFamily":         p.Code.FontFamily,
		"code.fontSize":           p.Code.FontSize,
		"code.backgroundColor":    p.Code.BackgroundColor,
		"code.textColor":          p.Code.TextColor,
		"code.padding":            p.Code.Padding,
		"code.borderRadius":       p.Code.BorderRadius,
		"table.borderWidth":       p.Table.BorderWidth,
		"table.borderColor":       p.Table.BorderColor,
		"table.headerBgColor":     p.Table.HeaderBgColor,
		"table.headerTextColor":   p.Table.HeaderTextColor,
		"table.cellPadding":       p.Table.CellPadding,
		"table.alternateRowColor": p.Table.AlternateRowColor,
		"list.indent":             p.List.Indent,
		"list.bulletStyle":        p.List.BulletStyle,
		"list.numberStyle":        p.List.NumberStyle,
		"list.itemSpacing":        p.List.ItemSpacing,
	}
	for i, h := range p.Headings.Levels() {
		prefix := fmt.Sprintf("headings.h%d.", i+1)
		values[prefix+"fontSize"] = h.FontSize
		values[prefix+"fontWeight"] = h.FontWeight
		values[prefix+"marginTop"] = h.MarginTop
		values[prefix+"marginBottom"] = h.MarginBottom
		values[prefix+"color"] = h.Color
	}
	return values
}
