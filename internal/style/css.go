package style

import (
	"fmt"
	"strings"
)

// mathFontFamily renders formulas in preview mode and in plain fallbacks.
const mathFontFamily = `"Cambria Math", "Times New Roman", serif`

// Fixed quote block colors shared by every preset.
const (
	quoteBorderColor = "#ddd"
	quoteBackground  = "#f9f9f9"
	quoteTextColor   = "#666"
	linkColor        = "#0066cc"
)

// BuildCSS generates the style sheet for a preset. The selectors target
// the classes assigned to rendered Markdown so the rules survive a paste.
func BuildCSS(p *Preset) string {
	var buf strings.Builder

	buf.WriteString(buildBodyCSS(p.Body))
	buf.WriteString(buildHeadingsCSS(p.Headings))
	buf.WriteString(buildCodeCSS(p.Code))
	buf.WriteString(buildTableCSS(p.Table))
	buf.WriteString(buildQuoteCSS())
	buf.WriteString(buildListCSS(p.List))
	buf.WriteString(buildInlineCSS())
	buf.WriteString(buildMathCSS())

	return buf.String()
}

func buildBodyCSS(b BodyStyle) string {
	return fmt.Sprintf(`
/* Body */
.ai-paste-content {
  font-family: %s;
  font-size: %s;
  line-height: %s;
  color: %s;
}
.md-paragraph {
  margin: 0 0 %s 0;
  font-family: %s;
  font-size: %s;
  line-height: %s;
}
`, b.FontFamily, b.FontSize, b.LineHeight, b.Color,
		b.ParagraphSpacing, b.FontFamily, b.FontSize, b.LineHeight)
}

func buildHeadingsCSS(h Headings) string {
	var buf strings.Builder
	buf.WriteString("\n/* Headings */\n")
	for i, level := range h.Levels() {
		fmt.Fprintf(&buf, `.md-h%d {
  font-size: %s;
  font-weight: %s;
  margin-top: %s;
  margin-bottom: %s;
  color: %s;
}
`, i+1, level.FontSize, level.FontWeight, level.MarginTop, level.MarginBottom, level.Color)
	}
	return buf.String()
}

// buildCodeCSS styles the code-block wrapper and the pre it contains.
// Chroma's own background is overridden so the preset colour wins.
func buildCodeCSS(c CodeStyle) string {
	return fmt.Sprintf(`
/* Code */
.code-block, .code-block pre {
  font-family: %s;
  font-size: %s;
  background-color: %s;
  color: %s;
  border-radius: %s;
}
.code-block {
  margin: 8pt 0;
  overflow-x: auto;
}
.code-block pre {
  margin: 0;
  padding: %s;
  white-space: pre-wrap;
  word-wrap: break-word;
}
.code-block code {
  background: transparent;
  padding: 0;
}
.md-code-inline {
  font-family: %s;
  font-size: %s;
  background-color: %s;
  color: %s;
  padding: 2px 4px;
  border-radius: 3px;
}
`, c.FontFamily, c.FontSize, c.BackgroundColor, c.TextColor, c.BorderRadius,
		c.Padding,
		c.FontFamily, c.FontSize, c.BackgroundColor, c.TextColor)
}

func buildTableCSS(t TableStyle) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, `
/* Tables */
.md-table {
  border-collapse: collapse;
  width: 100%%;
  margin: 8pt 0;
  border: %s solid %s;
}
.md-table th, .md-table td {
  border: %s solid %s;
  padding: %s;
  text-align: left;
}
.md-table th {
  background-color: %s;
  color: %s;
  font-weight: bold;
}
`, t.BorderWidth, t.BorderColor,
		t.BorderWidth, t.BorderColor, t.CellPadding,
		t.HeaderBgColor, t.HeaderTextColor)

	if t.AlternateRowBg {
		fmt.Fprintf(&buf, `.md-table tr:nth-child(even) {
  background-color: %s;
}
`, t.AlternateRowColor)
	}
	return buf.String()
}

func buildQuoteCSS() string {
	return fmt.Sprintf(`
/* Blockquotes */
.md-blockquote {
  margin: 8pt 0;
  padding: 8pt 16pt;
  border-left: 4px solid %s;
  background-color: %s;
  color: %s;
}
`, quoteBorderColor, quoteBackground, quoteTextColor)
}

func buildListCSS(l ListStyle) string {
	return fmt.Sprintf(`
/* Lists */
ul, ol {
  margin: 8pt 0;
  padding-left: %s;
}
ul {
  list-style-type: %s;
}
ol {
  list-style-type: %s;
}
.md-list-item {
  margin-bottom: %s;
}
`, l.Indent, l.BulletStyle, l.NumberStyle, l.ItemSpacing)
}

func buildInlineCSS() string {
	return fmt.Sprintf(`
/* Inline */
.md-link {
  color: %s;
  text-decoration: underline;
}
.md-strong {
  font-weight: bold;
}
.md-em {
  font-style: italic;
}
.md-image {
  max-width: 100%%;
}
`, linkColor)
}

func buildMathCSS() string {
	return fmt.Sprintf(`
/* Math */
.math-block, .math-inline {
  font-family: %s;
}
.math-block {
  display: block;
  margin: 8pt 0;
  text-align: center;
}
.math-source {
  font-style: italic;
}
`, mathFontFamily)
}
