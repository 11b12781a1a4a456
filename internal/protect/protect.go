package protect

import (
	"regexp"
	"strings"
)

// Markers placed around already-rendered math by upstream scrapers.
const (
	RenderedStart = "<!--RENDERED_MATH_START-->"
	RenderedEnd   = "<!--RENDERED_MATH_END-->"
)

var (
	renderedMath   = regexp.MustCompile(regexp.QuoteMeta(RenderedStart) + `([\s\S]*?)` + regexp.QuoteMeta(RenderedEnd))
	bracketBlock   = regexp.MustCompile(`(?m)^\[\s*\n([\s\S]+?)\n\s*\]$`)
	displayBracket = regexp.MustCompile(`\\\[\s*([\s\S]+?)\s*\\\]`)
	displayDollar  = regexp.MustCompile(`\$\$([\s\S]+?)\$\$`)
	inlineParen    = regexp.MustCompile(`\\\((.+?)\\\)`)
)

type protector struct {
	spans *Spans
}

// Protect replaces math spans in text with placeholders. Spans are
// recognized in this order, each pass seeing the output of the previous
// ones:
//
//  1. rendered math between RenderedStart and RenderedEnd
//  2. a "[" line, a body with a LaTeX indicator, and a "]" line
//  3. \begin{name}...\end{name}
//  4. \[...\]
//  5. $$...$$
//  6. \(...\)
//  7. $...$ on one line
//  8. bare (...) groups that look like math
//
// Passes 2 to 8 skip fenced code blocks and inline code spans. Text without
// math is returned unchanged.
func Protect(text string) (string, *Spans) {
	p := &protector{spans: newSpans()}

	text = p.rendered(text)

	var b strings.Builder
	for _, seg := range splitCode(text) {
		if seg.code {
			b.WriteString(seg.text)
			continue
		}
		b.WriteString(p.prose(seg.text))
	}
	return b.String(), p.spans
}

func (p *protector) prose(s string) string {
	passes := []func(string) string{
		p.bracketBlocks,
		p.environments,
		p.displayBrackets,
		p.displayDollars,
		p.inlineParens,
		p.inlineDollars,
		p.softParens,
	}
	for _, pass := range passes {
		s = pass(s)
	}
	return s
}

func (p *protector) rendered(s string) string {
	return replaceFunc(renderedMath, s, func(m []string) (string, bool) {
		return p.spans.add(Rendered, m[1]), true
	})
}

func (p *protector) bracketBlocks(s string) string {
	return replaceFunc(bracketBlock, s, func(m []string) (string, bool) {
		if !HasLatexIndicator(m[1]) {
			return "", false
		}
		return p.spans.add(LatexBlock, strings.TrimSpace(m[1])), true
	})
}

func (p *protector) displayBrackets(s string) string {
	return replaceFunc(displayBracket, s, func(m []string) (string, bool) {
		return p.latex(LatexBlock, m[1])
	})
}

func (p *protector) displayDollars(s string) string {
	return replaceFunc(displayDollar, s, func(m []string) (string, bool) {
		return p.latex(LatexBlock, m[1])
	})
}

func (p *protector) inlineParens(s string) string {
	return replaceFunc(inlineParen, s, func(m []string) (string, bool) {
		return p.latex(LatexInline, m[1])
	})
}

// latex records content as a span. Delimiters around a lone placeholder,
// as in $$\begin{aligned}...\end{aligned}$$, are dropped instead of
// nesting one span inside another. Environments embedded in a longer
// formula, as in $$f(x) = \begin{cases}...\end{cases}$$, are folded back
// into it and their own spans removed. Content holding rendered math is
// declined and stays in the text.
func (p *protector) latex(kind Kind, content string) (string, bool) {
	content = strings.TrimSpace(content)
	if _, ok := p.spans.Lookup(content); ok {
		return content, true
	}

	inner := placeholderPattern.FindAllString(content, -1)
	for _, ph := range inner {
		if sp, ok := p.spans.Lookup(ph); ok && sp.Kind == Rendered {
			return "", false
		}
	}
	for _, ph := range inner {
		sp, ok := p.spans.Lookup(ph)
		if !ok {
			continue
		}
		content = strings.Replace(content, ph, sp.Content, 1)
		p.spans.remove(ph)
	}
	return p.spans.add(kind, content), true
}

// environments extracts \begin{name}...\end{name} blocks. The end marker
// must repeat the same name, which a regular expression without
// backreferences cannot express, so the scan is done by hand.
func (p *protector) environments(s string) string {
	const begin = `\begin{`

	var b strings.Builder
	i := 0
	for {
		k := strings.Index(s[i:], begin)
		if k < 0 {
			break
		}
		start := i + k
		nameStart := start + len(begin)
		nameEnd := nameStart
		for nameEnd < len(s) && isEnvNameByte(s[nameEnd]) {
			nameEnd++
		}
		if nameEnd == nameStart || nameEnd+1 >= len(s) || s[nameEnd] != '}' {
			b.WriteString(s[i:nameStart])
			i = nameStart
			continue
		}

		name := s[nameStart:nameEnd]
		end := `\end{` + name + `}`
		bodyStart := nameEnd + 1
		// The body is at least one character long.
		e := strings.Index(s[bodyStart+1:], end)
		if e < 0 {
			b.WriteString(s[i:nameStart])
			i = nameStart
			continue
		}
		bodyEnd := bodyStart + 1 + e

		body := strings.TrimSpace(s[bodyStart:bodyEnd])
		b.WriteString(s[i:start])
		b.WriteString(p.spans.add(LatexBlock, begin+name+"}\n"+body+"\n"+end))
		i = bodyEnd + len(end)
	}
	b.WriteString(s[i:])
	return b.String()
}

func isEnvNameByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '*'
}

// inlineDollars extracts $...$ spans. Content stops at the first unescaped
// dollar sign and may not cross a newline; an escaped \$ never opens a span.
func (p *protector) inlineDollars(s string) string {
	if !strings.Contains(s, "$") {
		return s
	}

	var b strings.Builder
	last := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '$' || escaped(s, i) {
			continue
		}
		j := i + 1
		for j < len(s) && s[j] != '\n' && (s[j] != '$' || escaped(s, j)) {
			j++
		}
		if j >= len(s) || s[j] != '$' || j == i+1 {
			continue
		}
		rep, ok := p.latex(LatexInline, s[i+1:j])
		if ok {
			b.WriteString(s[last:i])
			b.WriteString(rep)
			last = j + 1
		}
		i = j
	}
	b.WriteString(s[last:])
	return b.String()
}

func escaped(s string, i int) bool {
	return i > 0 && s[i-1] == '\\'
}

// softParens finds balanced (...) groups with a depth counter and extracts
// those whose content passes IsMathExpression. Nested groups stay inside
// their outermost group. A stray ")" is copied through and an unclosed
// group is emitted verbatim at the end. Link destinations, "](...)", and
// groups that already hold a placeholder are left alone.
func (p *protector) softParens(s string) string {
	if !strings.Contains(s, "(") {
		return s
	}

	var out, buf strings.Builder
	depth := 0
	link := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '(':
			if depth == 0 {
				buf.Reset()
				link = i > 0 && s[i-1] == ']'
			} else {
				buf.WriteByte(c)
			}
			depth++
		case c == ')' && depth > 1:
			depth--
			buf.WriteByte(c)
		case c == ')' && depth == 1:
			depth = 0
			content := buf.String()
			if !link && !strings.Contains(content, placeholderPrefix) && IsMathExpression(content) {
				out.WriteString(p.spans.add(LatexInline, content))
			} else {
				out.WriteByte('(')
				out.WriteString(content)
				out.WriteByte(')')
			}
		case depth > 0:
			buf.WriteByte(c)
		default:
			out.WriteByte(c)
		}
	}
	if depth > 0 {
		out.WriteByte('(')
		out.WriteString(buf.String())
	}
	return out.String()
}

// replaceFunc replaces every match of re in s with fn's result. When fn
// declines, the match is kept as is.
func replaceFunc(re *regexp.Regexp, s string, fn func(groups []string) (string, bool)) string {
	locs := re.FindAllStringSubmatchIndex(s, -1)
	if locs == nil {
		return s
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		groups := make([]string, len(loc)/2)
		for g := range groups {
			if loc[2*g] >= 0 {
				groups[g] = s[loc[2*g]:loc[2*g+1]]
			}
		}
		b.WriteString(s[last:loc[0]])
		if rep, ok := fn(groups); ok {
			b.WriteString(rep)
		} else {
			b.WriteString(groups[0])
		}
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
