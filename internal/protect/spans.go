// Package protect hides math spans from a Markdown renderer.
//
// Protect scans text for math in several surface syntaxes, in a fixed
// precedence order, and replaces each span with an opaque placeholder.
// After rendering, Restore substitutes every placeholder with markup
// produced by a caller-supplied resolver. Spans are created per call and
// never shared.
package protect

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Kind tells the resolver how a span should be rendered.
type Kind int

const (
	// Rendered is math that was already rendered to HTML upstream.
	Rendered Kind = iota
	// LatexBlock is display LaTeX.
	LatexBlock
	// LatexInline is inline LaTeX.
	LatexInline
)

func (k Kind) String() string {
	switch k {
	case Rendered:
		return "rendered"
	case LatexBlock:
		return "latex-block"
	case LatexInline:
		return "latex-inline"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsBlock reports whether spans of this kind are display math.
func (k Kind) IsBlock() bool {
	return k == LatexBlock
}

// Placeholders are a fixed alphanumeric prefix, a counter and a fixed
// suffix. They contain nothing Markdown treats specially, and the suffix
// keeps AIPASTEMATH1PLACEHOLDER from matching inside AIPASTEMATH10PLACEHOLDER.
const (
	placeholderPrefix = "AIPASTEMATH"
	placeholderSuffix = "PLACEHOLDER"
)

var placeholderPattern = regexp.MustCompile(placeholderPrefix + `[0-9]+` + placeholderSuffix)

// Placeholder returns the placeholder for the n-th span.
func Placeholder(n int) string {
	return fmt.Sprintf("%s%d%s", placeholderPrefix, n, placeholderSuffix)
}

// Span is one protected region.
type Span struct {
	Placeholder string
	Kind        Kind
	Content     string
}

// Spans maps placeholders to their spans, in the order they were found.
type Spans struct {
	list  []Span
	index map[string]int
	next  int
}

func newSpans() *Spans {
	return &Spans{index: make(map[string]int)}
}

// add records a span and returns its fresh placeholder.
func (s *Spans) add(kind Kind, content string) string {
	ph := Placeholder(s.next)
	s.next++
	s.index[ph] = len(s.list)
	s.list = append(s.list, Span{Placeholder: ph, Kind: kind, Content: content})
	return ph
}

// remove drops the span for placeholder. Placeholders are never reused.
func (s *Spans) remove(placeholder string) {
	i, ok := s.index[placeholder]
	if !ok {
		return
	}
	s.list = slices.Delete(s.list, i, i+1)
	delete(s.index, placeholder)
	for j := i; j < len(s.list); j++ {
		s.index[s.list[j].Placeholder] = j
	}
}

// Len returns the number of spans.
func (s *Spans) Len() int {
	if s == nil {
		return 0
	}
	return len(s.list)
}

// All returns a copy of the spans in discovery order.
func (s *Spans) All() []Span {
	if s == nil {
		return nil
	}
	out := make([]Span, len(s.list))
	copy(out, s.list)
	return out
}

// Lookup returns the span for placeholder.
func (s *Spans) Lookup(placeholder string) (Span, bool) {
	if s == nil {
		return Span{}, false
	}
	i, ok := s.index[placeholder]
	if !ok {
		return Span{}, false
	}
	return s.list[i], true
}

// Restore replaces every placeholder in carrier with resolve(span).
// Substitution is literal and happens in a single pass, so resolved markup
// is never scanned for placeholders again.
func Restore(carrier string, spans *Spans, resolve func(Span) string) string {
	if spans.Len() == 0 {
		return carrier
	}
	pairs := make([]string, 0, 2*spans.Len())
	for _, sp := range spans.list {
		pairs = append(pairs, sp.Placeholder, resolve(sp))
	}
	return strings.NewReplacer(pairs...).Replace(carrier)
}
