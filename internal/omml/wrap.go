package omml

import (
	"regexp"
	"strings"
)

const (
	tagMath     = "m:oMath"
	tagMathPara = "m:oMathPara"
)

// nsDeclPattern matches an xmlns:m declaration on any element.
var nsDeclPattern = regexp.MustCompile(`\s+xmlns:m\s*=\s*("[^"]*"|'[^']*')`)

// Math serializes content and places it for Word.
// Block math becomes <m:oMathPara xmlns:m=...><m:oMath>...</m:oMath></m:oMathPara>,
// inline math becomes <m:oMath xmlns:m=...>...</m:oMath>.
func Math(display bool, content ...Child) string {
	return wrap(Serialize(content...), display)
}

// Fallback wraps raw text as a single run in a math container.
// It is the last resort when a tree could not be built.
func Fallback(text string, display bool) string {
	return Math(display, Run(text))
}

// Wrap places already-serialized OMML for Word.
// Namespace declarations inside markup are removed and the outer oMath or
// oMathPara container, when present, is replaced so the namespace is declared
// exactly once at the wrapper boundary.
func Wrap(markup string, display bool) string {
	s := strings.TrimSpace(nsDeclPattern.ReplaceAllString(markup, ""))
	s = unwrap(s, tagMathPara)
	s = unwrap(s, tagMath)

	if startsWithTag(s, tagMath) {
		// Several sibling oMath elements remain after unwrapping.
		if display {
			return "<" + tagMathPara + ` xmlns:m="` + Namespace + `">` + s + "</" + tagMathPara + ">"
		}
		return declareOnEach(s)
	}
	return wrap(s, display)
}

func wrap(inner string, display bool) string {
	if display {
		return "<" + tagMathPara + ` xmlns:m="` + Namespace + `"><` + tagMath + ">" +
			inner + "</" + tagMath + "></" + tagMathPara + ">"
	}
	return "<" + tagMath + ` xmlns:m="` + Namespace + `">` + inner + "</" + tagMath + ">"
}

// unwrap strips a single outer element named tag when it encloses all of s.
func unwrap(s, tag string) string {
	if !startsWithTag(s, tag) {
		return s
	}
	closeTag := "</" + tag + ">"
	if !strings.HasSuffix(s, closeTag) {
		return s
	}
	openEnd := strings.IndexByte(s, '>')
	if openEnd < 0 || s[openEnd-1] == '/' {
		return s
	}
	body := s[openEnd+1 : len(s)-len(closeTag)]
	if strings.Contains(body, closeTag) || containsOpenTag(body, tag) {
		return s
	}
	return body
}

// startsWithTag reports whether s begins with an opening tag named exactly tag.
func startsWithTag(s, tag string) bool {
	if !strings.HasPrefix(s, "<"+tag) || len(s) <= len(tag)+1 {
		return false
	}
	switch s[len(tag)+1] {
	case '>', ' ', '\t', '\n', '\r', '/':
		return true
	}
	return false
}

func containsOpenTag(s, tag string) bool {
	for i := 0; ; {
		j := strings.Index(s[i:], "<"+tag)
		if j < 0 {
			return false
		}
		if startsWithTag(s[i+j:], tag) {
			return true
		}
		i += j + 1
	}
}

// declareOnEach adds the namespace to each top-level oMath opening tag.
// Nested oMath elements inherit it from their ancestor.
func declareOnEach(s string) string {
	openTag, closeTag := "<"+tagMath, "</"+tagMath+">"

	var b strings.Builder
	depth := 0
	for i := 0; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], closeTag):
			depth--
			b.WriteString(closeTag)
			i += len(closeTag)
		case startsWithTag(s[i:], tagMath):
			end := strings.IndexByte(s[i:], '>')
			if end < 0 {
				b.WriteString(s[i:])
				return b.String()
			}
			tag := s[i : i+end+1]
			if depth == 0 {
				tag = openTag + ` xmlns:m="` + Namespace + `"` + tag[len(openTag):]
			}
			if !strings.HasSuffix(tag, "/>") {
				depth++
			}
			b.WriteString(tag)
			i += end + 1
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}
