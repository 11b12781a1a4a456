package protect

import "strings"

// segment is a run of text that is either code or prose.
type segment struct {
	text string
	code bool
}

// splitCode cuts text into prose and code segments. Fenced code blocks
// (``` or ~~~, closed by a fence at least as long, or running to the end)
// and inline code spans (matching backtick runs) are code.
func splitCode(text string) []segment {
	var segs []segment
	var prose strings.Builder

	flush := func() {
		if prose.Len() > 0 {
			segs = append(segs, splitInlineCode(prose.String())...)
			prose.Reset()
		}
	}

	lines := strings.SplitAfter(text, "\n")
	for i := 0; i < len(lines); i++ {
		fence := openingFence(lines[i])
		if fence == "" {
			prose.WriteString(lines[i])
			continue
		}

		flush()
		var code strings.Builder
		code.WriteString(lines[i])
		for i++; i < len(lines); i++ {
			code.WriteString(lines[i])
			if closesFence(lines[i], fence) {
				break
			}
		}
		segs = append(segs, segment{text: code.String(), code: true})
	}
	flush()
	return segs
}

// openingFence returns the fence run that opens a code block on line, or "".
func openingFence(line string) string {
	s := trimIndent(line)
	if len(s) < 3 || (s[0] != '`' && s[0] != '~') {
		return ""
	}
	n := runLength(s, 0)
	if n < 3 {
		return ""
	}
	if s[0] == '`' && strings.Contains(s[n:], "`") {
		return ""
	}
	return s[:n]
}

func closesFence(line, fence string) bool {
	s := trimIndent(line)
	if len(s) == 0 || s[0] != fence[0] {
		return false
	}
	n := runLength(s, 0)
	return n >= len(fence) && strings.TrimSpace(s[n:]) == ""
}

// trimIndent strips up to three leading spaces.
func trimIndent(line string) string {
	for i := 0; i < 3 && strings.HasPrefix(line, " "); i++ {
		line = line[1:]
	}
	return line
}

// runLength counts repetitions of s[i] starting at i.
func runLength(s string, i int) int {
	n := 0
	for i+n < len(s) && s[i+n] == s[i] {
		n++
	}
	return n
}

// splitInlineCode marks backtick code spans inside prose. A backtick run
// without a closing run of the same length is literal text.
func splitInlineCode(s string) []segment {
	var segs []segment
	start := 0
	for i := 0; i < len(s); {
		if s[i] != '`' {
			i++
			continue
		}
		n := runLength(s, i)
		closing := findRun(s, i+n, n)
		if closing < 0 {
			i += n
			continue
		}
		if i > start {
			segs = append(segs, segment{text: s[start:i]})
		}
		segs = append(segs, segment{text: s[i : closing+n], code: true})
		start = closing + n
		i = start
	}
	if start < len(s) {
		segs = append(segs, segment{text: s[start:]})
	}
	return segs
}

// findRun returns the index of the next backtick run of exactly n at or
// after i, or -1.
func findRun(s string, i, n int) int {
	for i < len(s) {
		k := strings.IndexByte(s[i:], '`')
		if k < 0 {
			return -1
		}
		i += k
		m := runLength(s, i)
		if m == n {
			return i
		}
		i += m
	}
	return -1
}
