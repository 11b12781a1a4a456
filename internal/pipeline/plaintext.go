package pipeline

import (
	"context"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// ToPlainText renders Markdown as readable plain text: markup is dropped,
// list items keep a bullet or their number, table cells are separated by
// tabs and code blocks are kept verbatim. Placeholders pass through as
// ordinary words.
func (c *GoldmarkConverter) ToPlainText(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	src := []byte(content)
	doc := c.md.Parser().Parse(text.NewReader(src))

	w := &plainWriter{src: src}
	if err := ast.Walk(doc, w.visit); err != nil {
		return "", err
	}
	return strings.TrimSpace(multipleBlankLines.ReplaceAllString(w.b.String(), "\n\n")), nil
}

type plainWriter struct {
	src []byte
	b   strings.Builder
}

func (w *plainWriter) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := n.(type) {
	case *ast.Text:
		if entering {
			w.b.Write(n.Segment.Value(w.src))
			if n.SoftLineBreak() || n.HardLineBreak() {
				w.b.WriteByte('\n')
			}
		}
	case *ast.String:
		if entering {
			w.b.Write(n.Value)
		}
	case *ast.AutoLink:
		if entering {
			w.b.Write(n.Label(w.src))
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			w.newline()
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				w.b.Write(seg.Value(w.src))
			}
			w.blankLine()
		}
		return ast.WalkSkipChildren, nil
	case *ast.HTMLBlock, *ast.RawHTML:
		return ast.WalkSkipChildren, nil
	case *ast.ThematicBreak:
		if entering {
			w.newline()
			w.b.WriteString("---")
			w.blankLine()
		}
	case *ast.ListItem:
		if entering {
			w.newline()
			w.b.WriteString(strings.Repeat("  ", listDepth(n)-1))
			w.b.WriteString(listMarker(n))
		} else {
			w.newline()
		}
	case *ast.List:
		if !entering && listDepth(n) == 0 {
			w.blankLine()
		}
	case *ast.Paragraph, *ast.Heading, *ast.Blockquote:
		if !entering {
			if _, inItem := n.Parent().(*ast.ListItem); inItem {
				w.newline()
			} else {
				w.blankLine()
			}
		}
	case *ast.TextBlock:
		if !entering {
			w.newline()
		}
	case *east.TableCell:
		if !entering && n.NextSibling() != nil {
			w.b.WriteByte('\t')
		}
	case *east.TableHeader, *east.TableRow:
		if !entering {
			w.newline()
		}
	case *east.Table:
		if !entering {
			w.blankLine()
		}
	case *east.TaskCheckBox:
		if entering {
			if n.IsChecked {
				w.b.WriteString("[x] ")
			} else {
				w.b.WriteString("[ ] ")
			}
		}
	case *east.FootnoteLink:
		if entering {
			w.b.WriteString("[" + strconv.Itoa(n.Index) + "]")
		}
	case *east.FootnoteBacklink:
		return ast.WalkSkipChildren, nil
	case *east.Footnote:
		if entering {
			w.newline()
			w.b.WriteString("[" + strconv.Itoa(n.Index) + "] ")
		}
	}
	return ast.WalkContinue, nil
}

// newline ends the current line unless it is already ended.
func (w *plainWriter) newline() {
	s := w.b.String()
	if s != "" && !strings.HasSuffix(s, "\n") {
		w.b.WriteByte('\n')
	}
}

// blankLine ends the current paragraph with an empty line.
func (w *plainWriter) blankLine() {
	w.newline()
	s := w.b.String()
	if s != "" && !strings.HasSuffix(s, "\n\n") {
		w.b.WriteByte('\n')
	}
}

// listDepth counts the lists enclosing n, n itself excluded.
func listDepth(n ast.Node) int {
	depth := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		if _, ok := p.(*ast.List); ok {
			depth++
		}
	}
	return depth
}

func listMarker(item *ast.ListItem) string {
	list, ok := item.Parent().(*ast.List)
	if !ok || !list.IsOrdered() {
		return "• "
	}
	n := list.Start
	for s := item.PreviousSibling(); s != nil; s = s.PreviousSibling() {
		n++
	}
	return strconv.Itoa(n) + ". "
}
