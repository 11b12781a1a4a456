package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/dandandujie/ai-paste/internal/latex"
	"github.com/dandandujie/ai-paste/internal/protect"
)

const nsDecl = `xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math"`

func TestParseStrategy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Strategy
		wantErr bool
	}{
		{name: "empty defaults to latex", input: "", want: StrategyLatex},
		{name: "latex", input: "latex", want: StrategyLatex},
		{name: "mathml any case", input: " MathML ", want: StrategyMathML},
		{name: "unknown", input: "katex", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseStrategy(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidStrategy) {
					t.Errorf("ParseStrategy(%q) error = %v, want ErrInvalidStrategy", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStrategy(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseStrategy(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMathResolver_ClipboardLatex(t *testing.T) {
	t.Parallel()

	r := NewMathResolver(RenderContext{Clipboard: true})

	tests := []struct {
		name string
		span protect.Span
		want string
	}{
		{
			name: "inline",
			span: protect.Span{Kind: protect.LatexInline, Content: "x^2"},
			want: latex.Compile("x^2", false),
		},
		{
			name: "block",
			span: protect.Span{Kind: protect.LatexBlock, Content: `\frac{a}{b}`},
			want: latex.Compile(`\frac{a}{b}`, true),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := r.Resolve(tt.span); got != tt.want {
				t.Errorf("Resolve(%+v) = %q, want %q", tt.span, got, tt.want)
			}
		})
	}
}

func TestMathResolver_ClipboardMathML(t *testing.T) {
	t.Parallel()

	r := NewMathResolver(RenderContext{Clipboard: true, Strategy: StrategyMathML})

	tests := []struct {
		name       string
		src        string
		display    bool
		wantPrefix string
		wantParts  []string
	}{
		{
			name:       "inline fraction",
			src:        `\frac{a}{b}`,
			wantPrefix: "<m:oMath " + nsDecl + ">",
			wantParts:  []string{"<m:f>", "<m:t>a</m:t>", "<m:t>b</m:t>"},
		},
		{
			name:       "display square root",
			src:        `\sqrt{x}`,
			display:    true,
			wantPrefix: "<m:oMathPara " + nsDecl + "><m:oMath>",
			wantParts:  []string{"<m:rad>", "<m:t>x</m:t>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := r.Latex(tt.src, tt.display)
			if !strings.HasPrefix(got, tt.wantPrefix) {
				t.Errorf("Latex(%q) = %q, want prefix %q", tt.src, got, tt.wantPrefix)
			}
			if strings.Count(got, "xmlns:m=") != 1 {
				t.Errorf("Latex(%q) = %q, want the namespace declared once", tt.src, got)
			}
			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("Latex(%q) = %q, want it to contain %q", tt.src, got, part)
				}
			}
		})
	}
}

func TestMathResolver_Preview(t *testing.T) {
	t.Parallel()

	r := NewMathResolver(RenderContext{})

	inline := r.Resolve(protect.Span{Kind: protect.LatexInline, Content: "x"})
	if !strings.HasPrefix(inline, `<span class="math-inline"><math`) || !strings.HasSuffix(inline, "</math></span>") {
		t.Errorf("Resolve(inline) = %q, want MathML directly inside a math-inline span", inline)
	}

	block := r.Resolve(protect.Span{Kind: protect.LatexBlock, Content: "x^2"})
	if !strings.HasPrefix(block, `<div class="math-block"><math`) || !strings.HasSuffix(block, "</math></div>") {
		t.Errorf("Resolve(block) = %q, want MathML directly inside a math-block div", block)
	}

	rendered := r.Resolve(protect.Span{Kind: protect.Rendered, Content: `<span class="katex">x</span>`})
	if want := `<span class="preserved-math"><span class="katex">x</span></span>`; rendered != want {
		t.Errorf("Resolve(rendered) = %q, want %q", rendered, want)
	}
}

func TestNewMathResolver_DefaultStrategy(t *testing.T) {
	t.Parallel()

	r := NewMathResolver(RenderContext{Clipboard: true})
	if got := r.Context().Strategy; got != StrategyLatex {
		t.Errorf("Context().Strategy = %q, want %q", got, StrategyLatex)
	}
}
