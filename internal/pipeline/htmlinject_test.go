package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dandandujie/ai-paste/internal/assets"
)

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no escape needed",
			input:    ".md-paragraph { color: red; }",
			expected: ".md-paragraph { color: red; }",
		},
		{
			name:     "escapes style close",
			input:    "</style>",
			expected: `<\/style>`,
		},
		{
			name:     "multiple occurrences",
			input:    "</a></b>",
			expected: `<\/a><\/b>`,
		},
		{
			name:     "case variation",
			input:    "</STYLE>",
			expected: `<\/STYLE>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := sanitizeCSS(tt.input)
			if got != tt.expected {
				t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		html     string
		css      string
		expected string
	}{
		{
			name:     "empty CSS returns HTML unchanged",
			html:     "<html><head></head><body>Hello</body></html>",
			css:      "",
			expected: "<html><head></head><body>Hello</body></html>",
		},
		{
			name:     "injects before </head>",
			html:     "<html><head></head><body>Hello</body></html>",
			css:      "p { color: red; }",
			expected: "<html><head><style>p { color: red; }</style></head><body>Hello</body></html>",
		},
		{
			name:     "injects after body with attributes",
			html:     `<html><body class="ai-paste-content" xmlns:m="x">Hello</body></html>`,
			css:      "p { color: red; }",
			expected: `<html><body class="ai-paste-content" xmlns:m="x"><style>p { color: red; }</style>Hello</body></html>`,
		},
		{
			name:     "prepends to bare fragment",
			html:     "<p>Hello</p>",
			css:      "p { color: blue; }",
			expected: "<style>p { color: blue; }</style><p>Hello</p>",
		},
		{
			name:     "sanitizes CSS with closing tags",
			html:     "<html><head></head><body>Hello</body></html>",
			css:      "</style><script>alert('xss')</script>",
			expected: `<html><head><style><\/style><script>alert('xss')<\/script></style></head><body>Hello</body></html>`,
		},
	}

	injector := &CSSInjection{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := injector.InjectCSS(context.Background(), tt.html, tt.css)
			if got != tt.expected {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestInjectCSS_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	html := "<html><head></head><body>Hello</body></html>"
	got := (&CSSInjection{}).InjectCSS(ctx, html, "p { color: red; }")
	if got != html {
		t.Errorf("InjectCSS() with cancelled context = %q, want HTML unchanged", got)
	}
}

func TestDocumentTemplate_WrapDocument(t *testing.T) {
	t.Parallel()

	tmpl, err := NewDocumentTemplate("test", `<title>{{.Title | html}}</title><body>{{.Body}}</body>`)
	if err != nil {
		t.Fatalf("NewDocumentTemplate() error = %v", err)
	}

	tests := []struct {
		name     string
		data     *DocumentData
		expected string
	}{
		{
			name:     "body is inserted unescaped",
			data:     &DocumentData{Title: "T", Body: `<m:oMath xmlns:m="x"></m:oMath>`},
			expected: `<title>T</title><body><m:oMath xmlns:m="x"></m:oMath></body>`,
		},
		{
			name:     "title is escaped",
			data:     &DocumentData{Title: "a < b", Body: "x"},
			expected: `<title>a &lt; b</title><body>x</body>`,
		},
		{
			name:     "nil data renders empty document",
			data:     nil,
			expected: `<title></title><body></body>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tmpl.WrapDocument(context.Background(), tt.data)
			if err != nil {
				t.Fatalf("WrapDocument() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("WrapDocument() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDocumentTemplate_Errors(t *testing.T) {
	t.Parallel()

	t.Run("parse error", func(t *testing.T) {
		t.Parallel()

		if _, err := NewDocumentTemplate("bad", "{{.Body"); err == nil {
			t.Error("NewDocumentTemplate() expected error for unclosed action")
		}
	})

	t.Run("execution error", func(t *testing.T) {
		t.Parallel()

		tmpl, err := NewDocumentTemplate("missing", "{{.Missing}}")
		if err != nil {
			t.Fatalf("NewDocumentTemplate() error = %v", err)
		}
		_, err = tmpl.WrapDocument(context.Background(), &DocumentData{})
		if !errors.Is(err, ErrTemplateRender) {
			t.Errorf("WrapDocument() error = %v, want ErrTemplateRender", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		tmpl, err := NewDocumentTemplate("ok", "{{.Body}}")
		if err != nil {
			t.Fatalf("NewDocumentTemplate() error = %v", err)
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := tmpl.WrapDocument(ctx, &DocumentData{}); !errors.Is(err, context.Canceled) {
			t.Errorf("WrapDocument() error = %v, want context.Canceled", err)
		}
	})
}

func TestDocumentTemplate_EmbeddedWord(t *testing.T) {
	t.Parallel()

	ts, err := assets.NewEmbeddedLoader().LoadTemplateSet(assets.DefaultTemplateSetName)
	if err != nil {
		t.Fatalf("LoadTemplateSet() error = %v", err)
	}
	tmpl, err := NewDocumentTemplate("word", ts.Word)
	if err != nil {
		t.Fatalf("NewDocumentTemplate() error = %v", err)
	}

	got, err := tmpl.WrapDocument(context.Background(), &DocumentData{
		Title:     "Doc",
		Generator: "ai-paste",
		Body:      "<p>hi</p>",
	})
	if err != nil {
		t.Fatalf("WrapDocument() error = %v", err)
	}

	wantContains := []string{
		"<!DOCTYPE html>",
		`xmlns:o="urn:schemas-microsoft-com:office:office"`,
		`xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`,
		`xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math"`,
		`<meta name="ProgId" content="Word.Document">`,
		`<meta name="Generator" content="ai-paste">`,
		"<!--[if gte mso 9]>",
		`<body class="ai-paste-content"`,
		"<!--StartFragment--><p>hi</p><!--EndFragment-->",
	}
	for _, want := range wantContains {
		if !strings.Contains(got, want) {
			t.Errorf("word document missing %q", want)
		}
	}

	styled := (&CSSInjection{}).InjectCSS(context.Background(), got, "p{}")
	if !strings.Contains(styled, "<style>p{}</style></head>") {
		t.Error("InjectCSS() did not place the style block in the word document head")
	}
}
