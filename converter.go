package aipaste

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dandandujie/ai-paste/internal/assets"
	"github.com/dandandujie/ai-paste/internal/mathml"
	"github.com/dandandujie/ai-paste/internal/pipeline"
	"github.com/dandandujie/ai-paste/internal/protect"
	"github.com/dandandujie/ai-paste/internal/style"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ pipeline.DocumentWrapper      = (*pipeline.DocumentTemplate)(nil)
	_ markdownRenderer              = (*pipeline.GoldmarkConverter)(nil)
)

// markdownRenderer renders carrier text to HTML and to plain text.
type markdownRenderer interface {
	pipeline.HTMLConverter
	ToPlainText(ctx context.Context, content string) (string, error)
}

// Converter turns chat output into HTML that pastes into Word with native
// equations. Create with NewConverter and reuse it: a Converter holds no
// per-conversion state and is safe for concurrent use.
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader // from WithAssetLoader
	preprocessor      pipeline.MarkdownPreprocessor
	renderer          markdownRenderer
	cssInjector       pipeline.CSSInjector
	wordDoc           pipeline.DocumentWrapper
	previewDoc        pipeline.DocumentWrapper
	clipboard         *pipeline.MathResolver // OMML for word and fragment output
	preview           *pipeline.MathResolver // MathML for preview output
	preset            *style.Preset
	css               string // preset rules, highlight rules and WithCSS
}

// NewConverter creates a Converter. Without options it produces Word
// documents styled with the default preset, compiling LaTeX directly.
// Returns error if an option is invalid or an asset cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			format:    FormatWord,
			strategy:  MathLatex,
			style:     DefaultStyle,
			generator: defaultGenerator,
		},
		assetLoader:  assets.NewEmbeddedLoader(),
		preprocessor: &pipeline.CommonMarkPreprocessor{},
		cssInjector:  &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	format, err := ParseFormat(string(c.cfg.format))
	if err != nil {
		return nil, err
	}
	c.cfg.format = format
	strategy, err := ParseMathStrategy(string(c.cfg.strategy))
	if err != nil {
		return nil, err
	}
	c.cfg.strategy = strategy

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}
	if c.publicAssetLoader != nil {
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	}

	if c.cfg.style == "" {
		c.cfg.style = DefaultStyle
	}
	c.preset, err = c.loadPreset(c.cfg.style)
	if err != nil {
		return nil, err
	}

	highlight := style.HighlightName(c.preset, c.cfg.highlightStyle)
	if !style.ValidHighlightStyle(highlight) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHighlightStyle, highlight)
	}
	// Code of a preset without highlighting is rendered with classes
	// that no rule targets, so it stays plain.
	inline := c.cfg.inlineStyles && c.preset.Code.EnableHighlight

	c.css, err = c.stylesheet(c.preset)
	if err != nil {
		return nil, err
	}

	c.renderer = pipeline.NewGoldmarkConverter(
		pipeline.WithHighlightStyle(highlight),
		pipeline.WithInlineStyles(inline),
	)

	if err := c.loadTemplates(); err != nil {
		return nil, err
	}

	rcStrategy := pipeline.Strategy(c.cfg.strategy)
	c.clipboard = pipeline.NewMathResolver(pipeline.RenderContext{Clipboard: true, Strategy: rcStrategy})
	c.preview = pipeline.NewMathResolver(pipeline.RenderContext{Clipboard: false, Strategy: rcStrategy})

	return c, nil
}

// Format returns the output format the converter produces.
func (c *Converter) Format() Format {
	return c.cfg.format
}

// Convert runs the conversion pipeline on one input.
// The context is used for cancellation.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	sourceType, err := c.validateInput(input)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	css := c.css
	if input.Style != "" && input.Style != c.cfg.style {
		preset, err := c.loadPreset(input.Style)
		if err != nil {
			return nil, err
		}
		if css, err = c.stylesheet(preset); err != nil {
			return nil, err
		}
	}
	if input.CSS != "" {
		css += "\n" + input.CSS
	}

	if sourceType == SourceHTML {
		return c.convertHTML(ctx, input, css)
	}
	return c.convertMarkdown(ctx, input, css)
}

// convertMarkdown protects math, renders the carrier text and restores
// each span for the converter's format.
func (c *Converter) convertMarkdown(ctx context.Context, input Input, css string) (*Result, error) {
	md := c.preprocessor.PreprocessMarkdown(ctx, input.Content)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	carrier, spans := protect.Protect(md)

	fragment, err := c.renderer.ToHTML(ctx, carrier)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	fragment, err = pipeline.AssignClasses(fragment, spans)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	resolver := c.clipboard
	if c.cfg.format == FormatPreview {
		resolver = c.preview
	}
	body := protect.Restore(fragment, spans, resolver.Resolve)

	doc, err := c.wrap(ctx, input.Title, body, css)
	if err != nil {
		return nil, err
	}

	plain, err := c.renderer.ToPlainText(ctx, carrier)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	plain = protect.Restore(plain, spans, plainSpan)

	return &Result{
		HTML:         doc,
		PlainText:    plain,
		HasFormula:   spans.Len() > 0,
		FormulaCount: spans.Len(),
	}, nil
}

// convertHTML replaces the rendered math of copied HTML by OMML. A full
// document keeps its own structure and only receives the style sheet.
func (c *Converter) convertHTML(ctx context.Context, input Input, css string) (*Result, error) {
	converted, count, err := c.clipboard.ConvertHTML(input.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var doc string
	if isFullDocument(input.Content) && c.cfg.format != FormatFragment {
		doc = c.cssInjector.InjectCSS(ctx, converted, css)
	} else {
		doc, err = c.wrap(ctx, input.Title, converted, css)
		if err != nil {
			return nil, err
		}
	}

	plain, err := pipeline.HTMLPlainText(input.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	return &Result{
		HTML:         doc,
		PlainText:    plain,
		HasFormula:   count > 0,
		FormulaCount: count,
	}, nil
}

// wrap shapes a converted body for the output format.
func (c *Converter) wrap(ctx context.Context, title, body, css string) (string, error) {
	var tmpl pipeline.DocumentWrapper
	switch c.cfg.format {
	case FormatFragment:
		return body, nil
	case FormatPreview:
		tmpl = c.previewDoc
	default:
		tmpl = c.wordDoc
	}

	doc, err := tmpl.WrapDocument(ctx, &pipeline.DocumentData{
		Title:     title,
		Generator: c.cfg.generator,
		Body:      body,
	})
	if err != nil {
		if errors.Is(err, pipeline.ErrTemplateRender) {
			return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
		}
		return "", err
	}

	doc = c.cssInjector.InjectCSS(ctx, doc, css)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return doc, nil
}

// loadPreset resolves a preset name or YAML path through the asset loader.
func (c *Converter) loadPreset(nameOrPath string) (*style.Preset, error) {
	preset, err := style.Load(c.assetLoader, nameOrPath)
	if err == nil {
		return preset, nil
	}
	if errors.Is(err, style.ErrInvalidPreset) || errors.Is(err, style.ErrUnsafeCSSValue) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStyle, err)
	}
	return nil, fmt.Errorf("loading style %q: %w", nameOrPath, convertAssetError(err))
}

// stylesheet builds the CSS of a preset with the converter's highlight
// settings, then appends WithCSS.
func (c *Converter) stylesheet(p *style.Preset) (string, error) {
	css, err := style.Stylesheet(p, c.cfg.highlightStyle, c.cfg.inlineStyles)
	if err != nil {
		if errors.Is(err, style.ErrUnknownHighlightStyle) {
			return "", fmt.Errorf("%w: %v", ErrInvalidHighlightStyle, err)
		}
		return "", err
	}
	if c.cfg.css != "" {
		css += "\n" + c.cfg.css
	}
	return css, nil
}

// loadTemplates parses the word and preview templates, from WithTemplateSet
// when given, else from the default set of the asset loader.
func (c *Converter) loadTemplates() error {
	var ts *assets.TemplateSet
	if c.cfg.templateSet != nil {
		ts = &assets.TemplateSet{
			Name:    c.cfg.templateSet.Name,
			Word:    c.cfg.templateSet.Word,
			Preview: c.cfg.templateSet.Preview,
		}
	} else {
		var err error
		ts, err = c.assetLoader.LoadTemplateSet(assets.DefaultTemplateSetName)
		if err != nil {
			return fmt.Errorf("loading default template set: %w", convertAssetError(err))
		}
	}

	word, err := pipeline.NewDocumentTemplate("word", ts.Word)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	preview, err := pipeline.NewDocumentTemplate("preview", ts.Preview)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	c.wordDoc = word
	c.previewDoc = preview
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
func (c *Converter) validateInput(input Input) (SourceType, error) {
	if strings.TrimSpace(input.Content) == "" {
		return "", ErrEmptyInput
	}
	return ParseSourceType(string(input.SourceType))
}

// plainSpan renders a span for plain-text output: LaTeX between its
// dollar delimiters, rendered math as its recovered source or visible text.
func plainSpan(sp protect.Span) string {
	switch sp.Kind {
	case protect.LatexBlock:
		return "$$" + sp.Content + "$$"
	case protect.LatexInline:
		return "$" + sp.Content + "$"
	}
	if tex, display, ok := pipeline.ExtractLatex(sp.Content); ok {
		if display {
			return "$$" + tex + "$$"
		}
		return "$" + tex + "$"
	}
	return mathml.StripTags(sp.Content)
}

// isFullDocument reports whether content is a complete HTML document
// rather than a fragment.
func isFullDocument(content string) bool {
	head := strings.ToLower(strings.TrimSpace(content))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}
