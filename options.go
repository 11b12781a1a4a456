package aipaste

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds the settings gathered from options.
type converterConfig struct {
	format         Format
	strategy       MathStrategy
	style          string // preset name or YAML path
	css            string // extra CSS appended to the preset rules
	highlightStyle string // chroma style overriding the preset's
	inlineStyles   bool
	assetPath      string
	templateSet    *TemplateSet
	generator      string
}

// defaultGenerator fills the Generator meta tag of produced documents.
const defaultGenerator = "ai-paste"

// WithFormat sets the output format (default FormatWord).
func WithFormat(f Format) Option {
	return func(c *Converter) {
		c.cfg.format = f
	}
}

// WithMathStrategy sets how LaTeX becomes OMML (default MathLatex).
func WithMathStrategy(s MathStrategy) Option {
	return func(c *Converter) {
		c.cfg.strategy = s
	}
}

// WithStyle selects a style preset by name, or by YAML file path when the
// value contains a path separator.
func WithStyle(nameOrPath string) Option {
	return func(c *Converter) {
		c.cfg.style = nameOrPath
	}
}

// WithCSS appends CSS after the preset rules of every conversion.
func WithCSS(css string) Option {
	return func(c *Converter) {
		c.cfg.css = css
	}
}

// WithHighlightStyle overrides the chroma style named by the preset.
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = name
	}
}

// WithInlineStyles renders code highlighting as style attributes instead of
// classes, for targets that drop style sheets.
func WithInlineStyles(inline bool) Option {
	return func(c *Converter) {
		c.cfg.inlineStyles = inline
	}
}

// WithAssetPath loads presets and templates from a directory, falling back
// to the embedded assets for anything it lacks.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. Takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithTemplateSet uses the given templates instead of loading the default set.
func WithTemplateSet(ts *TemplateSet) Option {
	return func(c *Converter) {
		c.cfg.templateSet = ts
	}
}

// WithGenerator sets the Generator meta tag of produced documents.
func WithGenerator(name string) Option {
	return func(c *Converter) {
		c.cfg.generator = name
	}
}
