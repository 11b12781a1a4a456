package assets

// TemplateSet holds the document templates used to wrap a rendered fragment.
type TemplateSet struct {
	Name    string // Identifier (name or directory path)
	Word    string // Word clipboard document template
	Preview string // Browser preview document template
}

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in style preset.
const DefaultStyleName = "default"

// Template file names inside a template set directory.
const (
	wordTemplateFile    = "word.html"
	previewTemplateFile = "preview.html"
)

// styleExt is the file extension of style presets.
const styleExt = ".yaml"
