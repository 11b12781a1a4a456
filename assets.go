package aipaste

import (
	"errors"

	"github.com/dandandujie/ai-paste/internal/assets"
)

// Asset name constants for built-in presets and templates.
const (
	// DefaultStyle is the name of the built-in style preset.
	DefaultStyle = "default"

	// DefaultTemplateSet is the name of the built-in template set.
	DefaultTemplateSet = "default"
)

// AssetLoader defines the contract for loading style presets and document
// templates.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded defaults. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadStyle loads a YAML style preset by name (without .yaml extension).
	// Returns ErrStyleNotFound if the preset doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the word and preview templates by name.
	// Returns ErrTemplateSetNotFound if the template set doesn't exist.
	// Returns ErrIncompleteTemplateSet if required templates are missing.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// TemplateSet holds the document templates wrapping a converted body.
// Templates are text/template sources executed with Title, Generator and
// Body; Body is inserted unescaped.
type TemplateSet struct {
	Name    string // Identifier (name or path)
	Word    string // Clipboard document template
	Preview string // Browser preview template
}

// NewTemplateSet creates a TemplateSet from word and preview template content.
func NewTemplateSet(name, word, preview string) *TemplateSet {
	return &TemplateSet{
		Name:    name,
		Word:    word,
		Preview: preview,
	}
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - styles/{name}.yaml for style presets
//   - templates/{name}/word.html and preview.html for template sets
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// Styles returns the names of the embedded style presets, sorted.
func Styles() ([]string, error) {
	return assets.ListStyles()
}

// assetLoaderAdapter wraps internal AssetResolver to return public types.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := a.resolver.LoadTemplateSet(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &TemplateSet{
		Name:    ts.Name,
		Word:    ts.Word,
		Preview: ts.Preview,
	}, nil
}

// ListStyles returns the custom and embedded preset names, sorted.
func (a *assetLoaderAdapter) ListStyles() ([]string, error) {
	return a.resolver.ListStyles()
}

// publicToInternalAdapter wraps a public AssetLoader for the internal packages.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) LoadStyle(name string) (string, error) {
	return a.pub.LoadStyle(name)
}

func (a *publicToInternalAdapter) LoadTemplateSet(name string) (*assets.TemplateSet, error) {
	ts, err := a.pub.LoadTemplateSet(name)
	if err != nil {
		return nil, err
	}
	return &assets.TemplateSet{
		Name:    ts.Name,
		Word:    ts.Word,
		Preview: ts.Preview,
	}, nil
}

// ListStyles asks the public loader for its presets when it can list
// them, and falls back to the embedded list.
func (a *publicToInternalAdapter) ListStyles() ([]string, error) {
	if lister, ok := a.pub.(interface{ ListStyles() ([]string, error) }); ok {
		return lister.ListStyles()
	}
	return assets.ListStyles()
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateSetNotFound):
		return wrapError(ErrTemplateSetNotFound, err)
	case errors.Is(err, assets.ErrIncompleteTemplateSet):
		return wrapError(ErrIncompleteTemplateSet, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrStyleNotFound, err) // Invalid name means not found
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
