package aipaste

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyInput          = errors.New("input content cannot be empty")
	ErrInvalidSourceType   = errors.New("invalid source type")
	ErrInvalidFormat       = errors.New("invalid output format")
	ErrInvalidMathStrategy = errors.New("invalid math strategy")
	ErrHTMLConversion      = errors.New("HTML conversion failed")
	ErrTemplateRender      = errors.New("document template rendering failed")

	// Style errors.
	ErrInvalidStyle          = errors.New("invalid style preset")
	ErrInvalidHighlightStyle = errors.New("invalid highlight style")

	// Asset loading errors.
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)
