package main

import (
	"errors"
	"os"

	aipaste "github.com/dandandujie/ai-paste"
	"github.com/dandandujie/ai-paste/internal/config"
	"github.com/dandandujie/ai-paste/internal/style"
)

// Exit codes for the aipaste CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error, failed conversions
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoInputFiles) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, aipaste.ErrEmptyInput) ||
		errors.Is(err, aipaste.ErrInvalidSourceType) ||
		errors.Is(err, aipaste.ErrInvalidFormat) ||
		errors.Is(err, aipaste.ErrInvalidMathStrategy) ||
		errors.Is(err, aipaste.ErrInvalidStyle) ||
		errors.Is(err, aipaste.ErrInvalidHighlightStyle) ||
		errors.Is(err, aipaste.ErrStyleNotFound) ||
		errors.Is(err, aipaste.ErrTemplateSetNotFound) ||
		errors.Is(err, aipaste.ErrIncompleteTemplateSet) ||
		errors.Is(err, aipaste.ErrInvalidAssetPath) ||
		errors.Is(err, style.ErrInvalidPreset) ||
		errors.Is(err, style.ErrUnsafeCSSValue) {
		return ExitUsage
	}

	return ExitGeneral
}
