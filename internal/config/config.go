// Package config loads the YAML configuration of the aipaste command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dandandujie/ai-paste/internal/fileutil"
	"github.com/dandandujie/ai-paste/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength      = 4096 // PATH_MAX on Linux
	MaxPresetLength    = 4096 // preset name or preset file path
	MaxStyleNameLength = 64   // chroma style names are short identifiers
)

// Output formats.
const (
	FormatWord     = "word"
	FormatFragment = "fragment"
	FormatPreview  = "preview"
)

// Math strategies.
const (
	StrategyLatex  = "latex"
	StrategyMathML = "mathml"
)

// appDir is the directory name under the user config directory.
const appDir = "ai-paste"

// Config holds all configuration for a conversion run.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Style  StyleConfig  `yaml:"style"`
	Math   MathConfig   `yaml:"math"`
	Code   CodeConfig   `yaml:"code"`
	Assets AssetsConfig `yaml:"assets"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Format     string `yaml:"format"`     // "word", "fragment", "preview"
}

// StyleConfig selects the style preset and extra CSS.
type StyleConfig struct {
	Preset string `yaml:"preset"` // Preset name or YAML file path
	CSS    string `yaml:"css"`    // Extra CSS file appended after the preset CSS
}

// MathConfig selects how LaTeX reaches Word.
type MathConfig struct {
	Strategy string `yaml:"strategy"` // "latex" (direct) or "mathml" (through MathML)
}

// CodeConfig defines code block highlighting.
type CodeConfig struct {
	HighlightStyle string `yaml:"highlightStyle"` // chroma style name
	InlineStyles   bool   `yaml:"inlineStyles"`   // style attributes instead of classes
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// Validate checks enumerations and field lengths.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"style.preset", c.Style.Preset, MaxPresetLength},
		{"style.css", c.Style.CSS, MaxPathLength},
		{"code.highlightStyle", c.Code.HighlightStyle, MaxStyleNameLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if c.Output.Format != "" {
		switch strings.ToLower(c.Output.Format) {
		case FormatWord, FormatFragment, FormatPreview:
		default:
			return fmt.Errorf("%w: output.format %q (must be word, fragment, or preview)", ErrInvalidValue, c.Output.Format)
		}
	}

	if c.Math.Strategy != "" {
		switch strings.ToLower(c.Math.Strategy) {
		case StrategyLatex, StrategyMathML:
		default:
			return fmt.Errorf("%w: math.strategy %q (must be latex or mathml)", ErrInvalidValue, c.Math.Strategy)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Format: FormatWord},
		Style:  StyleConfig{Preset: "default"},
		Math:   MathConfig{Strategy: StrategyLatex},
		Code:   CodeConfig{HighlightStyle: "github"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// the current directory, then the user config directory, each with .yaml
// then .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDir, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing entry of SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
