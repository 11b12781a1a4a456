// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/ai-paste/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "ai-paste") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style preset not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + "; or pass a preset file path")
}

// ForMathStrategy returns hints for an unknown math strategy.
func ForMathStrategy(valid []string) string {
	return format("valid strategies: " + strings.Join(valid, ", "))
}

// ForEmptyInput returns hints when a conversion receives nothing to convert.
func ForEmptyInput() string {
	return formatHints([]string{"pass a file or directory", "or pipe content on stdin"})
}

// ForNoInputFiles returns hints when a directory holds no convertible files.
func ForNoInputFiles(extensions []string) string {
	return format("looked for " + strings.Join(extensions, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, " "))
}
