package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	aipaste "github.com/dandandujie/ai-paste"
	"github.com/dandandujie/ai-paste/internal/fileutil"
	"github.com/dandandujie/ai-paste/internal/hints"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md, .markdown, .html or .htm extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrNoInputFiles       = errors.New("no convertible files found")
)

// Output extensions, without the dot.
const (
	outputExt = "html"
	plainExt  = "txt"
)

// sourceExtensions maps convertible file extensions to their source type.
var sourceExtensions = map[string]aipaste.SourceType{
	".md":       aipaste.SourceMarkdown,
	".markdown": aipaste.SourceMarkdown,
	".html":     aipaste.SourceHTML,
	".htm":      aipaste.SourceHTML,
}

// extensionList lists sourceExtensions in a stable order for messages.
var extensionList = []string{".md", ".markdown", ".html", ".htm"}

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
	SourceType aipaste.SourceType
}

// discoverFiles finds all convertible files under inputPath.
// A directory is walked recursively; files whose output would overwrite
// their own input (an .html source converted in place) are skipped.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		st, err := sourceTypeFor(inputPath)
		if err != nil {
			return nil, err
		}
		outPath, err := resolveOutputPath(inputPath, outputDir, "")
		if err != nil {
			return nil, err
		}
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath, SourceType: st}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		st, err := sourceTypeFor(path)
		if err != nil {
			return nil
		}
		outPath, err := resolveOutputPath(path, outputDir, inputPath)
		if err != nil {
			return err
		}
		if filepath.Clean(outPath) == filepath.Clean(path) {
			return nil
		}
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath, SourceType: st})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s%s", ErrNoInputFiles, inputPath, hints.ForNoInputFiles(extensionList))
	}
	return files, nil
}

// resolveOutputPath determines the HTML output path for a source file.
// An outputDir ending in .html names the output file itself.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) (string, error) {
	base, err := fileutil.ReplaceExt(filepath.Base(inputPath), outputExt)
	if err != nil {
		return "", err
	}

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base), nil
	}

	if strings.HasSuffix(strings.ToLower(outputDir), "."+outputExt) {
		return outputDir, nil
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base), nil
		}
	}

	return filepath.Join(outputDir, base), nil
}

// sourceTypeFor returns the source type implied by the file extension.
func sourceTypeFor(path string) (aipaste.SourceType, error) {
	ext := strings.ToLower(filepath.Ext(path))
	st, ok := sourceExtensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return st, nil
}

// plainOutputPath returns the plain-text path next to an HTML output.
func plainOutputPath(htmlPath string) string {
	p, err := fileutil.ReplaceExt(htmlPath, plainExt)
	if err != nil {
		return htmlPath + "." + plainExt
	}
	return p
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > aipaste.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, aipaste.MaxPoolSize)
	}
	return nil
}
