package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrInvalidFlag wraps flag parsing failures.
var ErrInvalidFlag = errors.New("invalid flag")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// styleFlags holds styling flags.
type styleFlags struct {
	preset         string // Preset name or YAML path
	css            string // Extra CSS file
	highlightStyle string
	inlineStyles   bool
	assetPath      string // Override asset directory
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	output  string
	format  string
	math    string
	source  string // source type for stdin input
	plain   bool
	workers int
	style   styleFlags
}

// latexFlags holds flags for the latex command.
type latexFlags struct {
	inline bool
}

// stylesFlags holds flags for the styles command.
type stylesFlags struct {
	highlight bool
	show      string // preset to print as YAML
	assetPath string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addStyleFlags adds styling flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.preset, "style", "", "style preset name or YAML file path")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended after the preset")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for code blocks")
	fs.BoolVar(&f.inlineStyles, "inline-styles", false, "highlight code with style attributes")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := newFlagSet("convert")
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVar(&f.format, "format", "", "output format: word, fragment, preview")
	fs.StringVar(&f.math, "math", "", "math strategy: latex, mathml")
	fs.StringVar(&f.source, "source", "", "source type of stdin input: markdown, html")
	fs.BoolVar(&f.plain, "plain", false, "also write the plain-text version (stdout: print it instead)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)

	if err := fs.Parse(args); err != nil {
		return nil, nil, flagError(err)
	}

	return f, fs.Args(), nil
}

// parseLatexFlags parses latex command flags and returns positional args.
func parseLatexFlags(args []string) (*latexFlags, []string, error) {
	fs := newFlagSet("latex")
	f := &latexFlags{}
	fs.BoolVar(&f.inline, "inline", false, "compile as inline math")

	if err := fs.Parse(args); err != nil {
		return nil, nil, flagError(err)
	}
	return f, fs.Args(), nil
}

// parseStylesFlags parses styles command flags.
func parseStylesFlags(args []string) (*stylesFlags, error) {
	fs := newFlagSet("styles")
	f := &stylesFlags{}
	fs.BoolVar(&f.highlight, "highlight", false, "list code highlight styles instead")
	fs.StringVar(&f.show, "show", "", "print the resolved preset with this name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")

	if err := fs.Parse(args); err != nil {
		return nil, flagError(err)
	}
	return f, nil
}

// parseNoFlags parses a command without flags of its own, rejecting any.
func parseNoFlags(name string, args []string) ([]string, error) {
	fs := newFlagSet(name)

	if err := fs.Parse(args); err != nil {
		return nil, flagError(err)
	}
	return fs.Args(), nil
}

// flagError keeps flag.ErrHelp recognizable and marks every other
// parsing failure as a usage error.
func flagError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidFlag, err)
}

// newFlagSet returns a silent FlagSet: errors and help are reported by runMain.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}
