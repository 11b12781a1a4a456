package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	aipaste "github.com/dandandujie/ai-paste"
	"github.com/dandandujie/ai-paste/internal/hints"
	"github.com/dandandujie/ai-paste/internal/style"
	"github.com/dandandujie/ai-paste/internal/yamlutil"
)

// errTooManyArgs is returned when a command receives extra arguments.
var errTooManyArgs = errors.New("too many arguments")

// runLatex compiles one formula from the arguments or stdin.
func runLatex(args []string, env *Environment) error {
	flags, positional, err := parseLatexFlags(args)
	if err != nil {
		return err
	}

	source := strings.Join(positional, " ")
	if len(positional) == 0 {
		source, err = readStdin(env)
		if err != nil {
			return err
		}
	}
	source = strings.TrimSpace(source)
	if source == "" {
		return fmt.Errorf("%w%s", aipaste.ErrEmptyInput, hints.ForEmptyInput())
	}

	fmt.Fprintln(env.Stdout, aipaste.CompileLatex(source, !flags.inline))
	return nil
}

// runMathML converts a <math> element from a file or stdin.
func runMathML(args []string, env *Environment) error {
	markup, err := readFileOrStdin(cmdMathML, args, env)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Stdout, aipaste.CompileMathML(markup))
	return nil
}

// runProtect prints the carrier text and the span table of a file or stdin.
func runProtect(args []string, env *Environment) error {
	text, err := readFileOrStdin(cmdProtect, args, env)
	if err != nil {
		return err
	}

	carrier, spans := aipaste.ProtectMathSpans(text)
	fmt.Fprintln(env.Stdout, carrier)
	fmt.Fprintln(env.Stdout)
	fmt.Fprintf(env.Stdout, "%d span(s)\n", spans.Len())
	if spans.Len() == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLACEHOLDER\tKIND\tCONTENT")
	for _, sp := range spans.All() {
		fmt.Fprintf(tw, "%s\t%s\t%q\n", sp.Placeholder, sp.Kind, sp.Content)
	}
	return tw.Flush()
}

// runStyles lists style presets, or chroma styles with --highlight.
func runStyles(args []string, env *Environment) error {
	flags, err := parseStylesFlags(args)
	if err != nil {
		return err
	}

	if flags.show != "" {
		return showStyle(flags.show, flags.assetPath, env)
	}

	var names []string
	if flags.highlight {
		names = style.HighlightStyles()
	} else {
		names, err = availableStyles(flags.assetPath, env)
		if err != nil {
			return err
		}
	}

	for _, name := range names {
		fmt.Fprintln(env.Stdout, name)
	}
	return nil
}

// showStyle prints a preset, after validation, as YAML.
func showStyle(nameOrPath, assetPath string, env *Environment) error {
	loader := env.AssetLoader
	if loader == nil || assetPath != "" {
		l, err := aipaste.NewAssetLoader(assetPath)
		if err != nil {
			return err
		}
		loader = l
	}

	preset, err := style.Load(loader, nameOrPath)
	if err != nil {
		return withStyleHint(err, assetPath, env)
	}

	data, err := yamlutil.Marshal(preset)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(data)
	return err
}

// readFileOrStdin reads the single file argument, or stdin when absent.
func readFileOrStdin(cmd string, args []string, env *Environment) (string, error) {
	positional, err := parseNoFlags(cmd, args)
	if err != nil {
		return "", err
	}

	var content string
	switch len(positional) {
	case 0:
		content, err = readStdin(env)
	case 1:
		var data []byte
		data, err = os.ReadFile(positional[0]) // #nosec G304 -- user-provided path
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		content = string(data)
	default:
		return "", fmt.Errorf("%w: %w: %s", ErrInvalidFlag, errTooManyArgs, strings.Join(positional[1:], " "))
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w%s", aipaste.ErrEmptyInput, hints.ForEmptyInput())
	}
	return content, nil
}

// readStdin reads all of env.Stdin.
func readStdin(env *Environment) (string, error) {
	if env.Stdin == nil {
		return "", nil
	}
	data, err := io.ReadAll(env.Stdin)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return string(data), nil
}
