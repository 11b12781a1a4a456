package main

import (
	"fmt"
	"io"
)

// printUsage prints the top-level usage.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: aipaste <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert AI chat output into HTML that pastes into Word with native equations.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert   Convert Markdown or HTML files")
	fmt.Fprintln(w, "  latex     Compile one LaTeX formula to OMML")
	fmt.Fprintln(w, "  mathml    Convert MathML markup to OMML")
	fmt.Fprintln(w, "  protect   Show the math spans found in a text")
	fmt.Fprintln(w, "  styles    List style presets")
	fmt.Fprintln(w, "  version   Show version information")
	fmt.Fprintln(w, "  help      Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'aipaste help <command>' for details on a command.")
}

// printConvertUsage prints the convert command usage.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: aipaste convert [flags] <file|dir|->")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Converts .md, .markdown, .html and .htm files to .html documents.")
	fmt.Fprintln(w, "A directory is converted recursively. '-' reads stdin and writes stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>        Output file or directory")
	fmt.Fprintln(w, "      --format <name>        word (default), fragment, or preview")
	fmt.Fprintln(w, "      --plain                Also write the .txt version (stdin: print it instead)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Math:")
	fmt.Fprintln(w, "      --math <strategy>      latex (default) or mathml")
	fmt.Fprintln(w, "      --source <type>        markdown (default) or html, for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name|path>    Style preset or YAML file")
	fmt.Fprintln(w, "      --css <file>           Extra CSS appended after the preset")
	fmt.Fprintln(w, "      --highlight-style <s>  Chroma style for code blocks")
	fmt.Fprintln(w, "      --inline-styles        Highlight with style attributes")
	fmt.Fprintln(w, "      --asset-path <dir>     Custom styles and templates")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -w, --workers <n>          Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -c, --config <name|path>   Config file")
	fmt.Fprintln(w, "  -q, --quiet                Only show errors")
	fmt.Fprintln(w, "  -v, --verbose              Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  AIPASTE_CONFIG, AIPASTE_STYLE, AIPASTE_MATH, AIPASTE_OUTPUT_DIR,")
	fmt.Fprintln(w, "  AIPASTE_INPUT_DIR, AIPASTE_WORKERS")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  aipaste convert answer.md")
	fmt.Fprintln(w, "  aipaste convert ./chats -o ./word --style academic")
	fmt.Fprintln(w, "  pbpaste | aipaste convert - --format fragment")
}

func printLatexUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: aipaste latex [--inline] [expression]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compiles a LaTeX formula to an OMML equation. Reads stdin when no")
	fmt.Fprintln(w, "expression is given. Display math is the default.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --inline   Compile as inline math")
}

func printMathMLUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: aipaste mathml [file]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Converts a MathML <math> element to OMML. Reads stdin when no file is given.")
}

func printProtectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: aipaste protect [file]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Prints the text with every math span replaced by its placeholder,")
	fmt.Fprintln(w, "followed by the span table. Reads stdin when no file is given.")
}

func printStylesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: aipaste styles [--highlight] [--show name|path] [--asset-path dir]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Lists the style presets, or the code highlight styles with --highlight.")
	fmt.Fprintln(w, "--show prints one preset as YAML, a starting point for a custom preset.")
}

// runHelp prints help for a command, or the general usage.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case cmdConvert:
		printConvertUsage(env.Stdout)
	case cmdLatex:
		printLatexUsage(env.Stdout)
	case cmdMathML:
		printMathMLUsage(env.Stdout)
	case cmdProtect:
		printProtectUsage(env.Stdout)
	case cmdStyles:
		printStylesUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: aipaste version")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: aipaste help [command]")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
