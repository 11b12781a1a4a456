package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUnknownCommand is returned for a command aipaste does not know.
var ErrUnknownCommand = errors.New("unknown command")

// Command names.
const (
	cmdConvert = "convert"
	cmdLatex   = "latex"
	cmdMathML  = "mathml"
	cmdProtect = "protect"
	cmdStyles  = "styles"
	cmdVersion = "version"
	cmdHelp    = "help"
)

func main() {
	// Configure GOMAXPROCS with conditional logging.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if slices.Contains(os.Args, "-v") || slices.Contains(os.Args, "--verbose") {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// isCommand reports whether arg names a command.
func isCommand(arg string) bool {
	switch arg {
	case cmdConvert, cmdLatex, cmdMathML, cmdProtect, cmdStyles, cmdVersion, cmdHelp:
		return true
	}
	return false
}

// runMain dispatches a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "-h", "--help":
		printUsage(env.Stdout)
		return ExitSuccess
	case "--version":
		cmd = cmdVersion
	}

	if !isCommand(cmd) {
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	var err error
	switch cmd {
	case cmdHelp:
		return runHelp(rest, env)
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "aipaste %s\n", Version)
		return ExitSuccess
	case cmdConvert:
		err = runConvertCmd(ctx, rest, env)
	case cmdLatex:
		err = runLatex(rest, env)
	case cmdMathML:
		err = runMathML(rest, env)
	case cmdProtect:
		err = runProtect(rest, env)
	case cmdStyles:
		err = runStyles(rest, env)
	}

	if errors.Is(err, flag.ErrHelp) {
		return runHelp([]string{cmd}, env)
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}
