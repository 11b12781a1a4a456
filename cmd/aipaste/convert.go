package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	aipaste "github.com/dandandujie/ai-paste"
	"github.com/dandandujie/ai-paste/internal/config"
	"github.com/dandandujie/ai-paste/internal/fileutil"
	"github.com/dandandujie/ai-paste/internal/hints"
)

// stdinArg selects stdin as the conversion input.
const stdinArg = "-"

// runConvertCmd parses convert flags and runs the conversion.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		return err
	}
	warnUnknownEnvVars(env.Stderr)
	return runConvert(ctx, positional, flags, loadEnvConfig(), env)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, ec envConfig, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := resolveConfig(flags.common.config, ec, env)
	if err != nil {
		return err
	}

	// Precedence: flags > environment > config file > defaults
	applyEnvConfig(ec, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	extraCSS, err := readCSSFile(cfg.Style.CSS)
	if err != nil {
		return err
	}

	opts, err := converterOptions(cfg, extraCSS, env)
	if err != nil {
		return err
	}

	// Surface option errors once, before any file is touched
	conv, err := aipaste.NewConverter(opts...)
	if err != nil {
		return withStyleHint(err, cfg.Assets.BasePath, env)
	}

	if inputPath == stdinArg {
		return convertStdin(ctx, conv, flags, cfg, env)
	}

	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	workers := flags.workers
	if workers == 0 {
		workers = ec.workers
	}
	poolSize := min(aipaste.ResolvePoolSize(workers), aipaste.MaxPoolSize)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}

	pool := newPoolAdapter(poolSize, opts...)
	defer func() { _ = pool.Close() }()

	results := convertBatch(ctx, pool, files, &conversionParams{plain: flags.plain})

	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", ErrConversionFailed, failedCount, len(results))
	}
	return nil
}

// convertStdin converts stdin and writes the HTML to --output or stdout.
func convertStdin(ctx context.Context, conv CLIConverter, flags *convertFlags, cfg *config.Config, env *Environment) error {
	start := env.Now()

	content, err := readStdin(env)
	if err != nil {
		return err
	}

	sourceType, err := aipaste.ParseSourceType(flags.source)
	if err != nil {
		return err
	}

	res, err := conv.Convert(ctx, aipaste.Input{
		Content:    content,
		SourceType: sourceType,
		Title:      extractFirstHeading(content),
	})
	if err != nil {
		if errors.Is(err, aipaste.ErrEmptyInput) {
			return fmt.Errorf("%w%s", err, hints.ForEmptyInput())
		}
		return err
	}

	output := flags.output
	if output == "" {
		if flags.plain {
			fmt.Fprintln(env.Stdout, res.PlainText)
			return nil
		}
		fmt.Fprint(env.Stdout, res.HTML)
		return nil
	}

	if err := fileutil.WriteFileAtomic(output, []byte(res.HTML), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if flags.plain {
		if err := fileutil.WriteFileAtomic(plainOutputPath(output), []byte(res.PlainText), filePermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stdout, "stdin -> %s (%d formulas, %v)\n", output, res.FormulaCount, env.Now().Sub(start).Round(time.Millisecond))
	} else if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", output)
	}
	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.format != "" {
		cfg.Output.Format = flags.format
	}
	if flags.math != "" {
		cfg.Math.Strategy = flags.math
	}
	if flags.style.preset != "" {
		cfg.Style.Preset = flags.style.preset
	}
	if flags.style.css != "" {
		cfg.Style.CSS = flags.style.css
	}
	if flags.style.highlightStyle != "" {
		cfg.Code.HighlightStyle = flags.style.highlightStyle
	}
	if flags.style.inlineStyles {
		cfg.Code.InlineStyles = true
	}
	if flags.style.assetPath != "" {
		cfg.Assets.BasePath = flags.style.assetPath
	}
}

// converterOptions translates the resolved config into converter options.
func converterOptions(cfg *config.Config, extraCSS string, env *Environment) ([]aipaste.Option, error) {
	format, err := aipaste.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	strategy, err := aipaste.ParseMathStrategy(cfg.Math.Strategy)
	if err != nil {
		return nil, fmt.Errorf("%w%s", err, hints.ForMathStrategy([]string{config.StrategyLatex, config.StrategyMathML}))
	}

	opts := []aipaste.Option{
		aipaste.WithFormat(format),
		aipaste.WithMathStrategy(strategy),
		aipaste.WithInlineStyles(cfg.Code.InlineStyles),
		aipaste.WithGenerator("aipaste " + Version),
	}
	if cfg.Style.Preset != "" {
		opts = append(opts, aipaste.WithStyle(cfg.Style.Preset))
	}
	if cfg.Code.HighlightStyle != "" {
		opts = append(opts, aipaste.WithHighlightStyle(cfg.Code.HighlightStyle))
	}
	if extraCSS != "" {
		opts = append(opts, aipaste.WithCSS(extraCSS))
	}

	switch {
	case cfg.Assets.BasePath != "":
		opts = append(opts, aipaste.WithAssetPath(cfg.Assets.BasePath))
	case env.AssetLoader != nil:
		opts = append(opts, aipaste.WithAssetLoader(env.AssetLoader))
	}
	return opts, nil
}

// withStyleHint appends the available presets to a style-not-found error.
func withStyleHint(err error, assetPath string, env *Environment) error {
	if !errors.Is(err, aipaste.ErrStyleNotFound) {
		return err
	}
	names, listErr := availableStyles(assetPath, env)
	if listErr != nil {
		return err
	}
	return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(names))
}

// styleLister is implemented by asset loaders that can enumerate presets.
type styleLister interface {
	ListStyles() ([]string, error)
}

// availableStyles lists the presets visible to a run: those under
// assetPath, else those of the injected loader, else the embedded ones.
func availableStyles(assetPath string, env *Environment) ([]string, error) {
	loader := env.AssetLoader
	if assetPath != "" {
		l, err := aipaste.NewAssetLoader(assetPath)
		if err != nil {
			return nil, err
		}
		loader = l
	}
	if lister, ok := loader.(styleLister); ok {
		return lister.ListStyles()
	}
	return aipaste.Styles()
}

// configError adds the config search paths to a not-found error.
func configError(name string, err error) error {
	if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
		return fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
	}
	return fmt.Errorf("loading config: %w", err)
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", fmt.Errorf("%w%s", ErrNoInput, hints.ForEmptyInput())
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// readCSSFile reads the extra CSS file, if any.
func readCSSFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(content), nil
}
