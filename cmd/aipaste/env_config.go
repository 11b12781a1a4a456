package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dandandujie/ai-paste/internal/config"
)

// Environment variable names.
const (
	envConfigName = "AIPASTE_CONFIG"
	envStyle      = "AIPASTE_STYLE"
	envMath       = "AIPASTE_MATH"
	envOutputDir  = "AIPASTE_OUTPUT_DIR"
	envInputDir   = "AIPASTE_INPUT_DIR"
	envWorkers    = "AIPASTE_WORKERS"
)

// envPrefix marks variables that belong to aipaste.
const envPrefix = "AIPASTE_"

// knownEnvVars lists every recognized AIPASTE_* variable.
var knownEnvVars = map[string]bool{
	envConfigName: true,
	envStyle:      true,
	envMath:       true,
	envOutputDir:  true,
	envInputDir:   true,
	envWorkers:    true,
}

// envConfig holds values read from AIPASTE_* environment variables.
// Empty strings and zero mean "not set".
type envConfig struct {
	config    string
	style     string
	math      string
	outputDir string
	inputDir  string
	workers   int
}

// loadEnvConfig reads AIPASTE_* variables. An unparsable or non-positive
// AIPASTE_WORKERS is ignored.
func loadEnvConfig() envConfig {
	ec := envConfig{
		config:    os.Getenv(envConfigName),
		style:     os.Getenv(envStyle),
		math:      os.Getenv(envMath),
		outputDir: os.Getenv(envOutputDir),
		inputDir:  os.Getenv(envInputDir),
	}
	if w, err := strconv.Atoi(os.Getenv(envWorkers)); err == nil && w > 0 {
		ec.workers = w
	}
	return ec
}

// warnUnknownEnvVars prints a warning for each AIPASTE_* variable that is
// not recognized, in sorted order.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overlays set environment values on cfg. Environment
// values win over the config file; flags are applied afterwards.
func applyEnvConfig(ec envConfig, cfg *config.Config) {
	if ec.style != "" {
		cfg.Style.Preset = ec.style
	}
	if ec.math != "" {
		cfg.Math.Strategy = ec.math
	}
	if ec.outputDir != "" {
		cfg.Output.DefaultDir = ec.outputDir
	}
	if ec.inputDir != "" {
		cfg.Input.DefaultDir = ec.inputDir
	}
}

// defaultConfigName is looked up silently when neither --config nor
// AIPASTE_CONFIG names a file.
const defaultConfigName = "ai-paste"

// resolveConfig picks the configuration for a run:
// env.Config when injected, then --config, then AIPASTE_CONFIG, then a
// config named ai-paste in the search paths, then the defaults.
// An explicitly named config that cannot be found is an error.
func resolveConfig(flagName string, ec envConfig, env *Environment) (*config.Config, error) {
	if env.Config != nil {
		cfg := *env.Config
		return &cfg, nil
	}

	name := flagName
	if name == "" {
		name = ec.config
	}
	if name != "" {
		cfg, err := config.LoadConfig(name)
		if err != nil {
			return nil, configError(name, err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(defaultConfigName)
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.DefaultConfig(), nil
	}
	if err != nil {
		return nil, configError(defaultConfigName, err)
	}
	return cfg, nil
}
