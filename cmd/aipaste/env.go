package main

import (
	"io"
	"os"
	"time"

	aipaste "github.com/dandandujie/ai-paste"
	"github.com/dandandujie/ai-paste/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, and asset loading.
type Environment struct {
	Now         func() time.Time
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	AssetLoader aipaste.AssetLoader // nil = embedded assets
	Config      *config.Config      // nil = resolved from flags, env and files
}

// DefaultEnv returns production environment with embedded assets.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
