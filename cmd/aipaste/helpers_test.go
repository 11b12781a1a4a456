package main

// Notes:
// - This file contains test helpers and mocks used across CLI tests.
// - These are not functions under test themselves, but supporting infrastructure.

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"time"

	aipaste "github.com/dandandujie/ai-paste"
	"github.com/dandandujie/ai-paste/internal/config"
)

// ---------------------------------------------------------------------------
// Test Environment
// ---------------------------------------------------------------------------

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv returns an environment with captured output, the given stdin
// and the default configuration, so no config file on the host is read.
func newTestEnv(stdin string) *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &testEnv{
		Environment: &Environment{
			Now:    func() time.Time { return time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC) },
			Stdin:  strings.NewReader(stdin),
			Stdout: stdout,
			Stderr: stderr,
			Config: config.DefaultConfig(),
		},
		stdout: stdout,
		stderr: stderr,
	}
}

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// mockConverter records inputs and returns a fixed result.
type mockConverter struct {
	mu     sync.Mutex
	inputs []aipaste.Input
	result *aipaste.Result
	err    error
}

func (m *mockConverter) Convert(_ context.Context, input aipaste.Input) (*aipaste.Result, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &aipaste.Result{
		HTML:         "<html>" + input.Title + "</html>",
		PlainText:    input.Content,
		FormulaCount: strings.Count(input.Content, "$") / 2,
	}, nil
}

// mockPool hands out a single shared converter.
type mockPool struct {
	conv       CLIConverter
	size       int
	acquireErr error

	mu       sync.Mutex
	acquired int
	released int
}

func (p *mockPool) Acquire() (CLIConverter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.acquired++
	return p.conv, nil
}

func (p *mockPool) Release(CLIConverter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released++
}

func (p *mockPool) Size() int {
	return p.size
}

// wrongTypeConverter is a CLIConverter that is NOT *aipaste.Converter.
type wrongTypeConverter struct{}

func (w *wrongTypeConverter) Convert(_ context.Context, _ aipaste.Input) (*aipaste.Result, error) {
	return &aipaste.Result{}, nil
}
