package main

// Notes:
// - poolAdapter: we test Acquire/Release/Size and panic on wrong type.
// - isCommand: we test command name matching.
// - runMain: we test exit codes and output for every command. File
//   conversions use the real converter on temporary directories.

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	aipaste "github.com/dandandujie/ai-paste"
)

// ---------------------------------------------------------------------------
// TestPoolAdapter - Pool adapter behavior
// ---------------------------------------------------------------------------

func TestPoolAdapter_Release_WrongType(t *testing.T) {
	t.Parallel()

	adapter := newPoolAdapter(1)
	defer adapter.Close()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for wrong type, got none")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("expected string panic, got %T", r)
		}
		if !strings.Contains(msg, "unexpected type") {
			t.Errorf("panic message should contain 'unexpected type', got %q", msg)
		}
	}()

	adapter.Release(&wrongTypeConverter{})
}

func TestPoolAdapter_AcquireRelease(t *testing.T) {
	t.Parallel()

	adapter := newPoolAdapter(2, aipaste.WithFormat(aipaste.FormatFragment))
	defer adapter.Close()

	if adapter.Size() != 2 {
		t.Errorf("Size() = %d, want 2", adapter.Size())
	}

	conv, err := adapter.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if _, ok := conv.(*aipaste.Converter); !ok {
		t.Errorf("Acquire() returned %T, want *aipaste.Converter", conv)
	}
	adapter.Release(conv)

	again, err := adapter.Acquire()
	if err != nil {
		t.Fatalf("second Acquire() error = %v", err)
	}
	if again != conv {
		t.Error("expected released converter to be reused")
	}
	adapter.Release(again)
}

func TestPoolAdapter_AcquireInvalidOptions(t *testing.T) {
	t.Parallel()

	adapter := newPoolAdapter(1, aipaste.WithFormat("pdf"))
	defer adapter.Close()

	if _, err := adapter.Acquire(); err == nil {
		t.Error("Acquire() with invalid format should fail")
	}
}

// ---------------------------------------------------------------------------
// TestIsCommand - Command name matching
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg  string
		want bool
	}{
		{"convert", true},
		{"latex", true},
		{"mathml", true},
		{"protect", true},
		{"styles", true},
		{"version", true},
		{"help", true},
		{"doc.md", false},
		{"-v", false},
		{"Convert", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			t.Parallel()

			if got := isCommand(tt.arg); got != tt.want {
				t.Errorf("isCommand(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Exit codes and output
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		stdin        string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no arguments prints usage",
			args:         []string{"aipaste"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: aipaste"},
		},
		{
			name:         "unknown command",
			args:         []string{"aipaste", "frobnicate"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: frobnicate"},
		},
		{
			name:         "version",
			args:         []string{"aipaste", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"aipaste dev"},
		},
		{
			name:         "version flag",
			args:         []string{"aipaste", "--version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"aipaste dev"},
		},
		{
			name:         "help",
			args:         []string{"aipaste", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Commands:", "convert", "latex"},
		},
		{
			name:         "help flag",
			args:         []string{"aipaste", "--help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Commands:"},
		},
		{
			name:         "help for convert",
			args:         []string{"aipaste", "help", "convert"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: aipaste convert", "--format"},
		},
		{
			name:         "help for unknown command",
			args:         []string{"aipaste", "help", "frobnicate"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: frobnicate"},
		},
		{
			name:         "convert help flag",
			args:         []string{"aipaste", "convert", "--help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: aipaste convert"},
		},
		{
			name:         "convert unknown flag",
			args:         []string{"aipaste", "convert", "--bogus"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"invalid flag"},
		},
		{
			name:         "convert without input",
			args:         []string{"aipaste", "convert"},
			wantCode:     ExitIO,
			wantInStderr: []string{"no input specified", "hint:"},
		},
		{
			name:         "convert missing file",
			args:         []string{"aipaste", "convert", "does-not-exist.md"},
			wantCode:     ExitIO,
			wantInStderr: []string{"does-not-exist.md"},
		},
		{
			name:         "convert too many workers",
			args:         []string{"aipaste", "convert", "-w", "99", "doc.md"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"invalid worker count"},
		},
		{
			name:         "convert invalid format",
			args:         []string{"aipaste", "convert", "--format", "pdf", "-"},
			stdin:        "x",
			wantCode:     ExitUsage,
			wantInStderr: []string{"invalid config value"},
		},
		{
			name:         "convert unknown style lists presets",
			args:         []string{"aipaste", "convert", "--style", "nope", "-"},
			stdin:        "x",
			wantCode:     ExitUsage,
			wantInStderr: []string{"style not found", "available:", "academic"},
		},
		{
			name:         "convert stdin fragment",
			args:         []string{"aipaste", "convert", "--format", "fragment", "-"},
			stdin:        "Energy $E=mc^2$",
			wantCode:     ExitSuccess,
			wantInStdout: []string{"<m:oMath", "Energy"},
		},
		{
			name:         "convert stdin word document",
			args:         []string{"aipaste", "convert", "-"},
			stdin:        "# Notes\n\n$$a^2+b^2=c^2$$",
			wantCode:     ExitSuccess,
			wantInStdout: []string{"<html", "<title>Notes</title>", "<m:oMathPara"},
		},
		{
			name:         "convert stdin plain text",
			args:         []string{"aipaste", "convert", "--plain", "-"},
			stdin:        "**Bold** and $x$",
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Bold and $x$"},
		},
		{
			name:         "convert stdin html source",
			args:         []string{"aipaste", "convert", "--source", "html", "--format", "fragment", "-"},
			stdin:        `<p>See <math><mi>y</mi></math></p>`,
			wantCode:     ExitSuccess,
			wantInStdout: []string{"<m:t>y</m:t>"},
		},
		{
			name:         "convert empty stdin",
			args:         []string{"aipaste", "convert", "-"},
			stdin:        "  \n",
			wantCode:     ExitUsage,
			wantInStderr: []string{"input content cannot be empty"},
		},
		{
			name:         "latex argument",
			args:         []string{"aipaste", "latex", `\frac{a}{b}`},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"<m:oMathPara", "<m:f>"},
		},
		{
			name:         "latex inline from stdin",
			args:         []string{"aipaste", "latex", "--inline"},
			stdin:        "x^2\n",
			wantCode:     ExitSuccess,
			wantInStdout: []string{"<m:oMath ", "<m:sSup>"},
		},
		{
			name:         "latex empty stdin",
			args:         []string{"aipaste", "latex"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"input content cannot be empty"},
		},
		{
			name:         "mathml from stdin",
			args:         []string{"aipaste", "mathml"},
			stdin:        "<math><mi>x</mi></math>",
			wantCode:     ExitSuccess,
			wantInStdout: []string{"<m:t>x</m:t>"},
		},
		{
			name:         "mathml missing file",
			args:         []string{"aipaste", "mathml", "missing.xml"},
			wantCode:     ExitIO,
			wantInStderr: []string{"failed to read input"},
		},
		{
			name:         "mathml extra arguments",
			args:         []string{"aipaste", "mathml", "a.xml", "b.xml"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"too many arguments"},
		},
		{
			name:         "protect from stdin",
			args:         []string{"aipaste", "protect"},
			stdin:        "Let $a$ be given.",
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Let AIPASTEMATH0PLACEHOLDER be given.", "1 span(s)", "latex-inline", `"a"`},
		},
		{
			name:         "protect without math",
			args:         []string{"aipaste", "protect"},
			stdin:        "plain words",
			wantCode:     ExitSuccess,
			wantInStdout: []string{"plain words", "0 span(s)"},
		},
		{
			name:         "styles",
			args:         []string{"aipaste", "styles"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"academic", "compact", "default"},
		},
		{
			name:         "show style",
			args:         []string{"aipaste", "styles", "--show", "academic"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"id: academic"},
		},
		{
			name:         "show unknown style",
			args:         []string{"aipaste", "styles", "--show", "nope"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"style not found", "available:"},
		},
		{
			name:         "highlight styles",
			args:         []string{"aipaste", "styles", "--highlight"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"github", "monokai"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(tt.stdin)
			code := runMain(tt.args, env.Environment)

			if code != tt.wantCode {
				t.Errorf("runMain(%q) = %d, want %d\nstdout: %s\nstderr: %s",
					tt.args, code, tt.wantCode, env.stdout, env.stderr)
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(env.stdout.String(), want) {
					t.Errorf("stdout should contain %q, got:\n%s", want, env.stdout)
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(env.stderr.String(), want) {
					t.Errorf("stderr should contain %q, got:\n%s", want, env.stderr)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_ConvertDirectory - Batch conversion end to end
// ---------------------------------------------------------------------------

func TestRunMain_ConvertDirectory(t *testing.T) {
	t.Parallel()

	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")

	files := map[string]string{
		"answer.md":        "# Answer\n\nThe root is $\\sqrt{2}$.",
		"nested/chat.html": `<p>Copied <math><mi>z</mi></math></p>`,
		"notes.txt":        "ignored",
	}
	for name, content := range files {
		path := filepath.Join(inDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	env := newTestEnv("")
	code := runMain([]string{"aipaste", "convert", "-o", outDir, "--plain", "-w", "2", inDir}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, want %d\nstderr: %s", code, ExitSuccess, env.stderr)
	}

	answer, err := os.ReadFile(filepath.Join(outDir, "answer.html"))
	if err != nil {
		t.Fatalf("reading answer.html: %v", err)
	}
	if !strings.Contains(string(answer), "<m:rad>") {
		t.Errorf("answer.html should contain a radical, got:\n%s", answer)
	}

	plain, err := os.ReadFile(filepath.Join(outDir, "answer.txt"))
	if err != nil {
		t.Fatalf("reading answer.txt: %v", err)
	}
	if !strings.Contains(string(plain), `$\sqrt{2}$`) {
		t.Errorf("answer.txt = %q, want LaTeX kept", plain)
	}

	chat, err := os.ReadFile(filepath.Join(outDir, "nested", "chat.html"))
	if err != nil {
		t.Fatalf("reading nested/chat.html: %v", err)
	}
	if !strings.Contains(string(chat), "<m:t>z</m:t>") {
		t.Errorf("chat.html should contain OMML, got:\n%s", chat)
	}

	if _, err := os.Stat(filepath.Join(outDir, "notes.html")); !os.IsNotExist(err) {
		t.Error("notes.txt should not be converted")
	}

	for _, want := range []string{"Created", "2 succeeded, 0 failed"} {
		if !strings.Contains(env.stdout.String(), want) {
			t.Errorf("stdout should contain %q, got:\n%s", want, env.stdout)
		}
	}
}

func TestRunMain_ConvertQuiet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "a.md")
	if err := os.WriteFile(input, []byte("$x$"), 0o600); err != nil {
		t.Fatal(err)
	}

	env := newTestEnv("")
	code := runMain([]string{"aipaste", "convert", "-q", input}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, want %d\nstderr: %s", code, ExitSuccess, env.stderr)
	}
	if env.stdout.Len() != 0 {
		t.Errorf("quiet run should print nothing, got %q", env.stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.html")); err != nil {
		t.Errorf("a.html not written: %v", err)
	}
}

func TestRunMain_ConvertWithConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "a.md")
	if err := os.WriteFile(input, []byte("Text $y$"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "work.yaml")
	cfgYAML := "output:\n  format: fragment\nmath:\n  strategy: mathml\n"
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	env := newTestEnv("")
	env.Config = nil
	code := runMain([]string{"aipaste", "convert", "-c", cfgPath, "-q", input}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, want %d\nstderr: %s", code, ExitSuccess, env.stderr)
	}

	got, err := os.ReadFile(filepath.Join(dir, "a.html"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(got), "<html") {
		t.Errorf("fragment format should not produce a document, got:\n%s", got)
	}
	if !strings.Contains(string(got), "<m:t>y</m:t>") {
		t.Errorf("expected OMML for y, got:\n%s", got)
	}
}

func TestRunMain_ConfigNotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv("")
	env.Config = nil
	code := runMain([]string{"aipaste", "convert", "-c", "no-such-config-name", "doc.md"}, env.Environment)

	if code != ExitUsage {
		t.Errorf("runMain() = %d, want %d", code, ExitUsage)
	}
	for _, want := range []string{"config file not found", "hint:"} {
		if !strings.Contains(env.stderr.String(), want) {
			t.Errorf("stderr should contain %q, got:\n%s", want, env.stderr)
		}
	}
}

func TestRunMain_ConvertFailureExitCode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "empty.md"), []byte("   "), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ok.md"), []byte("fine"), 0o600); err != nil {
		t.Fatal(err)
	}

	env := newTestEnv("")
	code := runMain([]string{"aipaste", "convert", dir}, env.Environment)

	if code != ExitGeneral {
		t.Errorf("runMain() = %d, want %d", code, ExitGeneral)
	}
	for _, want := range []string{"FAILED", "empty.md", "1 of 2"} {
		if !strings.Contains(env.stderr.String(), want) {
			t.Errorf("stderr should contain %q, got:\n%s", want, env.stderr)
		}
	}
}
