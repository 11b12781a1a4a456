package main

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	aipaste "github.com/dandandujie/ai-paste"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("content"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDiscoverFiles_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "a.md", "b.MARKDOWN", "sub/c.htm", "sub/d.txt", "e.png")
	out := filepath.Join(dir, "out")

	files, err := discoverFiles(dir, out)
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].InputPath < files[j].InputPath })

	want := []FileToConvert{
		{InputPath: filepath.Join(dir, "a.md"), OutputPath: filepath.Join(out, "a.html"), SourceType: aipaste.SourceMarkdown},
		{InputPath: filepath.Join(dir, "b.MARKDOWN"), OutputPath: filepath.Join(out, "b.html"), SourceType: aipaste.SourceMarkdown},
		{InputPath: filepath.Join(dir, "sub", "c.htm"), OutputPath: filepath.Join(out, "sub", "c.html"), SourceType: aipaste.SourceHTML},
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("discoverFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverFiles_SkipsInPlaceHTML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "page.html", "chat.md")

	files, err := discoverFiles(dir, "")
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}
	if len(files) != 1 || files[0].InputPath != filepath.Join(dir, "chat.md") {
		t.Errorf("discoverFiles() = %+v, want only chat.md", files)
	}
}

func TestDiscoverFiles_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "answer.md", "notes.txt")

	files, err := discoverFiles(filepath.Join(dir, "answer.md"), "")
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}
	want := []FileToConvert{{
		InputPath:  filepath.Join(dir, "answer.md"),
		OutputPath: filepath.Join(dir, "answer.html"),
		SourceType: aipaste.SourceMarkdown,
	}}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("discoverFiles() mismatch (-want +got):\n%s", diff)
	}

	_, err = discoverFiles(filepath.Join(dir, "notes.txt"), "")
	if !errors.Is(err, ErrInvalidExtension) {
		t.Errorf("discoverFiles(notes.txt) error = %v, want ErrInvalidExtension", err)
	}
}

func TestDiscoverFiles_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "readme.txt")

	_, err := discoverFiles(dir, "")
	if !errors.Is(err, ErrNoInputFiles) {
		t.Errorf("discoverFiles(empty dir) error = %v, want ErrNoInputFiles", err)
	}

	_, err = discoverFiles(filepath.Join(dir, "missing.md"), "")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("discoverFiles(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		outputDir string
		baseDir   string
		want      string
	}{
		{
			name:  "next to input",
			input: filepath.Join("docs", "chat.md"),
			want:  filepath.Join("docs", "chat.html"),
		},
		{
			name:      "into output directory",
			input:     filepath.Join("docs", "chat.md"),
			outputDir: "out",
			want:      filepath.Join("out", "chat.html"),
		},
		{
			name:      "explicit output file",
			input:     "chat.md",
			outputDir: filepath.Join("out", "final.html"),
			want:      filepath.Join("out", "final.html"),
		},
		{
			name:      "keeps relative directories",
			input:     filepath.Join("docs", "2026", "chat.markdown"),
			outputDir: "out",
			baseDir:   "docs",
			want:      filepath.Join("out", "2026", "chat.html"),
		},
		{
			name:      "html source",
			input:     filepath.Join("docs", "copied.htm"),
			outputDir: "out",
			want:      filepath.Join("out", "copied.html"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveOutputPath(tt.input, tt.outputDir, tt.baseDir)
			if err != nil {
				t.Fatalf("resolveOutputPath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveOutputPath(%q, %q, %q) = %q, want %q", tt.input, tt.outputDir, tt.baseDir, got, tt.want)
			}
		})
	}
}

func TestSourceTypeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    aipaste.SourceType
		wantErr bool
	}{
		{"a.md", aipaste.SourceMarkdown, false},
		{"a.markdown", aipaste.SourceMarkdown, false},
		{"a.HTML", aipaste.SourceHTML, false},
		{"a.htm", aipaste.SourceHTML, false},
		{"a.txt", "", true},
		{"README", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, err := sourceTypeFor(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("sourceTypeFor(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("sourceTypeFor(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestPlainOutputPath(t *testing.T) {
	t.Parallel()

	got := plainOutputPath(filepath.Join("out", "chat.html"))
	want := filepath.Join("out", "chat.txt")
	if got != want {
		t.Errorf("plainOutputPath() = %q, want %q", got, want)
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"zero means auto", 0, false},
		{"one", 1, false},
		{"maximum", aipaste.MaxPoolSize, false},
		{"negative", -1, true},
		{"above maximum", aipaste.MaxPoolSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateWorkers(tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
				t.Errorf("validateWorkers(%d) error = %v, want ErrInvalidWorkerCount", tt.n, err)
			}
		})
	}
}
