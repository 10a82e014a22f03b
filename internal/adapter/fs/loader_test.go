package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.txt")
	if err := os.WriteFile(path, []byte("some corpus text"), 0644); err != nil {
		t.Fatal(err)
	}

	l := NewCorpusLoader(nil, nil)
	text, err := l.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if text != "some corpus text" {
		t.Errorf("unexpected corpus text: %q", text)
	}
}

func TestLoadMissingPath(t *testing.T) {
	l := NewCorpusLoader(nil, nil)
	if _, err := l.Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing corpus path")
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.txt":        "alpha",
		"b.txt":        "beta",
		"notes.md":     "gamma",
		"skip.json":    "ignored",
		"sub/deep.txt": "delta",
	}
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	l := NewCorpusLoader([]string{"**/*.txt", "**/*.md"}, nil)
	text, err := l.Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"alpha", "beta", "gamma", "delta"} {
		if !strings.Contains(text, want) {
			t.Errorf("corpus missing %q", want)
		}
	}
	if strings.Contains(text, "ignored") {
		t.Error("corpus should not contain non-matching files")
	}
}

func TestLoadDirectoryExcludes(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".hidden"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".hidden", "x.txt"), []byte("secret"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "x.txt"), []byte("visible"), 0644); err != nil {
		t.Fatal(err)
	}

	l := NewCorpusLoader([]string{"**/*.txt"}, []string{"**/.*/**"})
	text, err := l.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(text, "secret") {
		t.Error("excluded directory leaked into corpus")
	}
	if !strings.Contains(text, "visible") {
		t.Error("included file missing from corpus")
	}
}

func TestLoadDeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.txt", "a.txt", "b.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0644); err != nil {
			t.Fatal(err)
		}
	}

	l := NewCorpusLoader([]string{"**/*.txt"}, nil)
	first, err := l.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	second, err := l.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("corpus order must be deterministic across loads")
	}
	if !strings.HasPrefix(first, "a.txt") {
		t.Errorf("expected lexical order, got %q", first)
	}
}
