package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// CorpusLoader reads raw corpus text for ingestion. A file path is read as
// is; a directory is walked and matching files are concatenated in lexical
// path order so that repeated ingestions see the same word sequence.
type CorpusLoader struct {
	includes []string
	excludes []string
}

func NewCorpusLoader(includes, excludes []string) *CorpusLoader {
	if len(includes) == 0 {
		includes = []string{"**/*"}
	}
	return &CorpusLoader{
		includes: includes,
		excludes: excludes,
	}
}

// Load returns the corpus text rooted at path.
func (l *CorpusLoader) Load(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("cannot read corpus: %w", err)
	}

	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("cannot read corpus: %w", err)
		}
		return string(data), nil
	}

	var parts []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}

		if info.IsDir() {
			if l.shouldExclude(relPath + "/") {
				return filepath.SkipDir
			}
			return nil
		}

		if !l.shouldInclude(relPath) || l.shouldExclude(relPath) {
			return nil
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		parts = append(parts, string(data))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("cannot read corpus: %w", err)
	}

	return strings.Join(parts, "\n"), nil
}

func (l *CorpusLoader) shouldInclude(path string) bool {
	for _, pattern := range l.includes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (l *CorpusLoader) shouldExclude(path string) bool {
	for _, pattern := range l.excludes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}
