// Package scanner discovers Python source files for directory analysis.
package scanner

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/jswain/augur/pkg/config"
	"github.com/jswain/augur/pkg/parser"
)

// Scanner finds Python files under a directory, honoring the scan section
// of the configuration.
type Scanner struct {
	cfg     *config.Config
	matcher gitignore.Matcher
}

// New creates a scanner.
func New(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{cfg: cfg}
}

// loadPatterns combines config exclusion patterns with .gitignore files
// found under root.
func (s *Scanner) loadPatterns(root string) {
	var patterns []gitignore.Pattern

	for _, pattern := range s.cfg.Scan.Patterns {
		patterns = append(patterns, gitignore.ParsePattern(pattern, nil))
	}

	if s.cfg.Scan.Gitignore {
		if gitPatterns, err := gitignore.ReadPatterns(osfs.New(root), nil); err == nil {
			patterns = append(patterns, gitPatterns...)
		}
	}

	if len(patterns) > 0 {
		s.matcher = gitignore.NewMatcher(patterns)
	}
}

func (s *Scanner) isExcludedDir(name string) bool {
	for _, d := range s.cfg.Scan.Dirs {
		if name == d {
			return true
		}
	}
	return false
}

// ScanDir recursively collects the Python files under root in walk order.
func (s *Scanner) ScanDir(root string) ([]string, error) {
	root = filepath.Clean(root)
	s.loadPatterns(root)

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		parts := strings.Split(rel, string(filepath.Separator))

		if d.IsDir() {
			if s.isExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			if s.matcher != nil && s.matcher.Match(parts, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if !parser.IsPythonFile(path) {
			return nil
		}
		if s.matcher != nil && s.matcher.Match(parts, false) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
