// Package tree renders an indented, filtered view of a filesystem subtree,
// one directory walk deep-first with box-drawing connectors.
package tree

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/gobwas/glob"
)

// Options configure what the printer lists and how entries are annotated.
type Options struct {
	// Filter restricts listed filenames to a glob pattern (e.g. "*.py").
	Filter string

	// MaxDepth bounds recursion; 0 means unlimited.
	MaxDepth int

	// IncludeSize annotates files with a human-readable size.
	IncludeSize bool

	// IncludeMTime annotates files with their modification time.
	IncludeMTime bool

	// SortByMTime orders files by modification time instead of name.
	SortByMTime bool

	// ExcludeDirs names directories skipped wherever they appear.
	ExcludeDirs []string

	// Gitignore additionally skips entries matched by .gitignore files
	// under the root.
	Gitignore bool
}

// Printer renders directory trees.
type Printer struct {
	opts     Options
	filter   glob.Glob
	excluded map[string]bool
}

// NewPrinter creates a printer, compiling the filename filter.
func NewPrinter(opts Options) (*Printer, error) {
	p := &Printer{opts: opts, excluded: make(map[string]bool, len(opts.ExcludeDirs))}
	for _, d := range opts.ExcludeDirs {
		p.excluded[filepath.Clean(d)] = true
	}
	if opts.Filter != "" {
		g, err := glob.Compile(opts.Filter)
		if err != nil {
			return nil, fmt.Errorf("invalid filter %q: %w", opts.Filter, err)
		}
		p.filter = g
	}
	return p, nil
}

// Print writes the tree rooted at root to w.
func (p *Printer) Print(w io.Writer, root string) error {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("input not found: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}

	var matcher gitignore.Matcher
	if p.opts.Gitignore {
		if patterns, err := gitignore.ReadPatterns(osfs.New(root), nil); err == nil && len(patterns) > 0 {
			matcher = gitignore.NewMatcher(patterns)
		}
	}

	fmt.Fprintln(w, filepath.Base(root))
	return p.walk(w, root, nil, 1, matcher)
}

// walk lists one directory's files, then descends into its subdirectories.
func (p *Printer) walk(w io.Writer, dir string, rel []string, level int, matcher gitignore.Matcher) error {
	if p.opts.MaxDepth > 0 && level > p.opts.MaxDepth {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var files []fs.DirEntry
	var dirs []fs.DirEntry
	for _, e := range entries {
		childRel := append(append([]string{}, rel...), e.Name())
		if e.IsDir() {
			if p.excluded[e.Name()] {
				continue
			}
			if matcher != nil && matcher.Match(childRel, true) {
				continue
			}
			dirs = append(dirs, e)
			continue
		}
		if p.filter != nil && !p.filter.Match(e.Name()) {
			continue
		}
		if matcher != nil && matcher.Match(childRel, false) {
			continue
		}
		files = append(files, e)
	}

	p.sortFiles(dir, files)

	indent := indentFor(level)
	for i, f := range files {
		connector := "├───"
		if i == len(files)-1 && len(dirs) == 0 {
			connector = "└───"
		}
		fmt.Fprintf(w, "%s%s%s%s\n", indent, connector, f.Name(), p.annotate(filepath.Join(dir, f.Name())))
	}

	for _, d := range dirs {
		fmt.Fprintf(w, "%s├───%s/\n", indent, d.Name())
		childRel := append(append([]string{}, rel...), d.Name())
		if err := p.walk(w, filepath.Join(dir, d.Name()), childRel, level+1, matcher); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) sortFiles(dir string, files []fs.DirEntry) {
	if p.opts.SortByMTime {
		sort.SliceStable(files, func(i, j int) bool {
			ii, ierr := files[i].Info()
			ji, jerr := files[j].Info()
			if ierr != nil || jerr != nil {
				return files[i].Name() < files[j].Name()
			}
			return ii.ModTime().Before(ji.ModTime())
		})
		return
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })
}

// annotate builds the optional " size, modified time" suffix for a file.
func (p *Printer) annotate(path string) string {
	if !p.opts.IncludeSize && !p.opts.IncludeMTime {
		return ""
	}
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}

	out := ""
	if p.opts.IncludeSize {
		out += " " + humanize.Bytes(uint64(info.Size()))
	}
	if p.opts.IncludeMTime {
		out += " modified " + info.ModTime().Format("2006-01-02 15:04:05")
	}
	return out
}

func indentFor(level int) string {
	out := ""
	for i := 1; i < level; i++ {
		out += "    "
	}
	return out
}
