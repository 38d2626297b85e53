package models

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Text and markdown rendering of reports. The nested listing mirrors the
// declaration tree: one entry per declaration, children indented under
// their parent.

const indentStep = "    "

// RenderData returns the report itself for structured serialization.
func (r *FileReport) RenderData() any { return r }

func (r *FileReport) RenderText(w io.Writer, colored bool) error {
	if colored {
		color.New(color.Bold).Fprintln(w, r.Path)
	} else {
		fmt.Fprintln(w, r.Path)
	}

	if len(r.Declarations) == 0 {
		fmt.Fprintln(w, indentStep+"(no declarations)")
	}
	for _, d := range r.Declarations {
		renderDecl(w, d, 1, colored)
	}
	for _, warn := range r.Warnings {
		if colored {
			color.New(color.FgYellow).Fprintf(w, "warning: %s\n", warn)
		} else {
			fmt.Fprintf(w, "warning: %s\n", warn)
		}
	}
	return nil
}

func renderDecl(w io.Writer, d *Declaration, depth int, colored bool) {
	indent := strings.Repeat(indentStep, depth)

	header := fmt.Sprintf("%s %s", d.Kind, signature(d))
	if d.EntryPoint {
		header += "  [entry point]"
	}
	if colored {
		name := color.New(color.FgCyan).Sprint(signature(d))
		header = fmt.Sprintf("%s %s", d.Kind, name)
		if d.EntryPoint {
			header += color.New(color.FgGreen).Sprint("  [entry point]")
		}
	}
	fmt.Fprintf(w, "%s%s\n", indent, header)

	detail := indent + indentStep
	if d.Docstring != "" {
		fmt.Fprintf(w, "%sdoc: %s\n", detail, firstLine(d.Docstring))
	}
	if len(d.Dependencies) > 0 {
		fmt.Fprintf(w, "%scalls: %s\n", detail, strings.Join(d.Dependencies, ", "))
	}
	for _, child := range d.Children {
		renderDecl(w, child, depth+1, colored)
	}
}

func (r *FileReport) RenderMarkdown(w io.Writer) error {
	fmt.Fprintf(w, "## %s\n\n", r.Path)
	for _, d := range r.Declarations {
		renderDeclMarkdown(w, d, 0)
	}
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "> warning: %s\n", warn)
	}
	fmt.Fprintln(w)
	return nil
}

func renderDeclMarkdown(w io.Writer, d *Declaration, depth int) {
	indent := strings.Repeat("  ", depth)
	entry := ""
	if d.EntryPoint {
		entry = " (entry point)"
	}
	fmt.Fprintf(w, "%s- **%s** `%s`%s\n", indent, d.Kind, signature(d), entry)
	if d.Docstring != "" {
		fmt.Fprintf(w, "%s  - doc: %s\n", indent, firstLine(d.Docstring))
	}
	if len(d.Dependencies) > 0 {
		fmt.Fprintf(w, "%s  - calls: %s\n", indent, strings.Join(d.Dependencies, ", "))
	}
	for _, child := range d.Children {
		renderDeclMarkdown(w, child, depth+1)
	}
}

// RenderData returns the report itself for structured serialization.
func (r *DirectoryReport) RenderData() any { return r }

func (r *DirectoryReport) RenderText(w io.Writer, colored bool) error {
	for i, fr := range r.Reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := fr.RenderText(w, colored); err != nil {
			return err
		}
	}
	for _, f := range r.Failures {
		if colored {
			color.New(color.FgRed).Fprintf(w, "error: %s: %s\n", f.Path, f.Error)
		} else {
			fmt.Fprintf(w, "error: %s: %s\n", f.Path, f.Error)
		}
	}
	return nil
}

func (r *DirectoryReport) RenderMarkdown(w io.Writer) error {
	fmt.Fprintf(w, "# %s\n\n", r.Root)
	for _, fr := range r.Reports {
		if err := fr.RenderMarkdown(w); err != nil {
			return err
		}
	}
	for _, f := range r.Failures {
		fmt.Fprintf(w, "> error: %s: %s\n", f.Path, f.Error)
	}
	return nil
}

// signature formats a declaration header like "name(a: int, b) -> str".
func signature(d *Declaration) string {
	if d.Kind == KindClass {
		return d.Name
	}

	parts := make([]string, len(d.Params))
	for i, p := range d.Params {
		if p.Type != "" {
			parts[i] = p.Name + ": " + p.Type
		} else {
			parts[i] = p.Name
		}
	}
	sig := fmt.Sprintf("%s(%s)", d.Name, strings.Join(parts, ", "))
	if d.Returns != "" {
		sig += " -> " + d.Returns
	}
	return sig
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
