package models

// DeclKind classifies an extracted declaration.
type DeclKind string

const (
	KindFunction DeclKind = "function"
	KindMethod   DeclKind = "method"
	KindClass    DeclKind = "class"
)

func (k DeclKind) String() string { return string(k) }

// Param is one declared parameter, in positional order. Type is the
// annotation's display text, empty when the parameter is unannotated.
type Param struct {
	Name string `json:"name" toon:"name"`
	Type string `json:"type,omitempty" toon:"type,omitempty"`
}

// Declaration describes one function, method, or class found in a file.
// Children holds declarations nested lexically inside this one; the whole
// structure is a strict tree ordered by source position.
type Declaration struct {
	Name         string         `json:"name" toon:"name"`
	Kind         DeclKind       `json:"kind" toon:"kind"`
	Line         uint32         `json:"line" toon:"line"`
	Params       []Param        `json:"params,omitempty" toon:"params,omitempty"`
	Returns      string         `json:"returns,omitempty" toon:"returns,omitempty"`
	Docstring    string         `json:"docstring,omitempty" toon:"docstring,omitempty"`
	Dependencies []string       `json:"dependencies,omitempty" toon:"dependencies,omitempty"`
	EntryPoint   bool           `json:"entry_point,omitempty" toon:"entry_point,omitempty"`
	Children     []*Declaration `json:"children,omitempty" toon:"children,omitempty"`
}

// FileReport is the result of extracting one Python file.
type FileReport struct {
	Path         string         `json:"path" toon:"path"`
	Declarations []*Declaration `json:"declarations" toon:"declarations"`
	Warnings     []string       `json:"warnings,omitempty" toon:"warnings,omitempty"`
}

// CountDeclarations returns the total number of declarations in the report,
// including nested ones.
func (r *FileReport) CountDeclarations() int {
	n := 0
	var count func(decls []*Declaration)
	count = func(decls []*Declaration) {
		for _, d := range decls {
			n++
			count(d.Children)
		}
	}
	count(r.Declarations)
	return n
}

// Failure records a file that could not be analyzed during a directory run.
type Failure struct {
	Path  string `json:"path" toon:"path"`
	Error string `json:"error" toon:"error"`
}

// DirectoryReport aggregates per-file reports for a directory run.
type DirectoryReport struct {
	Root     string        `json:"root" toon:"root"`
	Reports  []*FileReport `json:"reports" toon:"reports"`
	Failures []Failure     `json:"failures,omitempty" toon:"failures,omitempty"`
}
