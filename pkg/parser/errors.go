package parser

import "fmt"

// ParseError reports that a file could not be parsed as valid Python.
// Line and Column point at the first offending construct when the grammar
// could locate one (1-based; zero when unknown).
type ParseError struct {
	Path   string
	Line   uint32
	Column uint32
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: syntax error at line %d, column %d", e.Path, e.Line, e.Column)
	}
	return fmt.Sprintf("%s: syntax error", e.Path)
}
