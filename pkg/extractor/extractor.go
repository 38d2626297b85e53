// Package extractor builds a structured description of every function,
// method, and class declared in one parsed Python file: parameters with
// their annotations, return annotation, docstring, the set of names the
// body calls, lexically nested declarations, and an entry-point flag.
package extractor

import (
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jswain/augur/pkg/models"
	"github.com/jswain/augur/pkg/parser"
)

// Options control how declarations are keyed and shaped.
type Options struct {
	// QualifyMethods names methods "Class.method" instead of the bare
	// method name under their class container.
	QualifyMethods bool

	// DropReceiver removes the first parameter (self/cls) from methods.
	// By default receivers are kept as ordinary parameters.
	DropReceiver bool

	// ClassRecords captures class docstrings, treating a class like a
	// declaration rather than a bare container.
	ClassRecords bool
}

// Extractor turns parsed Python files into declaration reports.
type Extractor struct {
	opts Options
}

// New creates an extractor with the given options.
func New(opts Options) *Extractor {
	return &Extractor{opts: opts}
}

// Extract runs one traversal over the file's top-level statements and
// returns the ordered declaration tree. Declarations the grammar produced
// in an unexpected shape are skipped and reported as warnings rather than
// failing the run.
func (e *Extractor) Extract(res *parser.ParseResult) (*models.FileReport, error) {
	if res == nil || res.Tree == nil {
		return nil, fmt.Errorf("nothing to extract: no parse result")
	}

	st := &fileState{src: res.Source, opts: e.opts}
	root := res.Tree.RootNode()

	entryCalls := scanMainGuard(root, res.Source)

	report := &models.FileReport{Path: res.Path}
	for i := range int(root.NamedChildCount()) {
		stmt := root.NamedChild(i)
		if decl := st.statement(stmt, ""); decl != nil {
			if decl.Kind == models.KindFunction && entryCalls[decl.Name] {
				decl.EntryPoint = true
			}
			report.Declarations = append(report.Declarations, decl)
		}
	}
	report.Warnings = st.warnings

	return report, nil
}

// fileState carries per-extraction context through the traversal.
type fileState struct {
	src      []byte
	opts     Options
	warnings []string
}

func (st *fileState) warnf(format string, args ...any) {
	st.warnings = append(st.warnings, fmt.Sprintf(format, args...))
}

// statement converts one statement node into a declaration, unwrapping
// decorators. Non-declaration statements yield nil.
func (st *fileState) statement(node *sitter.Node, className string) *models.Declaration {
	switch node.Type() {
	case "decorated_definition":
		def := node.ChildByFieldName("definition")
		if def == nil {
			st.warnf("decorated statement at line %d has no definition, skipped", node.StartPoint().Row+1)
			return nil
		}
		return st.statement(def, className)
	case "function_definition":
		kind := models.KindFunction
		if className != "" {
			kind = models.KindMethod
		}
		return st.function(node, kind, className)
	case "class_definition":
		return st.class(node)
	}
	return nil
}

// function builds the record for one def, collecting in a single pass over
// its body both the called-dependency set and the declarations nested
// directly inside it (nested defs' own bodies are left to their records).
func (st *fileState) function(node *sitter.Node, kind models.DeclKind, className string) *models.Declaration {
	nameNode := node.ChildByFieldName("name")
	body := node.ChildByFieldName("body")
	if nameNode == nil || body == nil {
		st.warnf("malformed %s at line %d, skipped", kind, node.StartPoint().Row+1)
		return nil
	}

	name := parser.GetNodeText(nameNode, st.src)
	decl := &models.Declaration{
		Name: name,
		Kind: kind,
		Line: node.StartPoint().Row + 1,
	}
	if kind == models.KindMethod && st.opts.QualifyMethods {
		decl.Name = className + "." + name
	}

	paramsNode := node.ChildByFieldName("parameters")
	decl.Params = st.params(paramsNode)
	if kind == models.KindMethod && st.opts.DropReceiver && len(decl.Params) > 0 {
		decl.Params = decl.Params[1:]
	}

	if ret := node.ChildByFieldName("return_type"); ret != nil {
		decl.Returns = parser.GetNodeText(ret, st.src)
	}

	decl.Docstring = docstring(body, st.src)

	deps := make(map[string]bool)
	// Default-parameter expressions count toward the dependency scan.
	st.collectCalls(paramsNode, deps, nil)
	st.collectCalls(body, deps, &decl.Children)

	delete(deps, name) // recursion is not a dependency on yourself
	decl.Dependencies = sortedKeys(deps)

	// A function literally named main is the conventional starting point,
	// guard block or not.
	if name == "main" && kind == models.KindFunction {
		decl.EntryPoint = true
	}

	return decl
}

// class builds a container record whose children are the class's methods
// and nested classes, in source order.
func (st *fileState) class(node *sitter.Node) *models.Declaration {
	nameNode := node.ChildByFieldName("name")
	body := node.ChildByFieldName("body")
	if nameNode == nil || body == nil {
		st.warnf("malformed class at line %d, skipped", node.StartPoint().Row+1)
		return nil
	}

	name := parser.GetNodeText(nameNode, st.src)
	decl := &models.Declaration{
		Name: name,
		Kind: models.KindClass,
		Line: node.StartPoint().Row + 1,
	}
	if st.opts.ClassRecords {
		decl.Docstring = docstring(body, st.src)
	}

	for i := range int(body.NamedChildCount()) {
		if child := st.statement(body.NamedChild(i), name); child != nil {
			decl.Children = append(decl.Children, child)
		}
	}
	return decl
}

// collectCalls walks a subtree recording callee names. The walk is pruned
// at nested function/class definitions; when children is non-nil those
// definitions are converted into child declarations instead.
func (st *fileState) collectCalls(node *sitter.Node, deps map[string]bool, children *[]*models.Declaration) {
	if node == nil {
		return
	}

	parser.Walk(node, st.src, func(n *sitter.Node, src []byte) bool {
		if n != node {
			switch n.Type() {
			case "function_definition", "class_definition", "decorated_definition":
				if n.Type() == "decorated_definition" {
					// Calls in decorator expressions are not dependencies;
					// the wrapped def still becomes a child.
					if def := n.ChildByFieldName("definition"); def != nil {
						n = def
					}
				}
				if children != nil {
					if child := st.statement(n, ""); child != nil {
						*children = append(*children, child)
					}
				}
				return false
			}
		}

		if n.Type() == "call" {
			if callee := calleeName(n, src); callee != "" {
				deps[callee] = true
			}
		}
		return true
	})
}

// calleeName resolves a call's textual name: the identifier for simple
// calls, the rightmost attribute for attribute calls (obj.method() yields
// "method"). Calls through subscripts or other expressions have no simple
// name and are ignored.
func calleeName(call *sitter.Node, src []byte) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	switch fn.Type() {
	case "identifier":
		return parser.GetNodeText(fn, src)
	case "attribute":
		return parser.GetNodeText(fn.ChildByFieldName("attribute"), src)
	}
	return ""
}

// scanMainGuard finds a top-level `if __name__ == "__main__":` block and
// returns the names called by simple identifier anywhere in its body,
// outside nested defs. This is a textual heuristic over the guard
// condition, not a semantic guarantee.
func scanMainGuard(root *sitter.Node, src []byte) map[string]bool {
	calls := make(map[string]bool)

	for i := range int(root.NamedChildCount()) {
		stmt := root.NamedChild(i)
		if stmt.Type() != "if_statement" {
			continue
		}
		cond := stmt.ChildByFieldName("condition")
		if !isMainGuardCondition(parser.GetNodeText(cond, src)) {
			continue
		}
		body := stmt.ChildByFieldName("consequence")
		if body == nil {
			continue
		}
		parser.Walk(body, src, func(n *sitter.Node, s []byte) bool {
			switch n.Type() {
			case "function_definition", "class_definition":
				return false
			case "call":
				if fn := n.ChildByFieldName("function"); fn != nil && fn.Type() == "identifier" {
					calls[parser.GetNodeText(fn, s)] = true
				}
			}
			return true
		})
	}
	return calls
}

func isMainGuardCondition(cond string) bool {
	return strings.Contains(cond, "__name__") &&
		strings.Contains(cond, "==") &&
		strings.Contains(cond, "__main__")
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
