package extractor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jswain/augur/pkg/models"
	"github.com/jswain/augur/pkg/parser"
)

// params reads a declared parameter list in order. Annotation text is kept
// verbatim; unannotated parameters get an empty Type. Splat parameters keep
// their literal spelling (*args, **kwargs).
func (st *fileState) params(node *sitter.Node) []models.Param {
	if node == nil {
		return nil
	}

	var out []models.Param
	for i := range int(node.NamedChildCount()) {
		p := node.NamedChild(i)
		switch p.Type() {
		case "identifier", "list_splat_pattern", "dictionary_splat_pattern":
			out = append(out, models.Param{Name: parser.GetNodeText(p, st.src)})
		case "typed_parameter":
			out = append(out, models.Param{
				Name: parser.GetNodeText(p.NamedChild(0), st.src),
				Type: parser.GetNodeText(p.ChildByFieldName("type"), st.src),
			})
		case "default_parameter":
			out = append(out, models.Param{
				Name: parser.GetNodeText(p.ChildByFieldName("name"), st.src),
			})
		case "typed_default_parameter":
			out = append(out, models.Param{
				Name: parser.GetNodeText(p.ChildByFieldName("name"), st.src),
				Type: parser.GetNodeText(p.ChildByFieldName("type"), st.src),
			})
		case "positional_separator", "keyword_separator":
			// bare / and * markers declare no parameter
		default:
			st.warnf("unrecognized parameter form %q at line %d, skipped", p.Type(), p.StartPoint().Row+1)
		}
	}
	return out
}

// docstring returns the text of the first body statement when it is a bare
// string literal, with quotes stripped and whitespace trimmed. Anything
// else yields the empty string.
func docstring(body *sitter.Node, src []byte) string {
	if body == nil || body.NamedChildCount() == 0 {
		return ""
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return ""
	}
	lit := first.NamedChild(0)
	if lit.Type() != "string" && lit.Type() != "concatenated_string" {
		return ""
	}
	return strings.TrimSpace(stripStringLiteral(parser.GetNodeText(lit, src)))
}

// stripStringLiteral removes a Python string literal's prefix letters and
// quote delimiters, handling both single and triple quoting.
func stripStringLiteral(s string) string {
	start := 0
	for start < len(s) && s[start] != '"' && s[start] != '\'' {
		start++
	}
	if start == len(s) {
		return s
	}
	s = s[start:]

	for _, q := range []string{`"""`, "'''", `"`, `'`} {
		if strings.HasPrefix(s, q) {
			s = strings.TrimPrefix(s, q)
			s = strings.TrimSuffix(s, q)
			return s
		}
	}
	return s
}
