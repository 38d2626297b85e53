package models

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *FileReport {
	return &FileReport{
		Path: "app.py",
		Declarations: []*Declaration{
			{
				Name: "main",
				Kind: KindFunction,
				Line: 1,
				Params: []Param{
					{Name: "argv", Type: "list[str]"},
					{Name: "verbose"},
				},
				Returns:      "int",
				Docstring:    "Run the app.\nLonger detail.",
				Dependencies: []string{"parse_args", "serve"},
				EntryPoint:   true,
			},
			{
				Name: "Config",
				Kind: KindClass,
				Line: 10,
				Children: []*Declaration{
					{Name: "load", Kind: KindMethod, Line: 11},
				},
			},
		},
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport().RenderText(&buf, false))
	out := buf.String()

	assert.Contains(t, out, "app.py")
	assert.Contains(t, out, "function main(argv: list[str], verbose) -> int")
	assert.Contains(t, out, "[entry point]")
	assert.Contains(t, out, "doc: Run the app.")
	assert.NotContains(t, out, "Longer detail")
	assert.Contains(t, out, "calls: parse_args, serve")
	assert.Contains(t, out, "class Config")
	assert.Contains(t, out, "method load()")

	// method listing indented under its class
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "method load") {
			assert.True(t, strings.HasPrefix(line, "        "), "method should be nested: %q", line)
		}
	}
}

func TestRenderTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := &FileReport{Path: "empty.py"}
	require.NoError(t, r.RenderText(&buf, false))
	assert.Contains(t, buf.String(), "(no declarations)")
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport().RenderMarkdown(&buf))
	out := buf.String()

	assert.Contains(t, out, "## app.py")
	assert.Contains(t, out, "`main(argv: list[str], verbose) -> int`")
	assert.Contains(t, out, "entry point")
}

func TestCountDeclarations(t *testing.T) {
	assert.Equal(t, 3, sampleReport().CountDeclarations())
	assert.Equal(t, 0, (&FileReport{}).CountDeclarations())
}

func TestDirectoryReportRenderText(t *testing.T) {
	var buf bytes.Buffer
	dr := &DirectoryReport{
		Root:     "src",
		Reports:  []*FileReport{sampleReport()},
		Failures: []Failure{{Path: "bad.py", Error: "syntax error"}},
	}
	require.NoError(t, dr.RenderText(&buf, false))
	out := buf.String()

	assert.Contains(t, out, "app.py")
	assert.Contains(t, out, "error: bad.py: syntax error")
}
