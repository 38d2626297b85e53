package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jswain/augur/pkg/models"
	"github.com/jswain/augur/pkg/parser"
)

func extractSource(t *testing.T, source string, opts Options) *models.FileReport {
	t.Helper()

	p := parser.New()
	t.Cleanup(p.Close)

	res, err := p.Parse([]byte(source), "test.py")
	require.NoError(t, err)

	report, err := New(opts).Extract(res)
	require.NoError(t, err)
	return report
}

func names(decls []*models.Declaration) []string {
	out := make([]string, len(decls))
	for i, d := range decls {
		out[i] = d.Name
	}
	return out
}

func TestTopLevelOrder(t *testing.T) {
	source := `
def alpha():
    pass

class Beta:
    def method(self):
        pass

def gamma():
    pass
`
	report := extractSource(t, source, Options{})

	require.Equal(t, []string{"alpha", "Beta", "gamma"}, names(report.Declarations))
	assert.Equal(t, models.KindFunction, report.Declarations[0].Kind)
	assert.Equal(t, models.KindClass, report.Declarations[1].Kind)
	assert.Equal(t, models.KindFunction, report.Declarations[2].Kind)
}

func TestParameters(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []models.Param
	}{
		{
			name:   "annotated and plain",
			source: "def f(a: int, b):\n    pass\n",
			want:   []models.Param{{Name: "a", Type: "int"}, {Name: "b"}},
		},
		{
			name:   "no parameters",
			source: "def f():\n    pass\n",
			want:   nil,
		},
		{
			name:   "defaults",
			source: "def f(x=1, y: str = \"s\"):\n    pass\n",
			want:   []models.Param{{Name: "x"}, {Name: "y", Type: "str"}},
		},
		{
			name:   "splats keep their spelling",
			source: "def f(a, *args, **kwargs):\n    pass\n",
			want:   []models.Param{{Name: "a"}, {Name: "*args"}, {Name: "**kwargs"}},
		},
		{
			name:   "generic annotation text kept verbatim",
			source: "def f(items: dict[str, list[int]]):\n    pass\n",
			want:   []models.Param{{Name: "items", Type: "dict[str, list[int]]"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := extractSource(t, tt.source, Options{})
			require.Len(t, report.Declarations, 1)
			assert.Equal(t, tt.want, report.Declarations[0].Params)
		})
	}
}

func TestReturnAnnotation(t *testing.T) {
	report := extractSource(t, "def f() -> dict[str, int]:\n    return {}\n", Options{})
	require.Len(t, report.Declarations, 1)
	assert.Equal(t, "dict[str, int]", report.Declarations[0].Returns)

	report = extractSource(t, "def g():\n    pass\n", Options{})
	require.Len(t, report.Declarations, 1)
	assert.Empty(t, report.Declarations[0].Returns)
}

func TestDocstring(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "triple quoted",
			source: "def f():\n    \"\"\"Process the thing.\"\"\"\n    pass\n",
			want:   "Process the thing.",
		},
		{
			name:   "single quoted",
			source: "def f():\n    'short doc'\n    pass\n",
			want:   "short doc",
		},
		{
			name:   "multiline is whitespace trimmed",
			source: "def f():\n    \"\"\"\n    First line.\n    \"\"\"\n    pass\n",
			want:   "First line.",
		},
		{
			name:   "raw prefix stripped",
			source: "def f():\n    r\"\"\"regex doc\"\"\"\n    pass\n",
			want:   "regex doc",
		},
		{
			name:   "first statement not a string",
			source: "def f():\n    x = 'not a docstring'\n    return x\n",
			want:   "",
		},
		{
			name:   "empty body",
			source: "def f():\n    pass\n",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := extractSource(t, tt.source, Options{})
			require.Len(t, report.Declarations, 1)
			assert.Equal(t, tt.want, report.Declarations[0].Docstring)
		})
	}
}

func TestDependencies(t *testing.T) {
	source := `
def worker(data):
    helper()
    helper()
    obj.method()
    obj.method()
    return data
`
	report := extractSource(t, source, Options{})
	require.Len(t, report.Declarations, 1)
	assert.Equal(t, []string{"helper", "method"}, report.Declarations[0].Dependencies)
}

func TestDependenciesLexicalScope(t *testing.T) {
	source := `
def outer(items, seed=make_seed()):
    results = [transform(i) for i in items]
    cb = lambda x: finalize(x)

    def inner():
        hidden()

    dispatch(cb)
`
	report := extractSource(t, source, Options{})
	require.Len(t, report.Declarations, 1)

	outer := report.Declarations[0]
	// Comprehensions, lambdas, and default-argument expressions are part of
	// the scan; nested def bodies are not.
	assert.Equal(t, []string{"dispatch", "finalize", "make_seed", "transform"}, outer.Dependencies)

	require.Len(t, outer.Children, 1)
	assert.Equal(t, "inner", outer.Children[0].Name)
	assert.Equal(t, []string{"hidden"}, outer.Children[0].Dependencies)
}

func TestSelfRecursionNotADependency(t *testing.T) {
	source := `
def fib(n):
    if n < 2:
        return n
    return fib(n - 1) + fib(n - 2)
`
	report := extractSource(t, source, Options{})
	require.Len(t, report.Declarations, 1)
	assert.Empty(t, report.Declarations[0].Dependencies)
}

func TestNestedFunctions(t *testing.T) {
	source := `
def outer():
    def inner():
        def innermost():
            pass
        return innermost
    return inner
`
	report := extractSource(t, source, Options{})

	require.Equal(t, []string{"outer"}, names(report.Declarations))
	outer := report.Declarations[0]
	require.Equal(t, []string{"inner"}, names(outer.Children))
	require.Equal(t, []string{"innermost"}, names(outer.Children[0].Children))
}

func TestNestedDefInsideConditional(t *testing.T) {
	source := `
def outer(flag):
    if flag:
        def inner():
            pass
    return None
`
	report := extractSource(t, source, Options{})
	require.Len(t, report.Declarations, 1)
	assert.Equal(t, []string{"inner"}, names(report.Declarations[0].Children))
}

func TestClassMethods(t *testing.T) {
	source := `
class Repo:
    """Storage access."""

    def __init__(self, conn):
        self.conn = conn

    def fetch(self, key: str) -> bytes:
        return self.conn.get(key)
`
	t.Run("default keying", func(t *testing.T) {
		report := extractSource(t, source, Options{})
		require.Equal(t, []string{"Repo"}, names(report.Declarations))

		repo := report.Declarations[0]
		assert.Equal(t, models.KindClass, repo.Kind)
		assert.Empty(t, repo.Docstring)
		require.Equal(t, []string{"__init__", "fetch"}, names(repo.Children))

		fetch := repo.Children[1]
		assert.Equal(t, models.KindMethod, fetch.Kind)
		assert.Equal(t, []models.Param{{Name: "self"}, {Name: "key", Type: "str"}}, fetch.Params)
		assert.Equal(t, "bytes", fetch.Returns)
		assert.Equal(t, []string{"get"}, fetch.Dependencies)
	})

	t.Run("qualified names", func(t *testing.T) {
		report := extractSource(t, source, Options{QualifyMethods: true})
		repo := report.Declarations[0]
		assert.Equal(t, []string{"Repo.__init__", "Repo.fetch"}, names(repo.Children))
	})

	t.Run("dropped receiver", func(t *testing.T) {
		report := extractSource(t, source, Options{DropReceiver: true})
		fetch := report.Declarations[0].Children[1]
		assert.Equal(t, []models.Param{{Name: "key", Type: "str"}}, fetch.Params)
	})

	t.Run("class records capture docstrings", func(t *testing.T) {
		report := extractSource(t, source, Options{ClassRecords: true})
		assert.Equal(t, "Storage access.", report.Declarations[0].Docstring)
	})
}

func TestNestedClass(t *testing.T) {
	source := `
class Outer:
    class Inner:
        def ping(self):
            pass
`
	report := extractSource(t, source, Options{})
	outer := report.Declarations[0]
	require.Equal(t, []string{"Inner"}, names(outer.Children))
	assert.Equal(t, models.KindClass, outer.Children[0].Kind)
	require.Equal(t, []string{"ping"}, names(outer.Children[0].Children))
}

func TestEntryPoint(t *testing.T) {
	t.Run("guard call", func(t *testing.T) {
		source := `
def run():
    pass

def helper():
    pass

if __name__ == "__main__":
    run()
`
		report := extractSource(t, source, Options{})
		require.Equal(t, []string{"run", "helper"}, names(report.Declarations))
		assert.True(t, report.Declarations[0].EntryPoint)
		assert.False(t, report.Declarations[1].EntryPoint)
	})

	t.Run("guard call nested in expression", func(t *testing.T) {
		source := `
async def main_loop():
    pass

if __name__ == '__main__':
    asyncio.run(main_loop())
`
		report := extractSource(t, source, Options{})
		require.Len(t, report.Declarations, 1)
		assert.True(t, report.Declarations[0].EntryPoint)
	})

	t.Run("literal main needs no guard", func(t *testing.T) {
		report := extractSource(t, "def main():\n    pass\n", Options{})
		require.Len(t, report.Declarations, 1)
		assert.True(t, report.Declarations[0].EntryPoint)
	})

	t.Run("no guard no flag", func(t *testing.T) {
		report := extractSource(t, "def run():\n    pass\n", Options{})
		require.Len(t, report.Declarations, 1)
		assert.False(t, report.Declarations[0].EntryPoint)
	})
}

func TestDecoratedDeclarations(t *testing.T) {
	source := `
@app.route("/ping")
def ping():
    return pong()

@dataclass
class Point:
    def norm(self):
        return 0
`
	report := extractSource(t, source, Options{})
	require.Equal(t, []string{"ping", "Point"}, names(report.Declarations))
	// The decorator's own call is not a body dependency.
	assert.Equal(t, []string{"pong"}, report.Declarations[0].Dependencies)
}

func TestDeclarationLines(t *testing.T) {
	source := "def first():\n    pass\n\n\ndef second():\n    pass\n"
	report := extractSource(t, source, Options{})
	require.Len(t, report.Declarations, 2)
	assert.Equal(t, uint32(1), report.Declarations[0].Line)
	assert.Equal(t, uint32(5), report.Declarations[1].Line)
}
