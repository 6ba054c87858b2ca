package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/treeq/goast"
	"github.com/erraggy/treeq/query"
	"github.com/erraggy/treeq/treeqerrors"
)

const demoSrc = `package demo

type Point struct {
	X, Y int
}

func (p Point) Sum() int { return p.X + p.Y }

func TestSum(t *testing.T) {
	x := Point{X: 1, Y: 2}
	if x.Sum() != 3 {
		t.Fatal("sum")
	}
}
`

func runText(t *testing.T, text string) *Output {
	t.Helper()
	f, err := goast.Load(goast.WithBytes([]byte(demoSrc)), goast.WithSourceName("demo.go"))
	require.NoError(t, err)
	tree, err := f.Tree()
	require.NoError(t, err)

	p, err := CompileText(text, f.Registry)
	require.NoError(t, err)
	out, err := p.Run(tree, FileDescriber(f))
	require.NoError(t, err)
	return out
}

func names(r *query.Result[any]) []string {
	return query.Map(r, func(m query.Match[any]) string { return goast.NameOf(m.Node) })
}

func TestRun(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "find", text: "find FuncDecl", want: []string{"Sum", "TestSum"}},
		{name: "filter by name", text: `find FuncDecl | filter 'name startsWith "Test"'`, want: []string{"TestSum"}},
		{name: "not", text: `find FuncDecl | not 'name startsWith "Test"'`, want: []string{"Sum"}},
		{name: "children chain", text: "find FuncDecl | children Ident", want: []string{"Sum", "TestSum"}},
		{name: "first and last", text: "find Ident | filter 'name == \"x\"' | last", want: []string{"x"}},
		{name: "eq from end", text: "find FuncDecl | eq -2", want: []string{"Sum"}},
		{name: "parents", text: "find ReturnStmt | parents FuncDecl", want: []string{"Sum"}},
		{name: "siblings any kind", text: "find TypeSpec | parent GenDecl | siblings FuncDecl", want: []string{"Sum", "TestSum"}},
		{name: "next", text: "find GenDecl | next FuncDecl", want: []string{"Sum"}},
		{name: "line numbers", text: "find CallExpr | filter 'line == 12'", want: []string{"t.Fatal"}},
		{name: "source text", text: `find BasicLit | filter 'text == "\"sum\""'`, want: []string{`"sum"`}},
		{name: "path and depth", text: "find * | filter 'depth == 1 && index == 0'", want: []string{"demo"}},
		{name: "next until", text: `find Ident | filter 'name == "demo"' | next_until * 'kind == "FuncDecl" && name == "TestSum"'`, want: []string{"type", "Sum"}},
		{name: "prev until", text: `find FuncDecl | last | prev_until * 'kind == "GenDecl"'`, want: []string{"Sum"}},
		{name: "unknown names are empty", text: `find FuncDecl | filter 'name == "nope"'`, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runText(t, tt.text)
			assert.Nil(t, out.Verdict)
			assert.Equal(t, tt.want, names(out.Result))
		})
	}
}

func TestRun_Verdicts(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{text: "find FuncDecl | has", want: true},
		{text: "find SelectStmt | has", want: false},
		{text: `find FuncDecl | is 'name == "Sum"'`, want: true},
		{text: `find FuncDecl | is 'depth > 1'`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			out := runText(t, tt.text)
			require.NotNil(t, out.Verdict)
			assert.Equal(t, tt.want, *out.Verdict)
			assert.NotNil(t, out.Result)
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	reg := goast.NewRegistry(false)

	t.Run("unknown kind", func(t *testing.T) {
		_, err := CompileText("find FuncDecl | children Blok", reg)
		require.Error(t, err)
		assert.ErrorIs(t, err, treeqerrors.ErrPipeline)
		assert.ErrorIs(t, err, treeqerrors.ErrUnknownKind)
		var perr *treeqerrors.PipelineError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, 1, perr.Step)
	})

	t.Run("comment kinds need comments", func(t *testing.T) {
		_, err := CompileText("find CommentGroup", reg)
		assert.ErrorIs(t, err, treeqerrors.ErrUnknownKind)
	})

	t.Run("invalid expression", func(t *testing.T) {
		_, err := CompileText("find Ident | filter 'name ==='", reg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid expression")
	})

	t.Run("non boolean expression", func(t *testing.T) {
		_, err := CompileText("find Ident | filter 'name'", reg)
		require.Error(t, err)
		assert.ErrorIs(t, err, treeqerrors.ErrPipeline)
	})

	t.Run("unknown variable", func(t *testing.T) {
		_, err := CompileText("find Ident | filter 'colour == 1'", reg)
		require.Error(t, err)
	})

	t.Run("nil plan", func(t *testing.T) {
		_, err := Compile(nil, reg)
		assert.ErrorIs(t, err, treeqerrors.ErrPipeline)
	})
}

func TestRun_RuntimeError(t *testing.T) {
	f, err := goast.Load(goast.WithBytes([]byte(demoSrc)))
	require.NoError(t, err)
	tree, err := f.Tree()
	require.NoError(t, err)

	p, err := CompileText("find FuncDecl | filter 'path[5] == 1'", f.Registry)
	require.NoError(t, err)
	_, err = p.Run(tree, FileDescriber(f))
	require.Error(t, err)
	var perr *treeqerrors.PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Step)
	assert.Equal(t, "filter", perr.Op)
}

func TestRun_NilDescriber(t *testing.T) {
	f, err := goast.Load(goast.WithBytes([]byte(demoSrc)))
	require.NoError(t, err)
	tree, err := f.Tree()
	require.NoError(t, err)

	p, err := CompileText(`find FuncDecl | filter 'name == ""'`, f.Registry)
	require.NoError(t, err)
	out, err := p.Run(tree, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Result.Len())
	assert.Equal(t, "find FuncDecl | filter 'name == \"\"'", p.Plan().String())
}
