package pipeline

import (
	"github.com/erraggy/treeq/goast"
	"github.com/erraggy/treeq/query"
)

// Describer supplies the source-level facts about a node that predicates can
// refer to. A nil Describer leaves name, line, column and text empty.
type Describer interface {
	Name(node any) string
	Position(node any) (line, column int)
	Text(node any) string
}

// Env is the set of variables available to predicate expressions.
type Env struct {
	// Kind is the short kind name, e.g. "FuncDecl".
	Kind string `expr:"kind"`
	// Type is the full Go type, e.g. "*ast.FuncDecl".
	Type string `expr:"type"`
	// Name is the node's name, if it has one.
	Name string `expr:"name"`
	// Path is the node's path.
	Path []int `expr:"path"`
	// Depth is the path length.
	Depth int `expr:"depth"`
	// Index is the last path segment, or -1 for the root.
	Index int `expr:"index"`
	// Line and Column locate the node in its source.
	Line   int `expr:"line"`
	Column int `expr:"column"`
	// Text is the node's source text.
	Text string `expr:"text"`
}

func newEnv(m query.Match[any], d Describer) Env {
	kind := m.Kind()
	index := -1
	if last, ok := m.Path.Last(); ok {
		index = last
	}
	env := Env{
		Kind:  kind.Name(),
		Type:  kind.String(),
		Path:  []int(m.Path),
		Depth: m.Path.Len(),
		Index: index,
	}
	if d != nil {
		env.Name = d.Name(m.Node)
		env.Line, env.Column = d.Position(m.Node)
		env.Text = d.Text(m.Node)
	}
	return env
}

type fileDescriber struct {
	f *goast.File
}

// FileDescriber describes nodes of a parsed Go file.
func FileDescriber(f *goast.File) Describer {
	return fileDescriber{f: f}
}

func (d fileDescriber) Name(node any) string {
	return goast.NameOf(node)
}

func (d fileDescriber) Position(node any) (int, int) {
	pos := d.f.Position(node)
	return pos.Line, pos.Column
}

func (d fileDescriber) Text(node any) string {
	return d.f.Text(node)
}
