package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/treeq/nodepath"
	"github.com/erraggy/treeq/query"
)

func TestResult_Eq(t *testing.T) {
	idents := query.Find[*Ident](newPointTree(t))

	tests := []struct {
		name string
		i    int
		want []string
	}{
		{name: "first", i: 0, want: []string{"Point"}},
		{name: "middle", i: 1, want: []string{"x"}},
		{name: "last from end", i: -1, want: []string{"y"}},
		{name: "first from end", i: -3, want: []string{"Point"}},
		{name: "past end", i: 3, want: []string{}},
		{name: "before start", i: -4, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, identNames(idents.Eq(tt.i)))
		})
	}

	assert.Equal(t, []string{"Point"}, identNames(idents.First()))
	assert.Equal(t, []string{"y"}, identNames(idents.Last()))
}

func TestResult_EmptyEdges(t *testing.T) {
	empty := query.Find[*Ident](newPointTree(t)).Eq(10)
	assert.False(t, empty.Has())
	assert.Equal(t, 0, empty.First().Len())
	assert.Equal(t, 0, empty.Last().Len())
	assert.Equal(t, 0, query.Find[*Ident](empty).Len())
	assert.Equal(t, 0, query.Parent[*FieldValue](empty).Len())
	_, ok := empty.At(0)
	assert.False(t, ok)
}

func TestResult_FilterNotIs(t *testing.T) {
	idents := query.Find[*Ident](newPointTree(t))
	lower := func(m query.Match[*Ident]) bool { return m.Node.Name != "Point" }

	assert.Equal(t, []string{"x", "y"}, identNames(idents.Filter(lower)))
	assert.Equal(t, []string{"Point"}, identNames(idents.Not(lower)))
	assert.True(t, idents.Is(lower))
	assert.False(t, idents.Is(func(m query.Match[*Ident]) bool { return m.Node.Name == "z" }))

	// Operations never alter their input.
	assert.Equal(t, 3, idents.Len())
}

func TestResult_Accessors(t *testing.T) {
	idents := query.Find[*Ident](newPointTree(t))

	nodes := idents.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, "x", nodes[1].Name)

	matches := idents.Matches()
	matches[0] = query.Match[*Ident]{}
	first, _ := idents.At(0)
	assert.Equal(t, "Point", first.Node.Name, "Matches returns a copy")

	var seen []int
	for i, m := range idents.All() {
		seen = append(seen, i)
		if m.Node.Name == "x" {
			break
		}
	}
	assert.Equal(t, []int{0, 1}, seen)
}

func TestMatch_String(t *testing.T) {
	idents := query.Find[*Ident](newPointTree(t))
	m, _ := idents.At(2)
	assert.Equal(t, "Ident@[3 0 0]", m.String())
	assert.Equal(t, "Ident", m.Kind().Name())

	other, _ := idents.At(1)
	assert.False(t, m.Equal(other))
	assert.Equal(t, 1, m.Compare(other))
}

func TestMap(t *testing.T) {
	idents := query.Find[*Ident](newPointTree(t))
	depths := query.Map(idents, func(m query.Match[*Ident]) int { return len(m.Path) })
	assert.Equal(t, []int{3, 3, 3}, depths)

	assert.Empty(t, query.Map(idents.Eq(9), func(m query.Match[*Ident]) int { return 0 }))
}

func TestResult_PathsAreCopies(t *testing.T) {
	idents := query.Find[*Ident](newPointTree(t))
	want := []nodepath.Path{{0, 0, 0}, {2, 0, 0}, {3, 0, 0}}
	last := idents.Last()

	ms := idents.Matches()
	ms[0].Path[0] = 9
	ps := idents.Paths()
	ps[1][0] = 7
	m, ok := idents.At(2)
	require.True(t, ok)
	m.Path[2] = 5
	for _, m := range idents.All() {
		m.Path[1] = 4
	}
	query.Map(idents, func(m query.Match[*Ident]) int {
		m.Path[0] = 8
		return 0
	})
	idents.Filter(func(m query.Match[*Ident]) bool {
		m.Path[0] = 6
		return true
	})

	assert.Equal(t, want, idents.Paths())
	assert.Equal(t, []nodepath.Path{{3, 0, 0}}, last.Paths())
	assert.Equal(t, []string{"0.0.0", "2.0.0", "3.0.0"}, keys(idents))
}
