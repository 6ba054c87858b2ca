package query

import (
	"fmt"

	"github.com/erraggy/treeq/grammar"
	"github.com/erraggy/treeq/nodepath"
)

// Match pairs a node of the requested kind with its absolute path.
//
// Two matches are the same match when their paths are equal, whatever nodes
// they hold: within one tree a path identifies exactly one position.
type Match[K any] struct {
	Node K
	Path nodepath.Path
}

// Equal reports whether m and other address the same position.
func (m Match[K]) Equal(other Match[K]) bool {
	return m.Path.Equal(other.Path)
}

// Compare orders matches by document order of their paths.
func (m Match[K]) Compare(other Match[K]) int {
	return nodepath.Compare(m.Path, other.Path)
}

// Kind returns the dynamic kind of the matched node.
func (m Match[K]) Kind() grammar.Kind {
	return grammar.KindOf(any(m.Node))
}

// String renders the match as "Kind@[path]".
func (m Match[K]) String() string {
	return fmt.Sprintf("%s@%s", m.Kind().Name(), m.Path)
}

// detached returns m with its own copy of the path, so the caller may modify
// it without touching the result it came from.
func (m Match[K]) detached() Match[K] {
	m.Path = m.Path.Clone()
	return m
}
