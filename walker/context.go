package walker

import (
	"github.com/erraggy/treeq/grammar"
	"github.com/erraggy/treeq/nodepath"
)

// WalkContext provides contextual information about the current node being visited.
type WalkContext struct {
	// Path is the absolute path of the current node. Each WalkContext holds its
	// own slice, so handlers may retain it.
	Path nodepath.Path

	// Depth is the number of nesting levels below the walk's starting node.
	// The starting node has depth 0 regardless of the base path.
	Depth int

	// Index is the node's sibling index among registered sub-positions of its
	// parent. It is 0 for the starting node.
	Index int

	// Kind is the node's kind.
	Kind grammar.Kind
}

// IsStart reports whether the current node is the walk's starting node.
func (wc *WalkContext) IsStart() bool {
	return wc.Depth == 0
}

// ParentPath returns the path of the current node's parent, if it has one.
func (wc *WalkContext) ParentPath() (nodepath.Path, bool) {
	return wc.Path.Parent()
}
