package walker

import (
	"github.com/erraggy/treeq/grammar"
	"github.com/erraggy/treeq/nodepath"
)

// Position is one visited position captured by [CollectPositions].
type Position struct {
	// Node is the element at this position.
	Node any
	// Kind is the node's kind.
	Kind grammar.Kind
	// Path is the node's absolute path.
	Path nodepath.Path
	// Depth is the nesting level below the walk's starting node.
	Depth int
}

// CollectPositions walks root and returns every registered position in
// document order.
func CollectPositions(reg *grammar.Registry, root any, opts ...Option) ([]Position, error) {
	var out []Position
	_, err := Walk(reg, root, func(wc *WalkContext, node any) Action {
		out = append(out, Position{Node: node, Kind: wc.Kind, Path: wc.Path, Depth: wc.Depth})
		return Continue
	}, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// KindCount is the number of positions of one kind.
type KindCount struct {
	Kind  grammar.Kind
	Count int
}

// CountKinds walks root and counts positions per kind. Kinds are returned in
// order of first appearance.
func CountKinds(reg *grammar.Registry, root any, opts ...Option) ([]KindCount, error) {
	index := make(map[grammar.Kind]int)
	var out []KindCount
	_, err := Walk(reg, root, func(wc *WalkContext, _ any) Action {
		i, ok := index[wc.Kind]
		if !ok {
			i = len(out)
			index[wc.Kind] = i
			out = append(out, KindCount{Kind: wc.Kind})
		}
		out[i].Count++
		return Continue
	}, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindPath walks root and returns the node at exactly path, stopping as soon as
// it is found. Positions that cannot contain path are not descended into.
func FindPath(reg *grammar.Registry, root any, path nodepath.Path, opts ...Option) (any, bool, error) {
	var found any
	ok := false
	_, err := Walk(reg, root, func(wc *WalkContext, node any) Action {
		switch {
		case wc.Path.Equal(path):
			found, ok = node, true
			return Stop
		case path.HasPrefix(wc.Path):
			return Continue
		default:
			return SkipChildren
		}
	}, opts...)
	if err != nil {
		return nil, false, err
	}
	return found, ok, nil
}
