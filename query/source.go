package query

import (
	"slices"

	"github.com/erraggy/treeq/nodepath"
	"github.com/erraggy/treeq/walker"
)

// Source is anything a query can start from: a [*Tree] holds its root, a
// [*Result] holds its matches. Every source carries the tree it derives from.
type Source interface {
	tree() *Tree
	held() []anchor
}

// anchor is a held position with the kind erased.
type anchor struct {
	node any
	path nodepath.Path
}

// collect walks each anchor to at most maxDepth levels below it (0 means
// unbounded) and returns the positions sel accepts in document order.
func collect[K any](t *Tree, from []anchor, sel Selector[K], maxDepth int) []Match[K] {
	var out []Match[K]
	for _, a := range from {
		t.walk(a.node, a.path, maxDepth, func(wc *walker.WalkContext, node any) walker.Action {
			if k, ok := sel.match(node); ok {
				out = append(out, Match[K]{Node: k, Path: wc.Path})
			}
			return walker.Continue
		})
	}
	return normalize(out)
}

// scan collects every position of the whole tree that sel accepts.
func scan[K any](t *Tree, sel Selector[K]) []Match[K] {
	return collect(t, t.held(), sel, 0)
}

// normalize sorts matches into document order and drops repeated paths,
// keeping the first occurrence.
func normalize[K any](ms []Match[K]) []Match[K] {
	slices.SortStableFunc(ms, func(a, b Match[K]) int {
		return nodepath.Compare(a.Path, b.Path)
	})
	return slices.CompactFunc(ms, func(a, b Match[K]) bool {
		return a.Path.Equal(b.Path)
	})
}

// heldPaths returns the paths of every position src holds.
func heldPaths(src Source) []nodepath.Path {
	held := src.held()
	out := make([]nodepath.Path, 0, len(held))
	for _, a := range held {
		out = append(out, a.path)
	}
	return out
}
