package query

import (
	"github.com/erraggy/treeq/nodepath"
)

// Find returns every position of kind K at or below the positions src holds,
// in document order. Starting from a [*Tree], the root itself matches when it is
// of kind K.
func Find[K any](src Source) *Result[K] {
	return FindOf(src, Of[K]())
}

// FindOf is Find with an explicit selector.
func FindOf[K any](src Source, sel Selector[K]) *Result[K] {
	t := src.tree()
	return newResult(t, collect(t, src.held(), sel, 0))
}

// Query is an alias for Find.
func Query[K any](src Source) *Result[K] {
	return Find[K](src)
}

// QueryOf is an alias for FindOf.
func QueryOf[K any](src Source, sel Selector[K]) *Result[K] {
	return FindOf(src, sel)
}

// Children returns the positions of kind K at most one level below the
// positions src holds. A held position is visited too, so it is included when
// it is itself of kind K.
func Children[K any](src Source) *Result[K] {
	return ChildrenOf(src, Of[K]())
}

// ChildrenOf is Children with an explicit selector.
func ChildrenOf[K any](src Source, sel Selector[K]) *Result[K] {
	t := src.tree()
	return newResult(t, collect(t, src.held(), sel, 1))
}

// Parent returns the direct parent of each held position when it is of kind
// K. A held root has no parent.
func Parent[K any](src Source) *Result[K] {
	return ParentOf(src, Of[K]())
}

// ParentOf is Parent with an explicit selector.
func ParentOf[K any](src Source, sel Selector[K]) *Result[K] {
	targets := nodepath.NewSet()
	for _, p := range heldPaths(src) {
		if parent, ok := p.Parent(); ok {
			targets.Add(parent)
		}
	}
	return selectAt(src.tree(), sel, targets)
}

// Parents returns every strict ancestor of each held position, the root
// included, that is of kind K.
func Parents[K any](src Source) *Result[K] {
	return ParentsOf(src, Of[K]())
}

// ParentsOf is Parents with an explicit selector.
func ParentsOf[K any](src Source, sel Selector[K]) *Result[K] {
	targets := nodepath.NewSet()
	for _, p := range heldPaths(src) {
		for _, a := range p.Ancestors() {
			targets.Add(a)
		}
	}
	return selectAt(src.tree(), sel, targets)
}

// Next returns the position in the slot immediately after each held position
// when it is of kind K. The following slot is the only one considered.
func Next[K any](src Source) *Result[K] {
	return NextOf(src, Of[K]())
}

// NextOf is Next with an explicit selector.
func NextOf[K any](src Source, sel Selector[K]) *Result[K] {
	targets := nodepath.NewSet()
	for _, p := range heldPaths(src) {
		if next, ok := p.NextSibling(); ok {
			targets.Add(next)
		}
	}
	return selectAt(src.tree(), sel, targets)
}

// Prev returns the position in the slot immediately before each held position
// when it is of kind K. A held first child has no previous sibling.
func Prev[K any](src Source) *Result[K] {
	return PrevOf(src, Of[K]())
}

// PrevOf is Prev with an explicit selector.
func PrevOf[K any](src Source, sel Selector[K]) *Result[K] {
	targets := nodepath.NewSet()
	for _, p := range heldPaths(src) {
		if prev, ok := p.PrevSibling(); ok {
			targets.Add(prev)
		}
	}
	return selectAt(src.tree(), sel, targets)
}

// NextAll returns every later sibling of kind K. Under a parent holding
// several positions, the earliest of them sets the bound, so the result is the
// union of each held position's later siblings.
func NextAll[K any](src Source) *Result[K] {
	return NextAllOf(src, Of[K]())
}

// NextAllOf is NextAll with an explicit selector.
func NextAllOf[K any](src Source, sel Selector[K]) *Result[K] {
	t := src.tree()
	bounds := siblingBounds(heldPaths(src), func(held, cur int) bool { return held < cur })
	if len(bounds) == 0 {
		return newResult[K](t, nil)
	}
	return newResult(t, keepSiblings(scan(t, sel), bounds, func(last, bound int) bool { return last > bound }))
}

// PrevAll returns every earlier sibling of kind K. Under a parent holding
// several positions, the latest of them sets the bound.
func PrevAll[K any](src Source) *Result[K] {
	return PrevAllOf(src, Of[K]())
}

// PrevAllOf is PrevAll with an explicit selector.
func PrevAllOf[K any](src Source, sel Selector[K]) *Result[K] {
	t := src.tree()
	bounds := siblingBounds(heldPaths(src), func(held, cur int) bool { return held > cur })
	if len(bounds) == 0 {
		return newResult[K](t, nil)
	}
	return newResult(t, keepSiblings(scan(t, sel), bounds, func(last, bound int) bool { return last < bound }))
}

// NextUntil is NextAll cut short: under each parent, the first later sibling
// for which pred holds and everything after it are dropped. Parents where pred
// never holds are not cut.
func NextUntil[K any](src Source, pred func(Match[K]) bool) *Result[K] {
	return NextUntilOf(src, Of[K](), pred)
}

// NextUntilOf is NextUntil with an explicit selector.
func NextUntilOf[K any](src Source, sel Selector[K], pred func(Match[K]) bool) *Result[K] {
	all := NextAllOf(src, sel)
	stops := stopBounds(all.matches, pred, func(found, cur int) bool { return found < cur })
	return newResult(all.t, keepUnbounded(all.matches, stops, func(last, stop int) bool { return last < stop }))
}

// PrevUntil is PrevAll cut short: under each parent, the nearest earlier
// sibling for which pred holds and everything before it are dropped.
func PrevUntil[K any](src Source, pred func(Match[K]) bool) *Result[K] {
	return PrevUntilOf(src, Of[K](), pred)
}

// PrevUntilOf is PrevUntil with an explicit selector.
func PrevUntilOf[K any](src Source, sel Selector[K], pred func(Match[K]) bool) *Result[K] {
	all := PrevAllOf(src, sel)
	stops := stopBounds(all.matches, pred, func(found, cur int) bool { return found > cur })
	return newResult(all.t, keepUnbounded(all.matches, stops, func(last, stop int) bool { return last > stop }))
}

// Siblings returns the positions of kind K that share a parent with a held
// position. When every held position under a parent sits in the same slot,
// that slot is excluded; when they sit in different slots, none is.
func Siblings[K any](src Source) *Result[K] {
	return SiblingsOf(src, Of[K]())
}

// SiblingsOf is Siblings with an explicit selector.
func SiblingsOf[K any](src Source, sel Selector[K]) *Result[K] {
	t := src.tree()

	type slot struct {
		last  int
		mixed bool
	}
	parents := make(map[string]*slot)
	for _, p := range heldPaths(src) {
		parent, ok := p.Parent()
		if !ok {
			continue
		}
		last, _ := p.Last()
		s, seen := parents[parent.Key()]
		switch {
		case !seen:
			parents[parent.Key()] = &slot{last: last}
		case s.last != last:
			s.mixed = true
		}
	}
	if len(parents) == 0 {
		return newResult[K](t, nil)
	}

	var out []Match[K]
	for _, m := range scan(t, sel) {
		parent, ok := m.Path.Parent()
		if !ok {
			continue
		}
		s, held := parents[parent.Key()]
		if !held {
			continue
		}
		if last, _ := m.Path.Last(); !s.mixed && last == s.last {
			continue
		}
		out = append(out, m)
	}
	return newResult(t, out)
}

// selectAt scans the whole tree and keeps the positions in targets.
func selectAt[K any](t *Tree, sel Selector[K], targets nodepath.Set) *Result[K] {
	if targets.Len() == 0 {
		return newResult[K](t, nil)
	}
	var out []Match[K]
	for _, m := range scan(t, sel) {
		if targets.Has(m.Path) {
			out = append(out, m)
		}
	}
	return newResult(t, out)
}

// siblingBounds reduces held paths to one last segment per parent key. A
// candidate replaces the current bound when better(candidate, current).
func siblingBounds(paths []nodepath.Path, better func(held, cur int) bool) map[string]int {
	bounds := make(map[string]int)
	for _, p := range paths {
		parent, ok := p.Parent()
		if !ok {
			continue
		}
		last, _ := p.Last()
		key := parent.Key()
		if cur, seen := bounds[key]; !seen || better(last, cur) {
			bounds[key] = last
		}
	}
	return bounds
}

// keepSiblings keeps matches whose parent has a bound and whose last segment
// satisfies keep against it.
func keepSiblings[K any](ms []Match[K], bounds map[string]int, keep func(last, bound int) bool) []Match[K] {
	var out []Match[K]
	for _, m := range ms {
		parent, ok := m.Path.Parent()
		if !ok {
			continue
		}
		bound, held := bounds[parent.Key()]
		if !held {
			continue
		}
		if last, _ := m.Path.Last(); keep(last, bound) {
			out = append(out, m)
		}
	}
	return out
}

// stopBounds finds, per parent, the last segment of the match satisfying pred
// that better prefers.
func stopBounds[K any](ms []Match[K], pred func(Match[K]) bool, better func(found, cur int) bool) map[string]int {
	stops := make(map[string]int)
	for _, m := range ms {
		if !pred(m) {
			continue
		}
		parent, _ := m.Path.Parent()
		last, _ := m.Path.Last()
		key := parent.Key()
		if cur, seen := stops[key]; !seen || better(last, cur) {
			stops[key] = last
		}
	}
	return stops
}

// keepUnbounded keeps matches whose parent has no stop, or whose last segment
// satisfies keep against the stop.
func keepUnbounded[K any](ms []Match[K], stops map[string]int, keep func(last, stop int) bool) []Match[K] {
	var out []Match[K]
	for _, m := range ms {
		parent, _ := m.Path.Parent()
		stop, bounded := stops[parent.Key()]
		if last, _ := m.Path.Last(); !bounded || keep(last, stop) {
			out = append(out, m)
		}
	}
	return out
}
