package query

import (
	"iter"

	"github.com/erraggy/treeq/nodepath"
)

// Result is an ordered, duplicate-free set of matches of kind K, together with
// the tree they were found in. Results are immutable: every operation returns a
// new Result and leaves its input untouched, and every path handed out, to
// callers or to predicates, is a copy.
type Result[K any] struct {
	t       *Tree
	matches []Match[K]
}

// newResult wraps matches that are already in document order without repeats.
func newResult[K any](t *Tree, matches []Match[K]) *Result[K] {
	return &Result[K]{t: t, matches: matches}
}

// Tree returns the tree the result derives from.
func (r *Result[K]) Tree() *Tree {
	return r.t
}

func (r *Result[K]) tree() *Tree {
	return r.t
}

func (r *Result[K]) held() []anchor {
	out := make([]anchor, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, anchor{node: any(m.Node), path: m.Path})
	}
	return out
}

// Len returns the number of matches.
func (r *Result[K]) Len() int {
	return len(r.matches)
}

// Has reports whether the result holds at least one match.
func (r *Result[K]) Has() bool {
	return len(r.matches) > 0
}

// At returns the match at index i in document order.
func (r *Result[K]) At(i int) (Match[K], bool) {
	if i < 0 || i >= len(r.matches) {
		return Match[K]{}, false
	}
	return r.matches[i].detached(), true
}

// Eq narrows the result to the match at index i. A negative i counts from the
// end, so Eq(-1) is the last match. An index out of range yields an empty
// result. Use At for the match itself as a (Match, bool) pair.
func (r *Result[K]) Eq(i int) *Result[K] {
	if i < 0 {
		i += len(r.matches)
	}
	m, ok := r.At(i)
	if !ok {
		return newResult[K](r.t, nil)
	}
	return newResult(r.t, []Match[K]{m})
}

// First is Eq(0).
func (r *Result[K]) First() *Result[K] {
	return r.Eq(0)
}

// Last is Eq(-1).
func (r *Result[K]) Last() *Result[K] {
	return r.Eq(-1)
}

// Filter keeps the matches for which pred returns true.
func (r *Result[K]) Filter(pred func(Match[K]) bool) *Result[K] {
	var out []Match[K]
	for _, m := range r.matches {
		if pred(m.detached()) {
			out = append(out, m)
		}
	}
	return newResult(r.t, out)
}

// Not keeps the matches for which pred returns false.
func (r *Result[K]) Not(pred func(Match[K]) bool) *Result[K] {
	return r.Filter(func(m Match[K]) bool { return !pred(m) })
}

// Is reports whether pred holds for at least one match.
func (r *Result[K]) Is(pred func(Match[K]) bool) bool {
	for _, m := range r.matches {
		if pred(m.detached()) {
			return true
		}
	}
	return false
}

// Matches returns a copy of the matches in document order. Paths are copied
// too.
func (r *Result[K]) Matches() []Match[K] {
	out := make([]Match[K], 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, m.detached())
	}
	return out
}

// Nodes returns the matched nodes in document order.
func (r *Result[K]) Nodes() []K {
	out := make([]K, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, m.Node)
	}
	return out
}

// Paths returns the matched paths in document order.
func (r *Result[K]) Paths() []nodepath.Path {
	out := make([]nodepath.Path, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, m.Path.Clone())
	}
	return out
}

// All iterates over the matches with their indexes.
func (r *Result[K]) All() iter.Seq2[int, Match[K]] {
	return func(yield func(int, Match[K]) bool) {
		for i, m := range r.matches {
			if !yield(i, m.detached()) {
				return
			}
		}
	}
}

// Map applies f to every match of r, in document order.
func Map[K, B any](r *Result[K], f func(Match[K]) B) []B {
	out := make([]B, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, f(m.detached()))
	}
	return out
}
