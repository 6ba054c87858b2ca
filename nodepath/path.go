// Package nodepath provides the positional addressing scheme used by treeq.
//
// A [Path] is a sequence of non-negative sibling indexes. Each segment counts
// the traversable sub-positions visited at one nesting level, in the order the
// grammar declares them. Paths identify nodes within a single tree and, compared
// lexicographically, define document order.
//
//	root            []
//	first child     [0]
//	its 3rd child   [0 2]
package nodepath

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Path is the position of a node relative to the root of its tree.
// The empty path addresses the root itself.
type Path []int

// Root returns the empty path.
func Root() Path {
	return Path{}
}

// Of builds a path from its segments.
func Of(segments ...int) Path {
	return Path(slices.Clone(segments))
}

// Len returns the number of segments, which is the nesting depth below the root.
func (p Path) Len() int {
	return len(p)
}

// IsRoot reports whether p addresses the root.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Clone returns a copy of p that shares no storage with it.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Append returns a new path with segment i added. The receiver is never modified.
func (p Path) Append(i int) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, i)
}

// Last returns the final segment. It returns false for the root path.
func (p Path) Last() (int, bool) {
	if len(p) == 0 {
		return 0, false
	}
	return p[len(p)-1], true
}

// Parent returns p without its final segment. The root has no parent.
func (p Path) Parent() (Path, bool) {
	if len(p) == 0 {
		return nil, false
	}
	return p[:len(p)-1].Clone(), true
}

// NextSibling returns the path of the following slot at the same level.
func (p Path) NextSibling() (Path, bool) {
	if len(p) == 0 {
		return nil, false
	}
	out := p.Clone()
	out[len(out)-1]++
	return out, true
}

// PrevSibling returns the path of the preceding slot at the same level.
// A first child (last segment 0) has no previous sibling.
func (p Path) PrevSibling() (Path, bool) {
	if len(p) == 0 || p[len(p)-1] == 0 {
		return nil, false
	}
	out := p.Clone()
	out[len(out)-1]--
	return out, true
}

// Ancestors returns every strict prefix of p, shortest first.
// The root path is included for any non-root p.
func (p Path) Ancestors() []Path {
	if len(p) == 0 {
		return nil
	}
	out := make([]Path, 0, len(p))
	for i := 0; i < len(p); i++ {
		out = append(out, p[:i].Clone())
	}
	return out
}

// HasPrefix reports whether prefix is a (not necessarily strict) prefix of p.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return slices.Equal(p[:len(prefix)], prefix)
}

// Equal reports whether p and q address the same position.
func (p Path) Equal(q Path) bool {
	return slices.Equal(p, q)
}

// Key returns a canonical string form suitable as a map key.
// The root's key is the empty string; other keys join segments with dots.
func (p Path) Key() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for i, seg := range p {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(seg))
	}
	return b.String()
}

// String renders the path as a bracketed list, e.g. "[0 2 1]".
func (p Path) String() string {
	return fmt.Sprint([]int(p))
}

// Parse is the inverse of [Path.Key].
func Parse(key string) (Path, error) {
	if key == "" {
		return Path{}, nil
	}
	parts := strings.Split(key, ".")
	out := make(Path, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("nodepath: invalid segment %q in %q: %w", part, key, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("nodepath: negative segment %d in %q", n, key)
		}
		out = append(out, n)
	}
	return out, nil
}

// Compare orders paths lexicographically. A path sorts before every path it prefixes.
func Compare(a, b Path) int {
	return slices.Compare(a, b)
}

// Less reports whether a sorts before b in document order.
func Less(a, b Path) bool {
	return Compare(a, b) < 0
}

// Sort orders paths in document order, in place.
func Sort(paths []Path) {
	slices.SortFunc(paths, Compare)
}

// Set is an unordered collection of paths keyed by [Path.Key].
type Set map[string]struct{}

// NewSet returns a set holding the given paths.
func NewSet(paths ...Path) Set {
	s := make(Set, len(paths))
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Add inserts p.
func (s Set) Add(p Path) {
	s[p.Key()] = struct{}{}
}

// Has reports whether p is in the set.
func (s Set) Has(p Path) bool {
	_, ok := s[p.Key()]
	return ok
}

// Len returns the number of distinct paths.
func (s Set) Len() int {
	return len(s)
}
