package walker

import (
	"fmt"

	"github.com/erraggy/treeq/grammar"
	"github.com/erraggy/treeq/nodepath"
	"github.com/erraggy/treeq/treeqerrors"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	// Skipped children still occupy their sibling indexes.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Handler is called once per visited position, in depth-first document order.
type Handler func(wc *WalkContext, node any) Action

// Walker traverses a tree through a grammar registry and calls a handler for
// every registered position.
type Walker struct {
	// Configuration
	base     nodepath.Path
	maxDepth int
	logger   Logger

	// Internal state
	registry *grammar.Registry
	handler  Handler
	stopped  bool
	visited  int
	skipped  int
}

// New creates a new Walker with default settings: root base path, no depth
// bound, and a no-op logger.
func New() *Walker {
	return &Walker{
		base:   nodepath.Root(),
		logger: NopLogger{},
	}
}

// Stats summarizes a completed walk.
type Stats struct {
	// Visited counts positions passed to the handler.
	Visited int
	// Skipped counts non-nil sub-positions dropped because their kind is not registered.
	Skipped int
	// Stopped is true when a handler returned Stop.
	Stopped bool
}

// Walk traverses root depth-first and calls fn for every position whose kind
// is registered in reg.
//
// The starting node is visited at the base path. Its children are numbered
// 0, 1, 2, ... in the order the grammar reports them, counting only registered
// sub-positions, and the same rule applies recursively. Walk returns an error
// only when it is misconfigured: a nil registry or handler, or a root that is
// nil or of an unregistered kind.
func Walk(reg *grammar.Registry, root any, fn Handler, opts ...Option) (Stats, error) {
	w := New()
	for _, opt := range opts {
		opt(w)
	}

	if reg == nil {
		return Stats{}, &treeqerrors.ConfigError{Option: "registry", Message: "walker: nil grammar registry"}
	}
	if fn == nil {
		return Stats{}, &treeqerrors.ConfigError{Option: "handler", Message: "walker: nil handler"}
	}
	if grammar.IsNil(root) {
		return Stats{}, &treeqerrors.ConfigError{Option: "root", Message: "walker: nil root node"}
	}
	if !reg.Traversable(root) {
		return Stats{}, &treeqerrors.ConfigError{
			Option:  "root",
			Value:   grammar.KindOf(root).String(),
			Message: fmt.Sprintf("walker: root kind is not registered in grammar %q", reg.Name()),
		}
	}

	w.registry = reg
	w.handler = fn
	w.walk(root)
	return Stats{Visited: w.visited, Skipped: w.skipped, Stopped: w.stopped}, nil
}

// walk performs the actual traversal.
func (w *Walker) walk(root any) {
	w.stopped = false
	w.visited = 0
	w.skipped = 0
	w.visit(root, nodepath.Root(), 0)
}

// visit handles one position and then its registered children. The relative
// path is threaded by value; each child receives its own extended copy.
func (w *Walker) visit(node any, rel nodepath.Path, index int) {
	wc := &WalkContext{
		Path:  w.absolute(rel),
		Depth: len(rel),
		Index: index,
		Kind:  grammar.KindOf(node),
	}
	w.visited++
	if !w.handleAction(w.handler(wc, node)) {
		return
	}
	if w.maxDepth > 0 && len(rel) >= w.maxDepth {
		return
	}

	next := 0
	w.registry.Visit(node, func(child any) {
		if w.stopped {
			return
		}
		if !w.registry.Traversable(child) {
			if !grammar.IsNil(child) {
				w.skipped++
				w.logger.Debug("skipping unregistered kind",
					"kind", grammar.KindOf(child).String(),
					"parent", wc.Path.String(),
					"grammar", w.registry.Name())
			}
			return
		}
		w.visit(child, rel.Append(next), next)
		next++
	})
}

// absolute joins the base path and a relative path into a fresh slice.
func (w *Walker) absolute(rel nodepath.Path) nodepath.Path {
	out := make(nodepath.Path, 0, len(w.base)+len(rel))
	out = append(out, w.base...)
	return append(out, rel...)
}

// handleAction processes the action returned by a handler.
// Returns true if walking should continue to children.
func (w *Walker) handleAction(action Action) bool {
	switch action {
	case Stop:
		w.stopped = true
		return false
	case SkipChildren:
		return false
	default:
		return !w.stopped
	}
}
