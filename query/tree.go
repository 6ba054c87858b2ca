package query

import (
	"github.com/erraggy/treeq/grammar"
	"github.com/erraggy/treeq/nodepath"
	"github.com/erraggy/treeq/treeqerrors"
	"github.com/erraggy/treeq/walker"
)

// Tree is the retained root that every result derives from. It pairs the root
// node with the grammar used to traverse it. A Tree is read-only and may be
// queried from multiple goroutines at once.
type Tree struct {
	root     any
	registry *grammar.Registry
	logger   walker.Logger
}

// Option configures a Tree.
type Option func(*Tree)

// WithLogger sets the logger passed to every traversal of the tree.
func WithLogger(logger walker.Logger) Option {
	return func(t *Tree) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New anchors a tree at root. It fails when reg or root is nil, or when root's
// kind is not registered in reg: such a tree could never produce a match.
func New(reg *grammar.Registry, root any, opts ...Option) (*Tree, error) {
	if reg == nil {
		return nil, &treeqerrors.ConfigError{Option: "registry", Message: "query: nil grammar registry"}
	}
	if grammar.IsNil(root) {
		return nil, &treeqerrors.ConfigError{Option: "root", Message: "query: nil root node"}
	}
	if !reg.Traversable(root) {
		return nil, &treeqerrors.ConfigError{
			Option:  "root",
			Value:   grammar.KindOf(root).String(),
			Message: "query: root kind is not registered in grammar " + reg.Name(),
		}
	}
	t := &Tree{root: root, registry: reg, logger: walker.NopLogger{}}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Root returns the root node.
func (t *Tree) Root() any {
	return t.root
}

// Registry returns the grammar used to traverse the tree.
func (t *Tree) Registry() *grammar.Registry {
	return t.registry
}

// At returns the node at exactly path.
func (t *Tree) At(path nodepath.Path) (any, bool) {
	node, ok, err := walker.FindPath(t.registry, t.root, path, walker.WithLogger(t.logger))
	if err != nil {
		return nil, false
	}
	return node, ok
}

// tree implements Source.
func (t *Tree) tree() *Tree {
	return t
}

// held implements Source: a tree holds its root at the root path.
func (t *Tree) held() []anchor {
	return []anchor{{node: t.root, path: nodepath.Root()}}
}

// walk runs one traversal from node at base. New guarantees the registry and
// root are valid, and every held node was produced by a traversal of the same
// registry, so the walk cannot fail.
func (t *Tree) walk(node any, base nodepath.Path, maxDepth int, fn walker.Handler) {
	_, _ = walker.Walk(t.registry, node, fn,
		walker.WithBasePath(base),
		walker.WithMaxDepth(maxDepth),
		walker.WithLogger(t.logger),
	)
}
