package walker

import "github.com/erraggy/treeq/nodepath"

// Option configures the Walker.
type Option func(*Walker)

// WithBasePath sets the path assigned to the walk's starting node. Every
// visited path is base ++ relative path. Use it to walk a subtree while keeping
// paths absolute with respect to the whole tree.
func WithBasePath(base nodepath.Path) Option {
	return func(w *Walker) {
		w.base = base.Clone()
	}
}

// WithMaxDepth bounds how many nesting levels below the starting node are
// visited. A depth of 1 visits the starting node and its immediate children.
// If depth is <= 0, the walk is unbounded.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		} else {
			w.maxDepth = 0
		}
	}
}

// WithLogger sets the logger used for traversal diagnostics.
// A nil logger keeps the default no-op logger.
func WithLogger(logger Logger) Option {
	return func(w *Walker) {
		if logger != nil {
			w.logger = logger
		}
	}
}
