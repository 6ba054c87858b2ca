// Package walker provides the depth-first traversal that underlies every treeq query.
//
// The walker knows nothing about node kinds beyond what a [grammar.Registry]
// tells it. Starting from any registered node it asks the registry for that
// node's sub-positions, assigns each registered one the next sibling index,
// and recurses, handing every position and its path to a [Handler].
//
// # Quick Start
//
// Print the path of every node below root:
//
//	_, err := walker.Walk(reg, root, func(wc *walker.WalkContext, node any) walker.Action {
//	    fmt.Println(wc.Path, wc.Kind.Name())
//	    return walker.Continue
//	})
//
// # Paths
//
// The starting node is visited at the base path (the root path unless
// [WithBasePath] is given). A child's path is its parent's path plus its
// sibling index. Sibling indexes count only sub-positions whose kind is
// registered, in the order the grammar reports them, so the same node gets the
// same path whether it is reached from the tree root or from a subtree walk that
// starts at an ancestor with the matching base path.
//
// Paths are threaded by value: every [WalkContext] carries its own slice and no
// mutable path stack is shared between calls.
//
// # Flow Control
//
// Handlers return an [Action] to control traversal:
//
//   - [Continue]: continue traversing children and siblings normally
//   - [SkipChildren]: skip all children of the current node, continue with siblings
//   - [Stop]: stop the entire walk immediately
//
// # Depth Bound
//
// [WithMaxDepth] limits descent. With depth 1 the walk visits the starting node
// and its immediate children only; grandchildren are never reached. A depth of
// zero or less means unbounded.
//
// # Unregistered Kinds
//
// Sub-positions whose kind is not registered are dropped silently: they are
// not passed to the handler, do not consume a sibling index, and are not
// descended into. Each drop is logged at debug level through the configured
// [Logger] and counted in [Stats.Skipped].
//
// # Built-in Collectors
//
//   - [CollectPositions]: every position in document order
//   - [CountKinds]: position counts per kind
//   - [FindPath]: the node at one exact path
package walker
