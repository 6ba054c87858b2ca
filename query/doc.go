// Package query implements a declarative, jQuery-style query engine over
// trees of heterogeneous node kinds.
//
// A [Tree] anchors a root node and the [grammar.Registry] that knows how to
// traverse it. Queries start from a tree, or from any earlier [Result], and
// return a new Result: an ordered, duplicate-free set of [Match] values, each
// pairing a node of the requested kind with its [nodepath.Path].
//
// Go methods cannot take type parameters, so the algebra is a set of package
// functions parameterised by the requested kind:
//
//	tree, err := query.New(reg, file)
//	if err != nil {
//	    return err
//	}
//	fields := query.Find[*ast.Field](tree)
//	names := query.Children[*ast.Ident](fields.First())
//
// Every function also has an Of form taking a [Selector], for kinds only known
// at run time:
//
//	kind, err := reg.Resolve("FuncDecl")
//	funcs := query.FindOf(tree, query.ByKind(kind))
//
// # Structural Operators
//
// Find descends without limit and Children one level; both visit the held
// positions themselves. Parent, Parents, Next, Prev, NextAll, PrevAll,
// NextUntil, PrevUntil and Siblings work on paths alone:
// they compute target positions from the held paths and then select the
// requested kind from a fresh traversal of the whole tree. A held root has no
// parent and no siblings.
//
// # Ordering
//
// Results are always sorted by path, which is document order, and never hold
// two matches at the same path. Filter, Not and Eq preserve order.
package query
