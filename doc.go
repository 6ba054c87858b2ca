// Package treeq provides a declarative, jQuery-style query engine for
// heterogeneous syntax trees.
//
// A tree is made of many distinct node kinds defined by an external grammar.
// treeq lets a caller select every node of a chosen kind anywhere inside a
// subtree, or only among its immediate children, and then chain structural
// operators (ancestors, siblings, following and preceding nodes, filtering,
// indexing) without writing a recursive walk.
//
// # Overview
//
// The module consists of these packages:
//
//   - nodepath: integer-vector paths that address positions and define document order
//   - grammar: the registry mapping node kinds to traversal routines
//   - walker: depth-first, depth-bounded traversal through a registry
//   - query: trees, results and the full query algebra
//   - goast: a ready-made grammar for Go syntax trees from go/ast
//   - treeqerrors: structured error types
//
// # Quick Start
//
// Query a Go source file:
//
//	f, err := goast.Load(goast.WithFilePath("main.go"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tree, err := f.Tree()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	calls := query.Find[*ast.CallExpr](tree)
//	for _, m := range calls.All() {
//	    fmt.Println(goast.NameOf(m.Node), f.Position(m.Node))
//	}
//
// Chain operators on the result:
//
//	fields := query.Find[*ast.KeyValueExpr](tree).Filter(func(m query.Match[*ast.KeyValueExpr]) bool {
//	    return m.Path[0] == 3
//	})
//	keys := query.Children[*ast.Ident](fields)
//
// # Custom Grammars
//
// Any tree can be queried once its kinds are registered:
//
//	reg := grammar.NewRegistry("shapes")
//	grammar.Register(reg, func(g *Group, visit func(any)) {
//	    for _, s := range g.Shapes {
//	        visit(s)
//	    }
//	})
//	grammar.RegisterLeaf[*Circle](reg)
//	tree, err := query.New(reg, root)
//
// Kinds left out of the registry are invisible: they are never matched and
// nothing beneath them is visited.
//
// # Command Line
//
// The treeq command runs textual query pipelines over Go files and serves
// the same queries over MCP:
//
//	treeq query -q 'find FuncDecl | filter "name startsWith \"Test\""' ./...
//	treeq kinds
//	treeq mcp
package treeq
