// Package goast is a grammar for Go syntax trees.
//
// [NewRegistry] registers every concrete go/ast node kind with a traversal
// routine that reports a node's direct children in field order, so any parsed
// Go file can be queried with package query:
//
//	f, err := goast.Load(goast.WithFilePath("main.go"))
//	if err != nil {
//	    return err
//	}
//	tree, err := f.Tree()
//	if err != nil {
//	    return err
//	}
//	for _, m := range query.Find[*ast.FuncDecl](tree).All() {
//	    fmt.Println(goast.NameOf(m.Node), f.Position(m.Node))
//	}
//
// Comments are dropped unless the file is loaded [WithComments]; the comment
// kinds are then registered too and occupy sibling indexes like any other node.
package goast
