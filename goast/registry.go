package goast

import (
	"go/ast"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/erraggy/treeq/grammar"
)

// Name is the name of registries built by NewRegistry.
const Name = "go/ast"

// nodeKinds lists one value of every concrete go/ast node kind except the
// comment kinds and the deprecated *ast.Package.
var nodeKinds = []ast.Node{
	// Structure
	(*ast.File)(nil),
	(*ast.Field)(nil),
	(*ast.FieldList)(nil),

	// Expressions and types
	(*ast.BadExpr)(nil),
	(*ast.Ident)(nil),
	(*ast.Ellipsis)(nil),
	(*ast.BasicLit)(nil),
	(*ast.FuncLit)(nil),
	(*ast.CompositeLit)(nil),
	(*ast.ParenExpr)(nil),
	(*ast.SelectorExpr)(nil),
	(*ast.IndexExpr)(nil),
	(*ast.IndexListExpr)(nil),
	(*ast.SliceExpr)(nil),
	(*ast.TypeAssertExpr)(nil),
	(*ast.CallExpr)(nil),
	(*ast.StarExpr)(nil),
	(*ast.UnaryExpr)(nil),
	(*ast.BinaryExpr)(nil),
	(*ast.KeyValueExpr)(nil),
	(*ast.ArrayType)(nil),
	(*ast.StructType)(nil),
	(*ast.FuncType)(nil),
	(*ast.InterfaceType)(nil),
	(*ast.MapType)(nil),
	(*ast.ChanType)(nil),

	// Statements
	(*ast.BadStmt)(nil),
	(*ast.DeclStmt)(nil),
	(*ast.EmptyStmt)(nil),
	(*ast.LabeledStmt)(nil),
	(*ast.ExprStmt)(nil),
	(*ast.SendStmt)(nil),
	(*ast.IncDecStmt)(nil),
	(*ast.AssignStmt)(nil),
	(*ast.GoStmt)(nil),
	(*ast.DeferStmt)(nil),
	(*ast.ReturnStmt)(nil),
	(*ast.BranchStmt)(nil),
	(*ast.BlockStmt)(nil),
	(*ast.IfStmt)(nil),
	(*ast.CaseClause)(nil),
	(*ast.SwitchStmt)(nil),
	(*ast.TypeSwitchStmt)(nil),
	(*ast.CommClause)(nil),
	(*ast.SelectStmt)(nil),
	(*ast.ForStmt)(nil),
	(*ast.RangeStmt)(nil),

	// Specs and declarations
	(*ast.ImportSpec)(nil),
	(*ast.ValueSpec)(nil),
	(*ast.TypeSpec)(nil),
	(*ast.BadDecl)(nil),
	(*ast.GenDecl)(nil),
	(*ast.FuncDecl)(nil),
}

var commentKinds = []ast.Node{
	(*ast.CommentGroup)(nil),
	(*ast.Comment)(nil),
}

// NewRegistry returns a grammar covering every go/ast node kind. Comment
// groups and comments are registered only when includeComments is set;
// otherwise they are invisible to queries and do not consume sibling indexes.
func NewRegistry(includeComments bool) *grammar.Registry {
	reg := grammar.NewRegistry(Name)
	routine := childrenOf(includeComments)
	for _, n := range nodeKinds {
		reg.RegisterKind(grammar.KindOf(n), routine)
	}
	if includeComments {
		for _, n := range commentKinds {
			reg.RegisterKind(grammar.KindOf(n), routine)
		}
	}
	return reg
}

// childrenOf returns the traversal routine shared by every kind. It reports
// the direct children of a node in field order, as astutil.Apply visits them,
// without descending further.
func childrenOf(includeComments bool) grammar.Routine {
	return func(node any, visit func(any)) {
		root, ok := node.(ast.Node)
		if !ok {
			return
		}
		started := false
		astutil.Apply(root, func(c *astutil.Cursor) bool {
			if !started {
				started = true
				return true
			}
			child := c.Node()
			if child == nil {
				return false
			}
			if _, isComment := child.(*ast.CommentGroup); isComment && !includeComments {
				return false
			}
			visit(child)
			return false
		}, nil)
	}
}
