package goast

import (
	"go/ast"
	"go/token"
	"go/types"
	"strconv"
	"strings"
)

// NameOf returns the name a node is commonly referred to by: the identifier of
// a declaration or spec, the names of a field, the literal text of a basic
// literal, or the callee of a call. Nodes without a natural name return "".
func NameOf(node any) string {
	switch n := node.(type) {
	case *ast.Ident:
		return n.Name
	case *ast.File:
		return identName(n.Name)
	case *ast.FuncDecl:
		return identName(n.Name)
	case *ast.TypeSpec:
		return identName(n.Name)
	case *ast.ValueSpec:
		return joinIdents(n.Names)
	case *ast.Field:
		if len(n.Names) == 0 {
			return types.ExprString(n.Type)
		}
		return joinIdents(n.Names)
	case *ast.ImportSpec:
		if n.Name != nil {
			return n.Name.Name
		}
		if n.Path == nil {
			return ""
		}
		if path, err := strconv.Unquote(n.Path.Value); err == nil {
			return path
		}
		return n.Path.Value
	case *ast.BasicLit:
		return n.Value
	case *ast.SelectorExpr:
		return types.ExprString(n)
	case *ast.CallExpr:
		return types.ExprString(n.Fun)
	case *ast.LabeledStmt:
		return identName(n.Label)
	case *ast.BranchStmt:
		return identName(n.Label)
	case *ast.GenDecl:
		return n.Tok.String()
	case *ast.Comment:
		return n.Text
	default:
		return ""
	}
}

func identName(id *ast.Ident) string {
	if id == nil {
		return ""
	}
	return id.Name
}

func joinIdents(ids []*ast.Ident) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, id.Name)
	}
	return strings.Join(names, ",")
}

// Position returns the source position where node starts. Values that are not
// go/ast nodes report the zero position.
func (f *File) Position(node any) token.Position {
	n, ok := node.(ast.Node)
	if !ok || !n.Pos().IsValid() {
		return token.Position{}
	}
	return f.Fset.Position(n.Pos())
}

// Text returns the source text spanned by node.
func (f *File) Text(node any) string {
	n, ok := node.(ast.Node)
	if !ok || !n.Pos().IsValid() || !n.End().IsValid() {
		return ""
	}
	tf := f.Fset.File(n.Pos())
	if tf == nil {
		return ""
	}
	start, end := tf.Offset(n.Pos()), tf.Offset(n.End())
	if start < 0 || end > len(f.Src) || start > end {
		return ""
	}
	return string(f.Src[start:end])
}
