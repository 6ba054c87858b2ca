package query_test

import (
	"github.com/erraggy/treeq/grammar"
	"github.com/erraggy/treeq/query"
)

// A small struct-literal grammar: Point { x: 1, y: 1 }.

type ExprStruct struct {
	Path   *StructPath
	Brace  *Span
	Fields []*FieldValue
}

type StructPath struct {
	Segments []*PathSegment
}

type PathSegment struct {
	Ident *Ident
	Args  *PathArguments
}

type PathArguments struct{}

type Span struct{}

type FieldValue struct {
	Member *Member
	Expr   Expr
}

type Member struct {
	Ident *Ident
}

type Ident struct {
	Name string
}

type Expr interface {
	isExpr()
}

type ExprLit struct {
	Value int
}

func (*ExprLit) isExpr() {}

func structGrammar() *grammar.Registry {
	reg := grammar.NewRegistry("structlit")
	grammar.Register(reg, func(n *ExprStruct, visit func(any)) {
		visit(n.Path)
		visit(n.Brace)
		for _, f := range n.Fields {
			visit(f)
		}
	})
	grammar.Register(reg, func(n *StructPath, visit func(any)) {
		for _, s := range n.Segments {
			visit(s)
		}
	})
	grammar.Register(reg, func(n *PathSegment, visit func(any)) {
		visit(n.Ident)
		visit(n.Args)
	})
	grammar.Register(reg, func(n *FieldValue, visit func(any)) {
		visit(n.Member)
		visit(n.Expr)
	})
	grammar.Register(reg, func(n *Member, visit func(any)) {
		visit(n.Ident)
	})
	grammar.RegisterLeaf[*PathArguments](reg)
	grammar.RegisterLeaf[*Span](reg)
	grammar.RegisterLeaf[*Ident](reg)
	grammar.RegisterLeaf[*ExprLit](reg)
	return reg
}

func field(name string, value int) *FieldValue {
	return &FieldValue{
		Member: &Member{Ident: &Ident{Name: name}},
		Expr:   &ExprLit{Value: value},
	}
}

// point builds Point { x: 1, y: 1 }.
//
//	[]        ExprStruct
//	[0]       StructPath
//	[0 0]     PathSegment
//	[0 0 0]   Ident Point
//	[0 0 1]   PathArguments
//	[1]       Span
//	[2]       FieldValue x
//	[2 0]     Member
//	[2 0 0]   Ident x
//	[2 1]     ExprLit
//	[3]       FieldValue y
//	[3 0]     Member
//	[3 0 0]   Ident y
//	[3 1]     ExprLit
func point() *ExprStruct {
	return &ExprStruct{
		Path: &StructPath{Segments: []*PathSegment{{
			Ident: &Ident{Name: "Point"},
			Args:  &PathArguments{},
		}}},
		Brace:  &Span{},
		Fields: []*FieldValue{field("x", 1), field("y", 1)},
	}
}

func identNames(r *query.Result[*Ident]) []string {
	return query.Map(r, func(m query.Match[*Ident]) string { return m.Node.Name })
}

func fieldNames(r *query.Result[*FieldValue]) []string {
	return query.Map(r, func(m query.Match[*FieldValue]) string { return m.Node.Member.Ident.Name })
}
