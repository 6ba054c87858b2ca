package query

import (
	"strings"

	"github.com/erraggy/treeq/grammar"
)

// Selector decides whether a visited node is of the requested kind and, if so,
// converts it to K. Selectors are built with [Of], [ByKind], [ByKinds] or
// [AnyKind].
type Selector[K any] interface {
	match(node any) (K, bool)

	// String describes the selected kinds.
	String() string
}

type typed[K any] struct{}

// Of selects nodes by static type. A concrete K selects exactly that kind; an
// interface K selects every kind implementing it.
func Of[K any]() Selector[K] {
	return typed[K]{}
}

func (typed[K]) match(node any) (K, bool) {
	k, ok := node.(K)
	return k, ok
}

func (typed[K]) String() string {
	return grammar.KindFor[K]().String()
}

type tagged struct {
	kinds []grammar.Kind
}

// ByKind selects nodes whose dynamic kind equals kind. It is the runtime
// counterpart of Of, for kinds that are only known as values, e.g. resolved
// from a name with [grammar.Registry.Resolve].
func ByKind(kind grammar.Kind) Selector[any] {
	return tagged{kinds: []grammar.Kind{kind}}
}

// ByKinds selects nodes whose dynamic kind is any of kinds.
func ByKinds(kinds ...grammar.Kind) Selector[any] {
	return tagged{kinds: append([]grammar.Kind(nil), kinds...)}
}

func (s tagged) match(node any) (any, bool) {
	kind := grammar.KindOf(node)
	for _, k := range s.kinds {
		if k == kind {
			return node, true
		}
	}
	return nil, false
}

func (s tagged) String() string {
	names := make([]string, 0, len(s.kinds))
	for _, k := range s.kinds {
		names = append(names, k.String())
	}
	return strings.Join(names, "|")
}

type anyKind struct{}

// AnyKind selects every registered position.
func AnyKind() Selector[any] {
	return anyKind{}
}

func (anyKind) match(node any) (any, bool) {
	return node, true
}

func (anyKind) String() string {
	return "*"
}
