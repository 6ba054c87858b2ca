// Package grammar holds the traversal capability that treeq consumes from an
// external grammar.
//
// A grammar is a set of node kinds, each paired with a traversal routine that
// reports the kind's structurally relevant sub-positions in declared order.
// Routines are assembled into a [Registry] keyed by kind; the walker dispatches
// through it and never inspects nodes any other way.
//
//	reg := grammar.NewRegistry("shapes")
//	grammar.Register(reg, func(g *Group, visit func(any)) {
//	    for _, s := range g.Shapes {
//	        visit(s)
//	    }
//	})
//	grammar.RegisterLeaf[*Circle](reg)
//
// # Unregistered Kinds
//
// A node whose kind is not registered is invisible to every query. It is not
// matched, it does not consume a sibling index, and nothing beneath it is
// visited. This is a configuration contract rather than a runtime fault, so it
// fails silently: a grammar that forgets a kind simply produces fewer results.
// The walker reports each skipped node at debug level through its Logger, and
// [Registry.Kinds] lists exactly what a registry can see.
package grammar

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/erraggy/treeq/treeqerrors"
)

// Kind identifies a node kind: the dynamic Go type of a node value.
type Kind struct {
	t reflect.Type
}

// KindOf returns the kind of node. It returns the zero Kind for a nil interface.
func KindOf(node any) Kind {
	if node == nil {
		return Kind{}
	}
	return Kind{t: reflect.TypeOf(node)}
}

// KindFor returns the kind for the static type T.
func KindFor[T any]() Kind {
	return Kind{t: reflect.TypeFor[T]()}
}

// IsZero reports whether k identifies no kind.
func (k Kind) IsZero() bool {
	return k.t == nil
}

// Type returns the underlying reflect.Type.
func (k Kind) Type() reflect.Type {
	return k.t
}

// Name returns the short kind name with pointer and package qualifiers
// stripped, e.g. "Ident" for *ast.Ident.
func (k Kind) Name() string {
	if k.t == nil {
		return ""
	}
	t := k.t
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// String returns the full Go type, e.g. "*ast.Ident".
func (k Kind) String() string {
	if k.t == nil {
		return "<nil>"
	}
	return k.t.String()
}

// Routine reports the sub-positions of node, in declared order, by calling visit
// once per sub-position. It must not retain visit or mutate node.
type Routine func(node any, visit func(child any))

type entry struct {
	kind    Kind
	routine Routine
}

// Registry maps kinds to traversal routines.
//
// Registration is not safe for concurrent use; once populated, a Registry may
// be shared freely between goroutines.
type Registry struct {
	name     string
	entries  map[reflect.Type]entry
	exact    map[string]Kind
	byName   map[string][]Kind
	fullName map[string][]Kind
}

// NewRegistry creates an empty registry. The name is used in diagnostics.
func NewRegistry(name string) *Registry {
	return &Registry{
		name:     name,
		entries:  make(map[reflect.Type]entry),
		exact:    make(map[string]Kind),
		byName:   make(map[string][]Kind),
		fullName: make(map[string][]Kind),
	}
}

// Register installs the traversal routine for kind T. Registering a kind twice
// replaces its routine.
//
// T must be a concrete type: interface types never occur as the dynamic kind of
// a node, so Register panics if T is an interface.
func Register[T any](r *Registry, fn func(node T, visit func(child any))) {
	kind := KindFor[T]()
	if kind.t.Kind() == reflect.Interface {
		panic(fmt.Sprintf("grammar: cannot register interface kind %s", kind))
	}
	r.RegisterKind(kind, func(node any, visit func(child any)) {
		fn(node.(T), visit)
	})
}

// RegisterLeaf installs kind T with no sub-positions.
func RegisterLeaf[T any](r *Registry) {
	Register(r, func(T, func(any)) {})
}

// RegisterKind installs a routine for an explicit kind tag. A nil routine
// registers a leaf.
func (r *Registry) RegisterKind(kind Kind, fn Routine) {
	if kind.IsZero() {
		panic("grammar: cannot register the zero kind")
	}
	if fn == nil {
		fn = func(any, func(any)) {}
	}
	if _, exists := r.entries[kind.t]; !exists {
		short := fold(kind.Name())
		r.byName[short] = append(r.byName[short], kind)
		full := fold(kind.String())
		r.fullName[full] = append(r.fullName[full], kind)
		r.exact[kind.String()] = kind
	}
	r.entries[kind.t] = entry{kind: kind, routine: fn}
}

// Name returns the registry's name.
func (r *Registry) Name() string {
	return r.name
}

// Len returns the number of registered kinds.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Traversable reports whether node is non-nil and of a registered kind.
func (r *Registry) Traversable(node any) bool {
	if IsNil(node) {
		return false
	}
	_, ok := r.entries[reflect.TypeOf(node)]
	return ok
}

// Visit runs the routine registered for node's kind. It returns false, without
// calling fn, when node is nil or its kind is not registered.
func (r *Registry) Visit(node any, fn func(child any)) bool {
	if IsNil(node) {
		return false
	}
	e, ok := r.entries[reflect.TypeOf(node)]
	if !ok {
		return false
	}
	e.routine(node, fn)
	return true
}

// Kinds returns every registered kind ordered by short name, then full name.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.entries))
	for _, e := range r.entries {
		kinds = append(kinds, e.kind)
	}
	slices.SortFunc(kinds, func(a, b Kind) int {
		if c := strings.Compare(a.Name(), b.Name()); c != 0 {
			return c
		}
		return strings.Compare(a.String(), b.String())
	})
	return kinds
}

// Lookup finds a registered kind by name, ignoring case. The name may be the
// short form ("ident") or the full Go type ("*ast.Ident"). A short name shared
// by several kinds is ambiguous and only a full form resolves it; an exact,
// case-sensitive full name always wins.
func (r *Registry) Lookup(name string) (Kind, bool) {
	name = strings.TrimSpace(name)
	if k, ok := r.exact[name]; ok {
		return k, true
	}
	key := fold(name)
	if kinds := r.fullName[key]; len(kinds) == 1 {
		return kinds[0], true
	}
	if kinds := r.byName[key]; len(kinds) == 1 {
		return kinds[0], true
	}
	return Kind{}, false
}

// Resolve is like Lookup but returns a *treeqerrors.KindError listing close
// candidates when name does not resolve.
func (r *Registry) Resolve(name string) (Kind, error) {
	if k, ok := r.Lookup(name); ok {
		return k, nil
	}
	return Kind{}, &treeqerrors.KindError{Name: name, Suggestions: r.suggest(name)}
}

// suggest returns registered names that share a folded prefix with name or
// contain it, plus every full name when the short name is ambiguous.
func (r *Registry) suggest(name string) []string {
	key := fold(strings.TrimSpace(name))
	if key == "" {
		return nil
	}
	if kinds := r.byName[key]; len(kinds) > 1 {
		out := make([]string, 0, len(kinds))
		for _, k := range kinds {
			out = append(out, k.String())
		}
		slices.Sort(out)
		return out
	}

	prefix := key
	if runes := []rune(key); len(runes) > 3 {
		prefix = string(runes[:3])
	}
	var out []string
	for _, k := range r.Kinds() {
		short := fold(k.Name())
		if strings.HasPrefix(short, prefix) || strings.Contains(short, key) {
			out = append(out, k.Name())
		}
		if len(out) == 5 {
			break
		}
	}
	return slices.Compact(out)
}

// fold applies Unicode case folding. A Caser is stateful, so one is created
// per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// IsNil reports whether node is a nil interface or a nil pointer, map, slice,
// channel or func held in an interface.
func IsNil(node any) bool {
	if node == nil {
		return true
	}
	v := reflect.ValueOf(node)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
