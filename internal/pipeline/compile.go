package pipeline

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/erraggy/treeq/grammar"
	"github.com/erraggy/treeq/query"
	"github.com/erraggy/treeq/treeqerrors"
)

type traversal func(query.Source, query.Selector[any]) *query.Result[any]

type bounded func(query.Source, query.Selector[any], func(query.Match[any]) bool) *query.Result[any]

var traversals = map[string]traversal{
	"find":     query.FindOf[any],
	"query":    query.QueryOf[any],
	"children": query.ChildrenOf[any],
	"parent":   query.ParentOf[any],
	"parents":  query.ParentsOf[any],
	"next":     query.NextOf[any],
	"prev":     query.PrevOf[any],
	"next_all": query.NextAllOf[any],
	"prev_all": query.PrevAllOf[any],
	"siblings": query.SiblingsOf[any],
}

var boundedTraversals = map[string]bounded{
	"next_until": query.NextUntilOf[any],
	"prev_until": query.PrevUntilOf[any],
}

type compiledStep struct {
	Step
	sel  query.Selector[any]
	prog *vm.Program
}

// Pipeline is a compiled plan bound to one grammar.
type Pipeline struct {
	plan  *Plan
	steps []compiledStep
}

// Output is the outcome of running a pipeline.
type Output struct {
	// Result holds the final matches. For pipelines ending in is or has it is
	// the result the check was applied to.
	Result *query.Result[any]
	// Verdict is set when the pipeline ends with is or has.
	Verdict *bool
}

// Compile resolves kind names against reg and compiles every expression.
func Compile(plan *Plan, reg *grammar.Registry) (*Pipeline, error) {
	if plan == nil {
		return nil, &treeqerrors.PipelineError{Step: -1, Message: "nil plan"}
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{plan: plan}
	for i, s := range plan.Steps {
		cs := compiledStep{Step: s}
		info := ops[s.Op]
		if info.args == argKind || info.args == argKindExpr {
			sel, err := selectorFor(reg, s.Kind)
			if err != nil {
				return nil, &treeqerrors.PipelineError{Step: i, Op: s.Op, Cause: err}
			}
			cs.sel = sel
		}
		if info.args == argExpr || info.args == argKindExpr {
			prog, err := expr.Compile(s.Expr, expr.Env(Env{}), expr.AsBool())
			if err != nil {
				return nil, &treeqerrors.PipelineError{Step: i, Op: s.Op, Message: "invalid expression", Cause: err}
			}
			cs.prog = prog
		}
		p.steps = append(p.steps, cs)
	}
	return p, nil
}

// CompileText parses and compiles the textual form of a pipeline.
func CompileText(text string, reg *grammar.Registry) (*Pipeline, error) {
	plan, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return Compile(plan, reg)
}

func selectorFor(reg *grammar.Registry, name string) (query.Selector[any], error) {
	if name == "*" {
		return query.AnyKind(), nil
	}
	kind, err := reg.Resolve(name)
	if err != nil {
		return nil, err
	}
	return query.ByKind(kind), nil
}

// Plan returns the plan the pipeline was compiled from.
func (p *Pipeline) Plan() *Plan {
	return p.plan
}

// Run executes the pipeline against tree. Predicates that fail at run time
// abort the run with a *treeqerrors.PipelineError.
func (p *Pipeline) Run(tree *query.Tree, d Describer) (*Output, error) {
	var src query.Source = tree
	var cur *query.Result[any]
	for i, s := range p.steps {
		var evalErr error
		pred := func(m query.Match[any]) bool {
			if evalErr != nil {
				return false
			}
			ok, err := s.eval(m, d)
			if err != nil {
				evalErr = err
			}
			return ok
		}

		out := &Output{}
		switch {
		case traversals[s.Op] != nil:
			cur = traversals[s.Op](src, s.sel)
		case boundedTraversals[s.Op] != nil:
			cur = boundedTraversals[s.Op](src, s.sel, pred)
		case s.Op == "filter":
			cur = cur.Filter(pred)
		case s.Op == "not":
			cur = cur.Not(pred)
		case s.Op == "eq":
			cur = cur.Eq(s.N)
		case s.Op == "first":
			cur = cur.First()
		case s.Op == "last":
			cur = cur.Last()
		case s.Op == "is":
			verdict := cur.Is(pred)
			out.Verdict = &verdict
		case s.Op == "has":
			verdict := cur.Has()
			out.Verdict = &verdict
		default:
			return nil, &treeqerrors.PipelineError{Step: i, Op: s.Op, Message: "unknown operator"}
		}
		if evalErr != nil {
			return nil, &treeqerrors.PipelineError{Step: i, Op: s.Op, Message: "expression failed", Cause: evalErr}
		}
		if out.Verdict != nil {
			out.Result = cur
			return out, nil
		}
		src = cur
	}
	return &Output{Result: cur}, nil
}

func (s compiledStep) eval(m query.Match[any], d Describer) (bool, error) {
	res, err := expr.Run(s.prog, newEnv(m, d))
	if err != nil {
		return false, err
	}
	ok, isBool := res.(bool)
	if !isBool {
		return false, fmt.Errorf("expression returned %T, want bool", res)
	}
	return ok, nil
}
