// Package pipeline compiles textual query pipelines into chains of query
// operators.
//
// A pipeline is a sequence of steps separated by "|":
//
//	find FuncDecl | children BlockStmt | find Ident | filter 'name == "x"' | first
//
// Traversal steps take a kind name, or "*" for every registered kind.
// Predicates are expr programs evaluated against one match at a time; see
// [Env] for the variables they can use. The same plan can be written as YAML:
//
//	steps:
//	  - op: find
//	    kind: FuncDecl
//	  - op: filter
//	    expr: name startsWith "Test"
package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/treeq/treeqerrors"
)

// Step is one operator of a plan.
type Step struct {
	Op   string `yaml:"op" json:"op"`
	Kind string `yaml:"kind,omitempty" json:"kind,omitempty"`
	Expr string `yaml:"expr,omitempty" json:"expr,omitempty"`
	N    int    `yaml:"n,omitempty" json:"n,omitempty"`
}

// Plan is an ordered list of steps.
type Plan struct {
	Steps []Step `yaml:"steps" json:"steps"`
}

// argument shapes
const (
	argNone = iota
	argKind
	argExpr
	argKindExpr
	argIndex
)

type opInfo struct {
	args      int
	traversal bool
	terminal  bool
}

var ops = map[string]opInfo{
	"find":       {args: argKind, traversal: true},
	"query":      {args: argKind, traversal: true},
	"children":   {args: argKind, traversal: true},
	"parent":     {args: argKind, traversal: true},
	"parents":    {args: argKind, traversal: true},
	"next":       {args: argKind, traversal: true},
	"prev":       {args: argKind, traversal: true},
	"next_all":   {args: argKind, traversal: true},
	"prev_all":   {args: argKind, traversal: true},
	"siblings":   {args: argKind, traversal: true},
	"next_until": {args: argKindExpr, traversal: true},
	"prev_until": {args: argKindExpr, traversal: true},
	"filter":     {args: argExpr},
	"not":        {args: argExpr},
	"eq":         {args: argIndex},
	"first":      {args: argNone},
	"last":       {args: argNone},
	"is":         {args: argExpr, terminal: true},
	"has":        {args: argNone, terminal: true},
}

// Ops returns the names of every supported operator.
func Ops() []string {
	return []string{
		"find", "query", "children", "parent", "parents", "next", "prev",
		"next_all", "prev_all", "siblings", "next_until", "prev_until",
		"filter", "not", "eq", "first", "last", "is", "has",
	}
}

// Parse parses the textual form of a pipeline.
func Parse(text string) (*Plan, error) {
	segments, err := splitSteps(text)
	if err != nil {
		return nil, err
	}
	plan := &Plan{}
	for i, seg := range segments {
		step, err := parseStep(seg)
		if err != nil {
			return nil, withStep(err, i)
		}
		plan.Steps = append(plan.Steps, step)
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

// ParsePlan parses the YAML form of a pipeline.
func ParsePlan(data []byte) (*Plan, error) {
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, &treeqerrors.PipelineError{Step: -1, Message: "invalid plan", Cause: err}
	}
	for i := range plan.Steps {
		plan.Steps[i].Op = strings.ToLower(strings.TrimSpace(plan.Steps[i].Op))
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Validate checks operator names and argument presence. Kind names and
// expressions are checked when the plan is compiled.
func (p *Plan) Validate() error {
	if len(p.Steps) == 0 {
		return &treeqerrors.PipelineError{Step: -1, Message: "empty pipeline"}
	}
	for i, s := range p.Steps {
		info, ok := ops[s.Op]
		if !ok {
			return &treeqerrors.PipelineError{Step: i, Op: s.Op, Message: "unknown operator"}
		}
		if i == 0 && !info.traversal {
			return &treeqerrors.PipelineError{Step: i, Op: s.Op, Message: "a pipeline must start with a traversal such as find"}
		}
		if info.terminal && i != len(p.Steps)-1 {
			return &treeqerrors.PipelineError{Step: i, Op: s.Op, Message: "must be the last step"}
		}
		if (info.args == argKind || info.args == argKindExpr) && s.Kind == "" {
			return &treeqerrors.PipelineError{Step: i, Op: s.Op, Message: "missing kind"}
		}
		if (info.args == argExpr || info.args == argKindExpr) && strings.TrimSpace(s.Expr) == "" {
			return &treeqerrors.PipelineError{Step: i, Op: s.Op, Message: "missing expression"}
		}
	}
	return nil
}

// String renders the plan in textual form.
func (p *Plan) String() string {
	parts := make([]string, 0, len(p.Steps))
	for _, s := range p.Steps {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, " | ")
}

// String renders one step in textual form.
func (s Step) String() string {
	switch ops[s.Op].args {
	case argKind:
		return s.Op + " " + s.Kind
	case argExpr:
		return s.Op + " " + quote(s.Expr)
	case argKindExpr:
		return s.Op + " " + s.Kind + " " + quote(s.Expr)
	case argIndex:
		return s.Op + " " + strconv.Itoa(s.N)
	default:
		return s.Op
	}
}

func quote(expr string) string {
	if !strings.Contains(expr, "'") {
		return "'" + expr + "'"
	}
	return strconv.Quote(expr)
}

func parseStep(seg string) (Step, error) {
	op, rest := cutWord(seg)
	op = strings.ToLower(op)
	info, ok := ops[op]
	if !ok {
		return Step{}, &treeqerrors.PipelineError{Op: op, Message: "unknown operator"}
	}
	step := Step{Op: op}
	switch info.args {
	case argNone:
		if rest != "" {
			return Step{}, &treeqerrors.PipelineError{Op: op, Message: fmt.Sprintf("unexpected argument %q", rest)}
		}
	case argKind:
		step.Kind, rest = cutWord(rest)
		if rest != "" {
			return Step{}, &treeqerrors.PipelineError{Op: op, Message: fmt.Sprintf("unexpected argument %q", rest)}
		}
	case argExpr:
		step.Expr = unquote(rest)
	case argKindExpr:
		step.Kind, rest = cutWord(rest)
		step.Expr = unquote(rest)
	case argIndex:
		n, err := strconv.Atoi(rest)
		if err != nil {
			return Step{}, &treeqerrors.PipelineError{Op: op, Message: "index must be an integer", Cause: err}
		}
		step.N = n
	}
	return step, nil
}

func cutWord(s string) (word, rest string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}

// unquote strips one pair of enclosing quotes when they span the whole
// argument.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	switch {
	case s[0] == '\'' && s[len(s)-1] == '\'' && !strings.ContainsRune(s[1:len(s)-1], '\''):
		return s[1 : len(s)-1]
	case s[0] == '"' && s[len(s)-1] == '"':
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
	}
	return s
}

// splitSteps splits on "|" outside quotes. "||" is the expr or operator and
// never separates steps.
func splitSteps(text string) ([]string, error) {
	var segments []string
	var cur strings.Builder
	var quote rune
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			if r == '\\' && quote == '"' && i+1 < len(runes) {
				cur.WriteRune(r)
				i++
				r = runes[i]
			} else if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"' || r == '`':
			quote = r
		case r == '|' && i+1 < len(runes) && runes[i+1] == '|':
			cur.WriteString("||")
			i++
			continue
		case r == '|':
			segments = append(segments, strings.TrimSpace(cur.String()))
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	if quote != 0 {
		return nil, &treeqerrors.PipelineError{Step: -1, Message: fmt.Sprintf("unterminated %c quote", quote)}
	}
	segments = append(segments, strings.TrimSpace(cur.String()))
	for i, seg := range segments {
		if seg == "" {
			return nil, &treeqerrors.PipelineError{Step: i, Message: "empty step"}
		}
	}
	return segments, nil
}

func withStep(err error, step int) error {
	if perr, ok := err.(*treeqerrors.PipelineError); ok {
		perr.Step = step
	}
	return err
}
