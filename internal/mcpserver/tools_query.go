package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/treeq/goast"
	"github.com/erraggy/treeq/internal/pipeline"
	"github.com/erraggy/treeq/query"
)

type queryInput struct {
	Source   sourceInput `json:"source"             jsonschema:"The Go source to query"`
	Pipeline string      `json:"pipeline"           jsonschema:"Query pipeline, e.g. find FuncDecl | children Ident"`
	Comments *bool       `json:"comments,omitempty" jsonschema:"Keep comment nodes (CommentGroup and Comment kinds). Defaults to TREEQ_INCLUDE_COMMENTS."`
	Text     bool        `json:"text,omitempty"     jsonschema:"Include each match's source text"`
	Limit    int         `json:"limit,omitempty"    jsonschema:"Maximum number of matches to return (default 100)"`
	Offset   int         `json:"offset,omitempty"   jsonschema:"Skip the first N matches (for pagination)"`
}

type matchSummary struct {
	Kind   string `json:"kind"`
	Name   string `json:"name,omitempty"`
	Path   string `json:"path"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
	Text   string `json:"text,omitempty"`
}

type queryOutput struct {
	Pipeline string         `json:"pipeline"`
	Matched  int            `json:"matched"`
	Returned int            `json:"returned"`
	Verdict  *bool          `json:"verdict,omitempty"`
	Matches  []matchSummary `json:"matches,omitempty"`
}

func handleQuery(_ context.Context, _ *mcp.CallToolRequest, input queryInput) (*mcp.CallToolResult, any, error) {
	if input.Pipeline == "" {
		return errResult(fmt.Errorf("pipeline is required")), nil, nil
	}
	comments := cfg.IncludeComments
	if input.Comments != nil {
		comments = *input.Comments
	}

	file, err := input.Source.resolve(comments)
	if err != nil {
		return errResult(err), nil, nil
	}
	p, err := pipeline.CompileText(input.Pipeline, file.Registry)
	if err != nil {
		return errResult(err), nil, nil
	}
	tree, err := file.Tree()
	if err != nil {
		return errResult(err), nil, nil
	}
	out, err := p.Run(tree, pipeline.FileDescriber(file))
	if err != nil {
		return errResult(err), nil, nil
	}

	matches := out.Result.Matches()
	returned := paginate(matches, input.Offset, input.Limit)

	output := queryOutput{
		Pipeline: p.Plan().String(),
		Matched:  len(matches),
		Returned: len(returned),
		Verdict:  out.Verdict,
		Matches:  makeSlice[matchSummary](len(returned)),
	}
	for _, m := range returned {
		output.Matches = append(output.Matches, summarize(file, m, input.Text))
	}
	return nil, output, nil
}

func summarize(file *goast.File, m query.Match[any], withText bool) matchSummary {
	pos := file.Position(m.Node)
	s := matchSummary{
		Kind:   m.Kind().Name(),
		Name:   goast.NameOf(m.Node),
		Path:   m.Path.String(),
		Line:   pos.Line,
		Column: pos.Column,
	}
	if withText {
		s.Text = file.Text(m.Node)
	}
	return s
}
