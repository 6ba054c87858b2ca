package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/treeq/goast"
	"github.com/erraggy/treeq/walker"
)

type kindsInput struct {
	Source   *sourceInput `json:"source,omitempty"   jsonschema:"Optional Go source; when set only kinds present in it are listed, with counts"`
	Comments *bool        `json:"comments,omitempty" jsonschema:"Include comment kinds. Defaults to TREEQ_INCLUDE_COMMENTS."`
}

type kindSummary struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Count int    `json:"count,omitempty"`
}

type kindsOutput struct {
	Grammar string        `json:"grammar"`
	Total   int           `json:"total"`
	Kinds   []kindSummary `json:"kinds"`
}

func handleKinds(_ context.Context, _ *mcp.CallToolRequest, input kindsInput) (*mcp.CallToolResult, any, error) {
	comments := cfg.IncludeComments
	if input.Comments != nil {
		comments = *input.Comments
	}

	if input.Source == nil {
		reg := goast.NewRegistry(comments)
		kinds := reg.Kinds()
		output := kindsOutput{Grammar: reg.Name(), Total: len(kinds), Kinds: makeSlice[kindSummary](len(kinds))}
		for _, k := range kinds {
			output.Kinds = append(output.Kinds, kindSummary{Name: k.Name(), Type: k.String()})
		}
		return nil, output, nil
	}

	file, err := input.Source.resolve(comments)
	if err != nil {
		return errResult(err), nil, nil
	}
	counts, err := walker.CountKinds(file.Registry, file.AST)
	if err != nil {
		return errResult(err), nil, nil
	}
	output := kindsOutput{Grammar: file.Registry.Name(), Total: len(counts), Kinds: makeSlice[kindSummary](len(counts))}
	for _, c := range counts {
		output.Kinds = append(output.Kinds, kindSummary{Name: c.Kind.Name(), Type: c.Kind.String(), Count: c.Count})
	}
	return nil, output, nil
}
