package mcpserver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callKinds(t *testing.T, input kindsInput) kindsOutput {
	t.Helper()
	result, out, err := handleKinds(context.Background(), nil, input)
	require.NoError(t, err)
	require.Nil(t, result, "unexpected error result")
	output, ok := out.(kindsOutput)
	require.True(t, ok, "expected kindsOutput, got %T", out)
	return output
}

func TestHandleKinds_Grammar(t *testing.T) {
	without := false
	output := callKinds(t, kindsInput{Comments: &without})
	assert.Equal(t, "go/ast", output.Grammar)
	assert.Equal(t, len(output.Kinds), output.Total)

	names := make([]string, 0, len(output.Kinds))
	for _, k := range output.Kinds {
		names = append(names, k.Name)
		assert.Zero(t, k.Count)
	}
	assert.Contains(t, names, "FuncDecl")
	assert.NotContains(t, names, "CommentGroup")
	assert.IsIncreasing(t, names)

	with := true
	assert.Equal(t, output.Total+2, callKinds(t, kindsInput{Comments: &with}).Total)
}

func TestHandleKinds_Source(t *testing.T) {
	output := callKinds(t, kindsInput{Source: &sourceInput{Content: sampleSrc}})

	require.NotEmpty(t, output.Kinds)
	assert.Equal(t, "File", output.Kinds[0].Name)
	assert.Equal(t, 1, output.Kinds[0].Count)
	assert.Equal(t, "Ident", output.Kinds[1].Name)

	counts := make(map[string]int)
	for _, k := range output.Kinds {
		counts[k.Name] = k.Count
	}
	assert.Equal(t, 2, counts["FuncDecl"])
	assert.Equal(t, 4, counts["BasicLit"])
}

func TestHandleKinds_BadSource(t *testing.T) {
	result, out, err := handleKinds(context.Background(), nil, kindsInput{Source: &sourceInput{}})
	require.NoError(t, err)
	assert.Nil(t, out)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
