package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/treeq/internal/cliutil"
)

func TestRenderTable(t *testing.T) {
	headers := []string{"KIND", "TYPE", "COUNT"}
	rows := [][]string{
		{"File", "*ast.File", "1"},
		{"Ident", "*ast.Ident", "12"},
	}
	plain := cliutil.NewPalette(false)

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		RenderTable(&buf, headers, rows, false, plain)
		want := "KIND   TYPE        COUNT\n" +
			"File   *ast.File   1\n" +
			"Ident  *ast.Ident  12\n"
		assert.Equal(t, want, buf.String())
	})

	t.Run("quiet", func(t *testing.T) {
		var buf bytes.Buffer
		RenderTable(&buf, headers, rows, true, plain)
		assert.Equal(t, "File\t*ast.File\t1\nIdent\t*ast.Ident\t12\n", buf.String())
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		RenderTable(&buf, headers, nil, false, plain)
		assert.Empty(t, buf.String())
	})
}
