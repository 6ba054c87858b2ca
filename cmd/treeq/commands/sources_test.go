package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("package x\n"), 0o600))
	}
	return root
}

func TestExpandSources(t *testing.T) {
	root := writeTree(t,
		"a.go",
		"b.go",
		"notes.txt",
		"sub/c.go",
		"sub/deep/d.go",
		"testdata/skip.go",
		"vendor/skip.go",
		".hidden/skip.go",
		"_old/skip.go",
	)
	rel := func(paths []string) []string {
		out := make([]string, 0, len(paths))
		for _, p := range paths {
			r, err := filepath.Rel(root, p)
			require.NoError(t, err)
			out = append(out, filepath.ToSlash(r))
		}
		return out
	}

	t.Run("directory", func(t *testing.T) {
		got, err := ExpandSources([]string{root})
		require.NoError(t, err)
		assert.Equal(t, []string{"a.go", "b.go"}, rel(got))
	})

	t.Run("recursive", func(t *testing.T) {
		got, err := ExpandSources([]string{root + "/..."})
		require.NoError(t, err)
		assert.Equal(t, []string{"a.go", "b.go", "sub/c.go", "sub/deep/d.go"}, rel(got))
	})

	t.Run("files keep argument order and dedup", func(t *testing.T) {
		b := filepath.Join(root, "b.go")
		a := filepath.Join(root, "a.go")
		got, err := ExpandSources([]string{b, a, b})
		require.NoError(t, err)
		assert.Equal(t, []string{b, a}, got)
	})

	t.Run("stdin passes through", func(t *testing.T) {
		got, err := ExpandSources([]string{StdinFilePath})
		require.NoError(t, err)
		assert.Equal(t, []string{StdinFilePath}, got)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := ExpandSources([]string{filepath.Join(root, "nope.go")})
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
