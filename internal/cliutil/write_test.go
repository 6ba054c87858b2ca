package cliutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWritef(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "%s: %d matches", "main.go", 3)
	assert.Equal(t, "main.go: 3 matches", buf.String())
}

func TestWriteln(t *testing.T) {
	var buf bytes.Buffer
	Writeln(&buf, "done")
	Writeln(&buf, "100%")
	assert.Equal(t, "done\n100%\n", buf.String())
}

// errorWriter is a writer that always returns an error
type errorWriter struct{}

func (errorWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}

func TestWritef_WriteError(t *testing.T) {
	// Should not panic
	assert.NotPanics(t, func() {
		Writef(errorWriter{}, "This will fail")
	})
}
