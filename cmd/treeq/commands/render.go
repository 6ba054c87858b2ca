package commands

import (
	"io"
	"strings"

	"github.com/erraggy/treeq/internal/cliutil"
)

// RenderTable renders rows under headers in fixed-width columns. In quiet mode,
// headers are omitted and rows are tab-separated for piping. Widths are measured
// on the plain cells, so a colored header row still lines up.
func RenderTable(w io.Writer, headers []string, rows [][]string, quiet bool, pal *cliutil.Palette) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if quiet {
		for _, row := range rows {
			cliutil.Writeln(w, strings.Join(row, "\t"))
		}
		return
	}

	var b strings.Builder
	for i, h := range headers {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(pal.Faint("%s", h))
		if i < len(headers)-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-len(h)))
		}
	}
	cliutil.Writeln(w, b.String())

	for _, row := range rows {
		b.Reset()
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			if i < len(row)-1 && i < len(widths) {
				b.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
			}
		}
		cliutil.Writeln(w, b.String())
	}
}
