package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Color modes accepted by PaletteFor.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Palette colors the fields of a text report. Every field is a Sprintf-style
// function, so a disabled palette formats plain text.
type Palette struct {
	Kind  func(format string, a ...any) string
	Name  func(format string, a ...any) string
	Path  func(format string, a ...any) string
	Pos   func(format string, a ...any) string
	Good  func(format string, a ...any) string
	Bad   func(format string, a ...any) string
	Faint func(format string, a ...any) string
}

// NewPalette returns a colored palette when enabled, a plain one otherwise.
func NewPalette(enabled bool) *Palette {
	if !enabled {
		return &Palette{
			Kind:  fmt.Sprintf,
			Name:  fmt.Sprintf,
			Path:  fmt.Sprintf,
			Pos:   fmt.Sprintf,
			Good:  fmt.Sprintf,
			Bad:   fmt.Sprintf,
			Faint: fmt.Sprintf,
		}
	}
	return &Palette{
		Kind:  sprintf(color.FgCyan, color.Bold),
		Name:  sprintf(color.FgYellow),
		Path:  sprintf(color.FgMagenta),
		Pos:   sprintf(color.FgBlue),
		Good:  sprintf(color.FgGreen),
		Bad:   sprintf(color.FgRed, color.Bold),
		Faint: sprintf(color.Faint),
	}
}

// sprintf builds a formatter that colors regardless of color.NoColor, which
// only reflects stdout.
func sprintf(attrs ...color.Attribute) func(string, ...any) string {
	c := color.New(attrs...)
	c.EnableColor()
	return c.SprintfFunc()
}

// PaletteFor resolves mode against w. In auto mode, color is used only when w
// is a terminal and NO_COLOR is unset.
func PaletteFor(w io.Writer, mode string) (*Palette, error) {
	switch mode {
	case ColorAlways:
		return NewPalette(true), nil
	case ColorNever:
		return NewPalette(false), nil
	case ColorAuto, "":
		return NewPalette(IsTerminal(w) && os.Getenv("NO_COLOR") == ""), nil
	default:
		return nil, fmt.Errorf("invalid color mode '%s'. Valid modes: %s, %s, %s", mode, ColorAuto, ColorAlways, ColorNever)
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
