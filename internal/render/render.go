// Package render serializes a solved puzzle back to text. The plain
// renderer produces the solution artifact; the colorized renderer is for
// terminal display only.
package render

import (
	"strings"

	"github.com/fatih/color"

	"github.com/codeyimin/wordseek/internal/filelock"
	"github.com/codeyimin/wordseek/internal/puzzle"
)

// DefaultPlaceholder stands in for letters that are not part of any found word.
const DefaultPlaceholder = ' '

// Text renders the grid with the mask applied: the original letter where
// the mask is set, placeholder elsewhere, a single space between columns,
// a newline between rows and no trailing newline after the last row.
func Text(grid *puzzle.Grid, mask *puzzle.Mask, placeholder rune) string {
	var sb strings.Builder
	for row := 0; row < grid.Height(); row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < grid.Width(); col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			if mask.At(row, col) {
				sb.WriteRune(grid.At(row, col))
			} else {
				sb.WriteRune(placeholder)
			}
		}
	}
	return sb.String()
}

// Colorized renders the full grid for a terminal, highlighting the letters
// of found words in bold green and dimming the rest. Color codes are
// stripped automatically by fatih/color when output is not a TTY or
// NO_COLOR is set; force emits them anyway without touching the
// process-wide color state.
func Colorized(grid *puzzle.Grid, mask *puzzle.Mask, force bool) string {
	found := color.New(color.FgGreen, color.Bold)
	filler := color.New(color.Faint)
	if force {
		found.EnableColor()
		filler.EnableColor()
	}

	var sb strings.Builder
	for row := 0; row < grid.Height(); row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < grid.Width(); col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			ch := string(grid.At(row, col))
			if mask.At(row, col) {
				sb.WriteString(found.Sprint(ch))
			} else {
				sb.WriteString(filler.Sprint(ch))
			}
		}
	}
	return sb.String()
}

// WriteFile renders the solution and writes it to path atomically, so a
// failed run never leaves a partial artifact behind.
func WriteFile(path string, grid *puzzle.Grid, mask *puzzle.Mask, placeholder rune) error {
	return filelock.AtomicWrite(path, []byte(Text(grid, mask, placeholder)))
}
