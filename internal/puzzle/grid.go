// Package puzzle defines the value types a word search is made of: the
// letter Grid, the WordBank of target words, and the boolean Mask marking
// which grid cells belong to a found word.
//
// Grids and word banks are parsed once from their input files and are
// read-only afterwards; all format validation happens here, at parse time,
// so the solver never sees malformed input.
package puzzle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Grid is a rectangular matrix of single characters, indexed [row][col].
// It is immutable once constructed.
type Grid struct {
	cells  [][]rune
	height int
	width  int
}

// NewGrid constructs a Grid from pre-split rows of runes.
// All rows must be the same non-zero length and there must be at least one row.
func NewGrid(rows [][]rune) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("grid has no rows")
	}
	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("grid has no columns")
	}
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("ragged grid: row %d has %d letters, expected %d", i+1, len(row), width)
		}
	}
	return &Grid{cells: rows, height: len(rows), width: width}, nil
}

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// At returns the character at the given row and column.
func (g *Grid) At(row, col int) rune { return g.cells[row][col] }

// Row returns the runes of a single row. The returned slice is shared with
// the grid and must not be modified.
func (g *Grid) Row(row int) []rune { return g.cells[row] }

// ParseGrid reads a puzzle grid from r. Each non-empty line is one row of
// single characters separated by whitespace; a trailing separator is allowed.
// The row width is the number of characters on the line, not a position
// count, so both "A B C" and "A B C " parse to the same three-letter row.
// All rows must have the same width.
func ParseGrid(r io.Reader) (*Grid, error) {
	var rows [][]rune

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		var row []rune
		for _, token := range strings.Fields(line) {
			if utf8.RuneCountInString(token) != 1 {
				return nil, fmt.Errorf("line %d: %q is not a single character", lineNo, token)
			}
			ch, _ := utf8.DecodeRuneInString(token)
			row = append(row, ch)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read grid: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("grid is empty")
	}

	return NewGrid(rows)
}

// LoadGrid parses a puzzle grid from the file at path.
func LoadGrid(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open puzzle file %s: %w", path, err)
	}
	defer f.Close()

	grid, err := ParseGrid(f)
	if err != nil {
		return nil, fmt.Errorf("invalid puzzle file %s: %w", path, err)
	}
	return grid, nil
}
