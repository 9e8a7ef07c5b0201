// Package solver implements the word search itself: an exhaustive scan of
// every starting cell in four axis directions with toroidal (wraparound)
// indexing.
//
// Each axis is scanned with a single forward vector; the reversed
// orientation is covered by also comparing the reversed word along the same
// vector. Scanning true reverse vectors as well would find every match a
// second time.
package solver

import (
	"sync"

	"github.com/codeyimin/wordseek/internal/puzzle"
)

// directions holds one forward vector per undirected axis:
// horizontal, vertical, diagonal-down, diagonal-up.
var directions = [4][2]int{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

// Match records a single placement of a bank word: the starting cell, the
// axis vector walked, and whether the word was read backwards along it.
type Match struct {
	Word     string
	Row, Col int
	DX, DY   int
	Reversed bool
}

// Axis returns a human-readable name for the match's scan axis.
func (m Match) Axis() string {
	switch {
	case m.DX == 1 && m.DY == 0:
		return "horizontal"
	case m.DX == 0 && m.DY == 1:
		return "vertical"
	case m.DX == 1 && m.DY == 1:
		return "diagonal-down"
	default:
		return "diagonal-up"
	}
}

// Solution is the result of solving one puzzle: the occupancy mask over the
// grid plus every individual word placement found.
type Solution struct {
	Mask    *puzzle.Mask
	Matches []Match
}

// WordsFound returns the distinct bank words that matched at least once,
// in bank order.
func (s *Solution) WordsFound() []string {
	seen := make(map[string]bool, len(s.Matches))
	var words []string
	for _, m := range s.Matches {
		if !seen[m.Word] {
			seen[m.Word] = true
			words = append(words, m.Word)
		}
	}
	return words
}

// Solver runs word searches. The zero value scans serially; setting Workers
// above 1 shards the scan across that many goroutines by row. Mask writes
// are set-only, so per-worker masks merge with a plain OR and the result is
// identical to the serial scan.
type Solver struct {
	Workers int
}

// compiled is a word bank prepared for scanning: rune slices for the words
// and their reversals, paired by index.
type compiled struct {
	words    [][]rune
	reversed [][]rune
	labels   []string
}

func compile(bank puzzle.WordBank) *compiled {
	c := &compiled{
		words:    make([][]rune, 0, len(bank)),
		reversed: make([][]rune, 0, len(bank)),
		labels:   make([]string, 0, len(bank)),
	}
	for _, word := range bank {
		runes := []rune(word)
		if len(runes) == 0 {
			continue
		}
		rev := make([]rune, len(runes))
		for i, r := range runes {
			rev[len(runes)-1-i] = r
		}
		c.words = append(c.words, runes)
		c.reversed = append(c.reversed, rev)
		c.labels = append(c.labels, word)
	}
	return c
}

// Solve searches the grid for every bank word in all eight directions and
// returns the solution. The grid and bank are not modified; Solve is safe
// to call repeatedly and from multiple goroutines.
func (s *Solver) Solve(grid *puzzle.Grid, bank puzzle.WordBank) *Solution {
	height, width := grid.Height(), grid.Width()
	mask := puzzle.NewMask(height, width)
	words := compile(bank)

	workers := s.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > height {
		workers = height
	}

	if workers == 1 {
		var matches []Match
		for row := 0; row < height; row++ {
			scanRow(grid, words, row, mask, &matches)
		}
		return &Solution{Mask: mask, Matches: matches}
	}

	// Per-row match slices keep the parallel result deterministic: workers
	// race on row order but each row's matches land in a fixed slot.
	rowMatches := make([][]Match, height)
	partials := make([]*puzzle.Mask, workers)
	rows := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		partial := puzzle.NewMask(height, width)
		partials[w] = partial
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range rows {
				scanRow(grid, words, row, partial, &rowMatches[row])
			}
		}()
	}
	for row := 0; row < height; row++ {
		rows <- row
	}
	close(rows)
	wg.Wait()

	for _, partial := range partials {
		mask.Merge(partial)
	}
	var matches []Match
	for _, rm := range rowMatches {
		matches = append(matches, rm...)
	}
	return &Solution{Mask: mask, Matches: matches}
}

// scanRow tests every starting column in the row against every direction
// and word, marking matched cells in mask and appending placements to out.
func scanRow(grid *puzzle.Grid, words *compiled, row int, mask *puzzle.Mask, out *[]Match) {
	for col := 0; col < grid.Width(); col++ {
		for _, dir := range directions {
			scanDirection(grid, words, row, col, dir[0], dir[1], mask, out)
		}
	}
}

// scanDirection walks every bank word from the starting cell along one
// direction vector, comparing both the word and its reversal character by
// character with indices wrapping modulo the grid dimensions. Matching more
// than one word at the same cell and direction is possible, so the word
// loop never breaks early.
func scanDirection(grid *puzzle.Grid, words *compiled, startRow, startCol, dx, dy int, mask *puzzle.Mask, out *[]Match) {
	height, width := grid.Height(), grid.Width()

	// Normalize so the index arithmetic below stays non-negative.
	dxn := ((dx % width) + width) % width
	dyn := ((dy % height) + height) % height

	for w, word := range words.words {
		rev := words.reversed[w]

		matchForward := true
		matchReversed := true
		for i := 0; i < len(word) && (matchForward || matchReversed); i++ {
			row := (startRow + i*dyn) % height
			col := (startCol + i*dxn) % width
			ch := grid.At(row, col)
			if ch != word[i] {
				matchForward = false
			}
			if ch != rev[i] {
				matchReversed = false
			}
		}
		if !matchForward && !matchReversed {
			continue
		}

		for i := 0; i < len(word); i++ {
			row := (startRow + i*dyn) % height
			col := (startCol + i*dxn) % width
			mask.Set(row, col)
		}
		*out = append(*out, Match{
			Word:     words.labels[w],
			Row:      startRow,
			Col:      startCol,
			DX:       dx,
			DY:       dy,
			Reversed: !matchForward,
		})
	}
}
