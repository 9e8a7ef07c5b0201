package puzzle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrid(t *testing.T) {
	t.Run("basic grid", func(t *testing.T) {
		grid, err := ParseGrid(strings.NewReader("C A T\nD O G"))
		require.NoError(t, err)
		assert.Equal(t, 2, grid.Height())
		assert.Equal(t, 3, grid.Width())
		assert.Equal(t, 'C', grid.At(0, 0))
		assert.Equal(t, 'G', grid.At(1, 2))
	})

	t.Run("trailing separator is allowed", func(t *testing.T) {
		grid, err := ParseGrid(strings.NewReader("A B C \nD E F"))
		require.NoError(t, err)
		assert.Equal(t, 3, grid.Width())
	})

	t.Run("width counts characters not positions", func(t *testing.T) {
		// Mixed trailing separators must still produce equal widths.
		grid, err := ParseGrid(strings.NewReader("A B C \nD E F \nG H I"))
		require.NoError(t, err)
		assert.Equal(t, 3, grid.Height())
		assert.Equal(t, 3, grid.Width())
	})

	t.Run("blank lines are skipped", func(t *testing.T) {
		grid, err := ParseGrid(strings.NewReader("A B\n\nC D\n"))
		require.NoError(t, err)
		assert.Equal(t, 2, grid.Height())
	})

	t.Run("windows line endings", func(t *testing.T) {
		grid, err := ParseGrid(strings.NewReader("A B\r\nC D\r\n"))
		require.NoError(t, err)
		assert.Equal(t, 2, grid.Height())
		assert.Equal(t, 2, grid.Width())
	})

	t.Run("single cell grid", func(t *testing.T) {
		grid, err := ParseGrid(strings.NewReader("X"))
		require.NoError(t, err)
		assert.Equal(t, 1, grid.Height())
		assert.Equal(t, 1, grid.Width())
		assert.Equal(t, 'X', grid.At(0, 0))
	})

	t.Run("ragged rows are rejected", func(t *testing.T) {
		_, err := ParseGrid(strings.NewReader("A B C\nD E"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ragged")
	})

	t.Run("empty source is rejected", func(t *testing.T) {
		_, err := ParseGrid(strings.NewReader(""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("multi-character token is rejected", func(t *testing.T) {
		_, err := ParseGrid(strings.NewReader("AB C"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "single character")
	})
}

func TestNewGrid(t *testing.T) {
	t.Run("no rows", func(t *testing.T) {
		_, err := NewGrid(nil)
		assert.Error(t, err)
	})

	t.Run("empty row", func(t *testing.T) {
		_, err := NewGrid([][]rune{{}})
		assert.Error(t, err)
	})
}

func TestLoadGrid(t *testing.T) {
	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "puzzle.txt")
		require.NoError(t, os.WriteFile(path, []byte("A B\nC D\n"), 0644))

		grid, err := LoadGrid(path)
		require.NoError(t, err)
		assert.Equal(t, 2, grid.Height())
	})

	t.Run("missing file names the path", func(t *testing.T) {
		_, err := LoadGrid("/nonexistent/puzzle.txt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "/nonexistent/puzzle.txt")
	})

	t.Run("parse failure names the path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.txt")
		require.NoError(t, os.WriteFile(path, []byte("A B\nC"), 0644))

		_, err := LoadGrid(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.txt")
	})
}

func TestMask(t *testing.T) {
	t.Run("starts all false", func(t *testing.T) {
		m := NewMask(2, 3)
		assert.Equal(t, 0, m.Count())
		assert.False(t, m.At(1, 2))
	})

	t.Run("set and count", func(t *testing.T) {
		m := NewMask(2, 2)
		m.Set(0, 0)
		m.Set(0, 0)
		m.Set(1, 1)
		assert.Equal(t, 2, m.Count())
		assert.True(t, m.At(0, 0))
	})

	t.Run("merge ors cells", func(t *testing.T) {
		a := NewMask(2, 2)
		b := NewMask(2, 2)
		a.Set(0, 0)
		b.Set(1, 1)
		a.Merge(b)
		assert.True(t, a.At(0, 0))
		assert.True(t, a.At(1, 1))
		assert.Equal(t, 2, a.Count())
	})

	t.Run("equal", func(t *testing.T) {
		a := NewMask(2, 2)
		b := NewMask(2, 2)
		assert.True(t, a.Equal(b))
		a.Set(0, 1)
		assert.False(t, a.Equal(b))
		b.Set(0, 1)
		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(NewMask(2, 3)))
	})
}
