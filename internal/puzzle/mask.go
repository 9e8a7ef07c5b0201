package puzzle

// Mask is a boolean matrix with the same dimensions as a Grid. A true cell
// belongs to at least one found word. Cells are only ever set, never
// cleared, so overlapping words accumulate monotonically.
type Mask struct {
	cells  [][]bool
	height int
	width  int
}

// NewMask creates an all-false mask of the given dimensions.
func NewMask(height, width int) *Mask {
	cells := make([][]bool, height)
	for i := range cells {
		cells[i] = make([]bool, width)
	}
	return &Mask{cells: cells, height: height, width: width}
}

// Height returns the number of rows.
func (m *Mask) Height() int { return m.height }

// Width returns the number of columns.
func (m *Mask) Width() int { return m.width }

// At reports whether the cell at the given row and column is marked.
func (m *Mask) At(row, col int) bool { return m.cells[row][col] }

// Set marks the cell at the given row and column.
func (m *Mask) Set(row, col int) { m.cells[row][col] = true }

// Merge ORs every marked cell of other into m. Both masks must have the
// same dimensions.
func (m *Mask) Merge(other *Mask) {
	for row := 0; row < m.height; row++ {
		for col := 0; col < m.width; col++ {
			if other.cells[row][col] {
				m.cells[row][col] = true
			}
		}
	}
}

// Count returns the number of marked cells.
func (m *Mask) Count() int {
	n := 0
	for _, row := range m.cells {
		for _, set := range row {
			if set {
				n++
			}
		}
	}
	return n
}

// Equal reports whether two masks have identical dimensions and cells.
func (m *Mask) Equal(other *Mask) bool {
	if m.height != other.height || m.width != other.width {
		return false
	}
	for row := 0; row < m.height; row++ {
		for col := 0; col < m.width; col++ {
			if m.cells[row][col] != other.cells[row][col] {
				return false
			}
		}
	}
	return true
}
