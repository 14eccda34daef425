package core

// FloatGrid stores a 2D grid of float64 cell values in row-major order.
type FloatGrid struct {
	Rows, Cols int
	data       []float64
}

// NewFloatGrid allocates a grid with the given dimensions.
func NewFloatGrid(rows, cols int) *FloatGrid {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	return &FloatGrid{Rows: rows, Cols: cols, data: make([]float64, rows*cols)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *FloatGrid) Cells() []float64 { return g.data }

// Index returns the linear slice index for coordinates (row, col).
func (g *FloatGrid) Index(row, col int) int { return row*g.Cols + col }

// InBounds reports whether (row, col) addresses a cell inside the grid.
func (g *FloatGrid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// At returns the value at (row, col), or 0 when out of bounds.
func (g *FloatGrid) At(row, col int) float64 {
	if !g.InBounds(row, col) {
		return 0
	}
	return g.data[row*g.Cols+col]
}

// Set writes the value at (row, col). Out-of-bounds writes are ignored.
func (g *FloatGrid) Set(row, col int, v float64) {
	if !g.InBounds(row, col) {
		return
	}
	g.data[row*g.Cols+col] = v
}

// Clear fills the grid with zeros.
func (g *FloatGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// CopyFrom copies src into g. Both grids must share the same shape.
func (g *FloatGrid) CopyFrom(src *FloatGrid) {
	if src == nil || len(src.data) != len(g.data) {
		return
	}
	copy(g.data, src.data)
}

// IntGrid stores a 2D grid of int cell values in row-major order.
type IntGrid struct {
	Rows, Cols int
	data       []int
}

// NewIntGrid allocates a grid with the given dimensions.
func NewIntGrid(rows, cols int) *IntGrid {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	return &IntGrid{Rows: rows, Cols: cols, data: make([]int, rows*cols)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *IntGrid) Cells() []int { return g.data }

// Index returns the linear slice index for coordinates (row, col).
func (g *IntGrid) Index(row, col int) int { return row*g.Cols + col }

// InBounds reports whether (row, col) addresses a cell inside the grid.
func (g *IntGrid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// At returns the value at (row, col), or 0 when out of bounds.
func (g *IntGrid) At(row, col int) int {
	if !g.InBounds(row, col) {
		return 0
	}
	return g.data[row*g.Cols+col]
}

// Clear fills the grid with zeros.
func (g *IntGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
