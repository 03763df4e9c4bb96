package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// At returns the value stored at (x, y).
func (g *ByteGrid) At(x, y int) uint8 { return g.data[y*g.W+x] }

// Set stores v at (x, y).
func (g *ByteGrid) Set(x, y int, v uint8) { g.data[y*g.W+x] = v }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *ByteGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Clone returns an independent copy of the grid.
func (g *ByteGrid) Clone() *ByteGrid {
	c := &ByteGrid{W: g.W, H: g.H, data: make([]uint8, len(g.data))}
	copy(c.data, g.data)
	return c
}

// Histogram counts how many cells hold each of the first n values. Values at
// or above n are ignored.
func (g *ByteGrid) Histogram(n int) []int {
	counts := make([]int, n)
	for _, v := range g.data {
		if int(v) < n {
			counts[v]++
		}
	}
	return counts
}

// FloatGrid stores a 2D field of float64 weights in row-major order.
type FloatGrid struct {
	W, H int
	data []float64
}

// NewFloatGrid allocates a zeroed field with the given dimensions.
func NewFloatGrid(w, h int) *FloatGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &FloatGrid{W: w, H: h, data: make([]float64, w*h)}
}

// Values exposes the backing slice.
func (g *FloatGrid) Values() []float64 { return g.data }

// At returns the weight stored at (x, y).
func (g *FloatGrid) At(x, y int) float64 { return g.data[y*g.W+x] }
