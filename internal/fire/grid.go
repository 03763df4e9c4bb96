package fire

import (
	"fmt"

	"firespread/internal/core"
)

// CellState is the fire state of a single cell.
type CellState uint8

const (
	Empty CellState = iota
	Burning
	Burned
)

// numStates is the number of distinct cell states.
const numStates = 3

func (s CellState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Burning:
		return "burning"
	case Burned:
		return "burned"
	default:
		return fmt.Sprintf("CellState(%d)", uint8(s))
	}
}

// Cell addresses a grid cell by row and column.
type Cell struct {
	Row, Col int
}

// Counts is the population of each state at one iteration.
type Counts struct {
	Empty   int
	Burning int
	Burned  int
}

// Total returns the number of cells accounted for.
func (c Counts) Total() int { return c.Empty + c.Burning + c.Burned }

// Grid is a square field of cell states. It has no exported mutators: the
// transition rules build a fresh Grid for every iteration, so a *Grid handed
// to an observer is a stable snapshot.
type Grid struct {
	cells *core.ByteGrid
}

// NewGrid returns a size*size grid with every cell empty except the ignition
// cells, which start burning. Ignitions must lie in the interior region
// [1, size-2] on both axes.
func NewGrid(size int, ignitions ...Cell) (*Grid, error) {
	if size < 3 {
		return nil, fmt.Errorf("%w: side %d, need at least 3", ErrInvalidSize, size)
	}
	if len(ignitions) == 0 {
		return nil, fmt.Errorf("%w: at least one ignition cell is required", ErrInvalidIgnition)
	}
	g := &Grid{cells: core.NewByteGrid(size, size)}
	for _, c := range ignitions {
		if !g.Interior(c.Row, c.Col) {
			return nil, fmt.Errorf("%w: (%d,%d) outside interior [1,%d]", ErrInvalidIgnition, c.Row, c.Col, size-2)
		}
		g.set(c.Row, c.Col, Burning)
	}
	return g, nil
}

// RandomIgnition picks an interior cell using two integer draws (row, then column).
func RandomIgnition(size int, rnd core.Source) Cell {
	span := size - 2
	return Cell{Row: 1 + rnd.IntN(span), Col: 1 + rnd.IntN(span)}
}

// Size returns the side length.
func (g *Grid) Size() int { return g.cells.W }

// At returns the state of the cell at (row, col).
func (g *Grid) At(row, col int) CellState {
	return CellState(g.cells.At(col, row))
}

// Interior reports whether (row, col) lies inside the outermost border ring.
func (g *Grid) Interior(row, col int) bool {
	return g.cells.InBounds(col-1, row-1) && g.cells.InBounds(col+1, row+1)
}

// Counts tallies the population of each state.
func (g *Grid) Counts() Counts {
	h := g.cells.Histogram(numStates)
	return Counts{Empty: h[Empty], Burning: h[Burning], Burned: h[Burned]}
}

// CopyBytes writes the row-major states into dst, which must hold Size()^2 bytes.
func (g *Grid) CopyBytes(dst []uint8) {
	copy(dst, g.cells.Cells())
}

func (g *Grid) set(row, col int, s CellState) {
	g.cells.Set(col, row, uint8(s))
}

// successor returns the buffer the next iteration is written into: a copy of
// g, so cells a rule does not touch carry forward unchanged.
func (g *Grid) successor() *Grid {
	return &Grid{cells: g.cells.Clone()}
}
