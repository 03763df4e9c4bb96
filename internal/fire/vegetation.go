package fire

import (
	"fmt"
	"math"

	"firespread/internal/core"
)

// Vegetation is a static per-cell flammability field with weights in [0, 1].
// It is read-only once constructed.
type Vegetation struct {
	field *core.FloatGrid
}

// NewVegetation copies values (row-major, size*size entries) into a new field.
func NewVegetation(size int, values []float64) (*Vegetation, error) {
	if size < 3 {
		return nil, fmt.Errorf("%w: side %d, need at least 3", ErrInvalidSize, size)
	}
	if len(values) != size*size {
		return nil, fmt.Errorf("%w: vegetation has %d weights, want %d", ErrInvalidParameter, len(values), size*size)
	}
	f := core.NewFloatGrid(size, size)
	dst := f.Values()
	for i, v := range values {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return nil, fmt.Errorf("%w: vegetation weight %v at (%d,%d) outside [0,1]", ErrInvalidParameter, v, i/size, i%size)
		}
		dst[i] = v
	}
	return &Vegetation{field: f}, nil
}

// RandomVegetation samples one uniform weight per cell in row-major order.
func RandomVegetation(size int, rnd core.Source) (*Vegetation, error) {
	if size < 3 {
		return nil, fmt.Errorf("%w: side %d, need at least 3", ErrInvalidSize, size)
	}
	values := make([]float64, size*size)
	for i := range values {
		values[i] = rnd.Float64()
	}
	return NewVegetation(size, values)
}

// Size returns the side length.
func (v *Vegetation) Size() int { return v.field.W }

// At returns the weight of the cell at (row, col).
func (v *Vegetation) At(row, col int) float64 { return v.field.At(col, row) }

// Values returns a row-major copy of the weights.
func (v *Vegetation) Values() []float64 {
	return append([]float64(nil), v.field.Values()...)
}

// Mean returns the average weight over the whole field.
func (v *Vegetation) Mean() float64 {
	vals := v.field.Values()
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, w := range vals {
		sum += w
	}
	return sum / float64(len(vals))
}
