package fire

import (
	"fmt"
	"math"
)

// Vector is a direction on the grid; Row grows downwards and Col to the right.
type Vector struct {
	Row, Col float64
}

// Wind biases ignition towards one neighbour offset.
//
// The bonus applies only when Direction is exactly equal to the offset of the
// neighbour being considered, e.g. {0, 1} for the right-hand neighbour. Any
// other direction, including scaled or diagonal ones such as {0.5, 0.5}, is
// accepted but never matches, so the wind has no effect.
type Wind struct {
	Direction Vector
	Influence float64
}

// Aligned reports whether the direction is one of the four unit offsets and
// can therefore ever contribute its influence.
func (w Wind) Aligned() bool {
	for _, o := range neighbourhood {
		if w.matches(o) {
			return true
		}
	}
	return false
}

// Validate checks the influence is a finite non-negative number. With strict
// set, directions that can never match a neighbour are rejected too.
func (w Wind) Validate(strict bool) error {
	if math.IsNaN(w.Influence) || math.IsInf(w.Influence, 0) || w.Influence < 0 {
		return fmt.Errorf("%w: wind influence %v must be >= 0", ErrInvalidParameter, w.Influence)
	}
	if math.IsNaN(w.Direction.Row) || math.IsNaN(w.Direction.Col) {
		return fmt.Errorf("%w: wind direction is NaN", ErrInvalidParameter)
	}
	if strict && !w.Aligned() {
		return fmt.Errorf("%w: wind direction (%v,%v) is not a unit neighbour offset", ErrInvalidParameter, w.Direction.Row, w.Direction.Col)
	}
	return nil
}

func (w Wind) matches(o offset) bool {
	return w.Direction.Row == float64(o.row) && w.Direction.Col == float64(o.col)
}

// bonus returns the influence to add for a neighbour at offset o.
func (w Wind) bonus(o offset) float64 {
	if w.matches(o) {
		return w.Influence
	}
	return 0
}

func (w Wind) String() string {
	return fmt.Sprintf("(%g,%g)x%g", w.Direction.Row, w.Direction.Col, w.Influence)
}
