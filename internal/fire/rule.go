package fire

import (
	"fmt"
	"math"

	"firespread/internal/core"
)

// Rule maps the current grid to the next one. Implementations read only from
// cur and write only to the grid they return.
type Rule interface {
	Name() string
	Validate() error
	Next(cur *Grid, veg *Vegetation, rnd core.Source) (*Grid, error)
}

type offset struct {
	row, col int
}

// neighbourhood is the von Neumann neighbourhood in draw order: up, down, left, right.
var neighbourhood = [4]offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// SIR is the recovery-first variant: a burning cell first draws against
// Gamma and burns out, or survives the step and tries to ignite each empty
// neighbour with probability Beta. A surviving cell keeps burning and retries
// on the next iteration.
type SIR struct {
	Beta  float64
	Gamma float64
}

// Name identifies the variant.
func (SIR) Name() string { return VariantSIR.String() }

// Validate checks both rates are probabilities.
func (r SIR) Validate() error {
	if err := checkRate("beta", r.Beta); err != nil {
		return err
	}
	return checkRate("gamma", r.Gamma)
}

// Next applies one synchronous SIR update.
func (r SIR) Next(cur *Grid, _ *Vegetation, rnd core.Source) (*Grid, error) {
	if err := checkProbability("gamma", r.Gamma); err != nil {
		return nil, err
	}
	if err := checkProbability("beta", r.Beta); err != nil {
		return nil, err
	}
	next := cur.successor()
	n := cur.Size()
	for row := 1; row < n-1; row++ {
		for col := 1; col < n-1; col++ {
			if cur.At(row, col) != Burning {
				continue
			}
			if rnd.Float64() < r.Gamma {
				next.set(row, col, Burned)
				continue
			}
			for _, o := range neighbourhood {
				nr, nc := row+o.row, col+o.col
				if !cur.Interior(nr, nc) || cur.At(nr, nc) != Empty {
					continue
				}
				if rnd.Float64() < r.Beta {
					next.set(nr, nc, Burning)
				}
			}
		}
	}
	return next, nil
}

// Diffusion is the deterministic-burn variant: every burning cell burns out
// after exactly one step while trying to ignite each empty neighbour with
// probability Rate, plus the wind influence for the downwind neighbour.
//
// The combined probability is not clamped. Rate+Influence above 1 simply
// means the downwind neighbour always ignites.
type Diffusion struct {
	Rate float64
	Wind Wind
}

// Name identifies the variant.
func (Diffusion) Name() string { return VariantDiffusion.String() }

// Validate checks the diffusion rate and wind.
func (r Diffusion) Validate() error {
	if err := checkRate("diffusion_rate", r.Rate); err != nil {
		return err
	}
	return r.Wind.Validate(false)
}

// Next applies one synchronous diffusion update.
func (r Diffusion) Next(cur *Grid, _ *Vegetation, rnd core.Source) (*Grid, error) {
	return burnOut(cur, rnd, func(_ int, _ int, o offset) (float64, error) {
		p := r.Rate + r.Wind.bonus(o)
		if math.IsNaN(p) || p < 0 {
			return 0, fmt.Errorf("%w: diffusion probability %v", ErrOutOfRangeProbability, p)
		}
		return p, nil
	})
}

// VegetationDiffusion scales the spread probability by the flammability of
// the neighbour being ignited, adds the wind influence and clamps the result
// to 1.
type VegetationDiffusion struct {
	BaseProb float64
	Wind     Wind
}

// Name identifies the variant.
func (VegetationDiffusion) Name() string { return VariantVegetation.String() }

// Validate checks the base probability and wind.
func (r VegetationDiffusion) Validate() error {
	if err := checkRate("base_prob_spread", r.BaseProb); err != nil {
		return err
	}
	return r.Wind.Validate(false)
}

// Next applies one synchronous vegetation-weighted update.
func (r VegetationDiffusion) Next(cur *Grid, veg *Vegetation, rnd core.Source) (*Grid, error) {
	if veg == nil {
		return nil, ErrMissingVegetation
	}
	if veg.Size() != cur.Size() {
		return nil, fmt.Errorf("%w: vegetation side %d, grid side %d", ErrInvalidParameter, veg.Size(), cur.Size())
	}
	return burnOut(cur, rnd, func(row, col int, o offset) (float64, error) {
		p := r.BaseProb*veg.At(row, col) + r.Wind.bonus(o)
		if math.IsNaN(p) || p < 0 {
			return 0, fmt.Errorf("%w: spread probability %v at (%d,%d)", ErrOutOfRangeProbability, p, row, col)
		}
		return math.Min(p, 1), nil
	})
}

// burnOut is the shared body of the one-step burn variants. prob resolves the
// ignition probability of the empty neighbour at (row, col), reached through
// offset o.
func burnOut(cur *Grid, rnd core.Source, prob func(row, col int, o offset) (float64, error)) (*Grid, error) {
	next := cur.successor()
	n := cur.Size()
	for row := 1; row < n-1; row++ {
		for col := 1; col < n-1; col++ {
			if cur.At(row, col) != Burning {
				continue
			}
			next.set(row, col, Burned)
			for _, o := range neighbourhood {
				nr, nc := row+o.row, col+o.col
				if !cur.Interior(nr, nc) || cur.At(nr, nc) != Empty {
					continue
				}
				p, err := prob(nr, nc, o)
				if err != nil {
					return nil, err
				}
				if rnd.Float64() < p {
					next.set(nr, nc, Burning)
				}
			}
		}
	}
	return next, nil
}

func checkRate(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("%w: %s %v outside [0,1]", ErrInvalidParameter, name, v)
	}
	return nil
}

func checkProbability(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("%w: %s %v", ErrOutOfRangeProbability, name, v)
	}
	return nil
}
