package fire

import (
	"errors"
	"fmt"

	"firespread/internal/core"
)

// Observer is notified with every recorded grid, in iteration order. The grid
// is an immutable snapshot and may be retained.
type Observer func(iteration int, g *Grid)

// Simulation drives one run: it owns the grid, the optional vegetation field,
// the transition rule, the random source and the run record.
type Simulation struct {
	rule Rule
	grid *Grid
	veg  *Vegetation
	rnd  core.Source

	iteration int
	done      bool
	record    RunRecord
	observers []Observer
}

type vegetationReader interface {
	readsVegetation() bool
}

func (VegetationDiffusion) readsVegetation() bool { return true }

// NewSimulation validates the inputs and returns a simulation positioned at
// iteration 0. veg may be nil for rules that do not read vegetation.
func NewSimulation(grid *Grid, veg *Vegetation, rule Rule, rnd core.Source) (*Simulation, error) {
	if grid == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrInvalidParameter)
	}
	if rule == nil {
		return nil, fmt.Errorf("%w: nil rule", ErrInvalidParameter)
	}
	if rnd == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidParameter)
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if vr, ok := rule.(vegetationReader); ok && vr.readsVegetation() && veg == nil {
		return nil, fmt.Errorf("%w: rule %s", ErrMissingVegetation, rule.Name())
	}
	if veg != nil && veg.Size() != grid.Size() {
		return nil, fmt.Errorf("%w: vegetation side %d, grid side %d", ErrInvalidParameter, veg.Size(), grid.Size())
	}
	return &Simulation{rule: rule, grid: grid, veg: veg, rnd: rnd}, nil
}

// Observe registers an observer for every subsequently recorded iteration.
func (s *Simulation) Observe(o Observer) {
	if o != nil {
		s.observers = append(s.observers, o)
	}
}

// Grid returns the current grid.
func (s *Simulation) Grid() *Grid { return s.grid }

// Vegetation returns the vegetation field, or nil.
func (s *Simulation) Vegetation() *Vegetation { return s.veg }

// Rule returns the transition rule.
func (s *Simulation) Rule() Rule { return s.rule }

// Iteration returns the index of the current grid.
func (s *Simulation) Iteration() int { return s.iteration }

// Done reports whether the fire has gone out.
func (s *Simulation) Done() bool { return s.done }

// Record returns a copy of the history recorded so far.
func (s *Simulation) Record() *RunRecord {
	r := s.record
	r.Counts = append([]Counts(nil), s.record.Counts...)
	return &r
}

// Step records the current iteration and, unless the fire is extinct,
// advances the grid once. It reports whether the grid advanced.
func (s *Simulation) Step() (bool, error) {
	if s.done {
		return false, nil
	}
	s.observe()
	if s.done {
		return false, nil
	}
	if err := s.advance(); err != nil {
		return false, err
	}
	return true, nil
}

// Run steps until the fire is extinct or maxIterations iterations have been
// recorded, and returns the record. The grid is not advanced past the last
// recorded iteration.
func (s *Simulation) Run(maxIterations int) (*RunRecord, error) {
	if maxIterations < 1 {
		return nil, fmt.Errorf("%w: max iterations %d, need at least 1", ErrInvalidParameter, maxIterations)
	}
	for !s.done {
		s.observe()
		if s.done || len(s.record.Counts) >= maxIterations {
			break
		}
		if err := s.advance(); err != nil {
			return nil, err
		}
	}
	return s.Record(), nil
}

// observe appends the counts of the current grid unless already recorded.
func (s *Simulation) observe() {
	if len(s.record.Counts) > s.iteration {
		return
	}
	c := s.grid.Counts()
	s.record.Counts = append(s.record.Counts, c)
	s.record.Stopped = s.iteration
	for _, o := range s.observers {
		o(s.iteration, s.grid)
	}
	if c.Burning == 0 {
		s.done = true
		s.record.Extinct = true
	}
}

func (s *Simulation) advance() error {
	next, err := s.rule.Next(s.grid, s.veg, s.rnd)
	if err != nil {
		s.done = true
		return fmt.Errorf("iteration %d: %w", s.iteration, err)
	}
	if next == nil || next.Size() != s.grid.Size() {
		s.done = true
		return errors.New("transition rule returned a grid of the wrong size")
	}
	s.grid = next
	s.iteration++
	return nil
}
