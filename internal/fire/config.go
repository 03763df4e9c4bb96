package fire

import (
	"fmt"
	"strconv"
	"strings"

	"firespread/internal/core"
)

// Config describes one run: grid, ignition, iteration cap and rule parameters.
type Config struct {
	Size          int
	Seed          int64
	MaxIterations int

	// Ignitions lists the initially burning cells. When empty a single
	// interior cell is drawn from the run's random source.
	Ignitions []Cell

	// StrictWind rejects wind directions that can never match a neighbour.
	StrictWind bool

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size:          50,
		Seed:          1,
		MaxIterations: 100,
		Params: Params{
			Variant:        VariantSIR,
			Beta:           0.65,
			Gamma:          0.3,
			DiffusionRate:  0.5,
			BaseProbSpread: 0.6,
			Wind: Wind{
				Direction: Vector{Row: 0, Col: 1},
				Influence: 0.05,
			},
		},
	}
}

// Validate checks every field without building anything.
func (c Config) Validate() error {
	if c.Size < 3 {
		return fmt.Errorf("%w: side %d, need at least 3", ErrInvalidSize, c.Size)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("%w: max iterations %d, need at least 1", ErrInvalidParameter, c.MaxIterations)
	}
	for _, ig := range c.Ignitions {
		if ig.Row < 1 || ig.Row > c.Size-2 || ig.Col < 1 || ig.Col > c.Size-2 {
			return fmt.Errorf("%w: (%d,%d) outside interior [1,%d]", ErrInvalidIgnition, ig.Row, ig.Col, c.Size-2)
		}
	}
	_, err := c.Params.Rule(c.StrictWind)
	return err
}

// NewSimulation builds a ready-to-run simulation drawing from rnd. For the
// vegetation variant the field is sampled first, then the ignition (when not
// configured), so a given stream always yields the same landscape.
func (c Config) NewSimulation(rnd core.Source) (*Simulation, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	rule, err := c.Params.Rule(c.StrictWind)
	if err != nil {
		return nil, err
	}
	var veg *Vegetation
	if c.Params.NeedsVegetation() {
		veg, err = RandomVegetation(c.Size, rnd)
		if err != nil {
			return nil, err
		}
	}
	ignitions := c.Ignitions
	if len(ignitions) == 0 {
		ignitions = []Cell{RandomIgnition(c.Size, rnd)}
	}
	grid, err := NewGrid(c.Size, ignitions...)
	if err != nil {
		return nil, err
	}
	return NewSimulation(grid, veg, rule, rnd)
}

// FromMap overlays key=value settings onto the default configuration.
// Unknown keys are ignored; malformed values are errors.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	err := c.Apply(cfg)
	return c, err
}

// Apply overlays key=value settings onto c. Unknown keys are ignored. A
// malformed value is an error and leaves c unchanged.
func (c *Config) Apply(cfg map[string]string) error {
	next := *c
	ints := map[string]*int{
		"size":           &next.Size,
		"max_iterations": &next.MaxIterations,
	}
	for key, dst := range ints {
		if v, ok := cfg[key]; ok {
			parsed, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%w: %s=%q", ErrInvalidParameter, key, v)
			}
			*dst = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: seed=%q", ErrInvalidParameter, v)
		}
		next.Seed = parsed
	}
	floats := map[string]*float64{
		"beta":             &next.Params.Beta,
		"gamma":            &next.Params.Gamma,
		"diffusion_rate":   &next.Params.DiffusionRate,
		"base_prob_spread": &next.Params.BaseProbSpread,
		"wind_row":         &next.Params.Wind.Direction.Row,
		"wind_col":         &next.Params.Wind.Direction.Col,
		"wind_influence":   &next.Params.Wind.Influence,
	}
	for key, dst := range floats {
		if v, ok := cfg[key]; ok {
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return fmt.Errorf("%w: %s=%q", ErrInvalidParameter, key, v)
			}
			*dst = parsed
		}
	}
	if v, ok := cfg["variant"]; ok {
		variant, err := ParseVariant(v)
		if err != nil {
			return err
		}
		next.Params.Variant = variant
	}
	if v, ok := cfg["strict_wind"]; ok {
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: strict_wind=%q", ErrInvalidParameter, v)
		}
		next.StrictWind = parsed
	}
	if v, ok := cfg["ignition"]; ok {
		cells, err := ParseCells(v)
		if err != nil {
			return err
		}
		next.Ignitions = cells
	}
	*c = next
	return nil
}

// SweepKeys lists the numeric settings that can be varied in a parameter sweep.
var SweepKeys = []string{"beta", "gamma", "diffusion_rate", "base_prob_spread", "wind_row", "wind_col", "wind_influence"}

// ParseCells parses "row,col" pairs separated by semicolons, e.g. "2,2;3,4".
func ParseCells(s string) ([]Cell, error) {
	var cells []Cell
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		rc := strings.Split(part, ",")
		if len(rc) != 2 {
			return nil, fmt.Errorf("%w: cell %q, want row,col", ErrInvalidIgnition, part)
		}
		row, err := strconv.Atoi(strings.TrimSpace(rc[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: cell %q, want row,col", ErrInvalidIgnition, part)
		}
		col, err := strconv.Atoi(strings.TrimSpace(rc[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: cell %q, want row,col", ErrInvalidIgnition, part)
		}
		cells = append(cells, Cell{Row: row, Col: col})
	}
	return cells, nil
}
