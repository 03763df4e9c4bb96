package fire

import (
	"fmt"

	"firespread/internal/core"
)

// Playback adapts a Config to core.Sim so a run can be shown frame by frame.
// Reset starts a fresh run; Step advances one iteration until the fire is
// out or the iteration cap is reached.
type Playback struct {
	cfg   Config
	sim   *Simulation
	cells []uint8
	err   error
}

// NewPlayback validates cfg and prepares the first run using cfg.Seed.
func NewPlayback(cfg Config) (*Playback, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Playback{cfg: cfg, cells: make([]uint8, cfg.Size*cfg.Size)}
	if err := p.restart(cfg.Seed); err != nil {
		return nil, err
	}
	return p, nil
}

// Name returns the simulation identifier.
func (p *Playback) Name() string { return "fire/" + p.cfg.Params.Variant.String() }

// Size returns the grid dimensions.
func (p *Playback) Size() core.Size { return core.Size{W: p.cfg.Size, H: p.cfg.Size} }

// Cells exposes the current states as bytes (0 empty, 1 burning, 2 burned).
func (p *Playback) Cells() []uint8 { return p.cells }

// Reset starts a new run. A zero seed reuses the configured seed.
func (p *Playback) Reset(seed int64) {
	if seed == 0 {
		seed = p.cfg.Seed
	}
	p.err = p.restart(seed)
}

// Step advances the run by one iteration.
func (p *Playback) Step() {
	if p.err != nil || p.sim == nil || p.Finished() {
		return
	}
	advanced, err := p.sim.Step()
	if err != nil {
		p.err = err
		return
	}
	if advanced {
		// Record the new grid now so a burned-out fire reads as extinct
		// on the frame that shows it.
		p.sim.observe()
	}
	p.sim.Grid().CopyBytes(p.cells)
}

// Finished reports whether the run is extinct or at its iteration cap.
func (p *Playback) Finished() bool {
	if p.sim == nil {
		return true
	}
	return p.sim.Done() || p.sim.Iteration() >= p.cfg.MaxIterations-1
}

// Iteration returns the index of the displayed grid.
func (p *Playback) Iteration() int {
	if p.sim == nil {
		return 0
	}
	return p.sim.Iteration()
}

// Counts returns the population of the displayed grid.
func (p *Playback) Counts() Counts {
	if p.sim == nil {
		return Counts{}
	}
	return p.sim.Grid().Counts()
}

// Err returns the error that stopped the run, if any.
func (p *Playback) Err() error { return p.err }

// State describes where the run is: burning, extinct, capped or failed.
func (p *Playback) State() string {
	switch {
	case p.err != nil:
		return "failed"
	case p.sim != nil && p.sim.Done():
		return "extinct"
	case p.Finished():
		return "capped"
	default:
		return "burning"
	}
}

// Status reports the live figures of the displayed grid.
func (p *Playback) Status() []core.Parameter {
	c := p.Counts()
	status := []core.Parameter{
		core.IntParam("iteration", "Iteration", p.Iteration()),
		core.IntParam("empty", "Empty", c.Empty),
		core.IntParam("burning", "Burning", c.Burning),
		core.IntParam("burned", "Burned", c.Burned),
		core.StringParam("state", "State", p.State()),
	}
	if p.sim != nil && p.sim.Vegetation() != nil {
		status = append(status, core.FloatParam("vegetation", "Mean veg", p.sim.Vegetation().Mean()))
	}
	return status
}

// VegetationField returns the weights of the current run, or nil for variants
// without vegetation.
func (p *Playback) VegetationField() []float64 {
	if p.sim == nil || p.sim.Vegetation() == nil {
		return nil
	}
	return p.sim.Vegetation().Values()
}

// WindVector returns the configured wind as (row, col, influence). Variants
// without wind report zero influence.
func (p *Playback) WindVector() (row, col, influence float64) {
	if !p.cfg.Params.UsesWind() {
		return 0, 0, 0
	}
	w := p.cfg.Params.Wind
	return w.Direction.Row, w.Direction.Col, w.Influence
}

func (p *Playback) restart(seed int64) error {
	sim, err := p.cfg.NewSimulation(core.NewRNG(seed))
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	p.sim = sim
	sim.Grid().CopyBytes(p.cells)
	return nil
}

// Parameters describes the configuration for display.
func (p *Playback) Parameters() core.ParameterSnapshot {
	return ParameterSnapshot(p.cfg)
}

// ParameterSnapshot groups the tunables of cfg for display, listing only the
// fields the selected variant reads.
func ParameterSnapshot(cfg Config) core.ParameterSnapshot {
	params := cfg.Params
	run := core.ParameterGroup{
		Name: "Run",
		Params: []core.Parameter{
			core.StringParam("variant", "Variant", params.Variant.String()),
			core.IntParam("size", "Grid size", cfg.Size),
			core.IntParam("max_iterations", "Max iterations", cfg.MaxIterations),
			core.Int64Param("seed", "Seed", cfg.Seed),
		},
	}
	spread := core.ParameterGroup{Name: "Spread"}
	switch params.Variant {
	case VariantSIR:
		spread.Params = []core.Parameter{
			core.FloatParam("beta", "Beta (ignition)", params.Beta),
			core.FloatParam("gamma", "Gamma (burn-out)", params.Gamma),
		}
	case VariantDiffusion:
		spread.Params = []core.Parameter{
			core.FloatParam("diffusion_rate", "Diffusion rate", params.DiffusionRate),
		}
	case VariantVegetation:
		spread.Params = []core.Parameter{
			core.FloatParam("base_prob_spread", "Base spread probability", params.BaseProbSpread),
		}
	}
	groups := []core.ParameterGroup{run, spread}
	if params.UsesWind() {
		groups = append(groups, core.ParameterGroup{
			Name: "Wind",
			Params: []core.Parameter{
				core.FloatParam("wind_row", "Direction row", params.Wind.Direction.Row),
				core.FloatParam("wind_col", "Direction col", params.Wind.Direction.Col),
				core.FloatParam("wind_influence", "Influence", params.Wind.Influence),
			},
		})
	}
	return core.ParameterSnapshot{Groups: groups}
}

func init() {
	for _, v := range []Variant{VariantSIR, VariantDiffusion, VariantVegetation} {
		variant := v
		core.Register(variant.String(), func(m map[string]string) (core.Sim, error) {
			cfg, err := FromMap(m)
			if err != nil {
				return nil, err
			}
			cfg.Params.Variant = variant
			return NewPlayback(cfg)
		})
	}
}
