package main

import (
	"github.com/spf13/pflag"

	"firespread/internal/fire"
)

// configFlags binds a fire.Config to command-line flags.
type configFlags struct {
	cfg       fire.Config
	variant   string
	ignitions string
}

func newConfigFlags() *configFlags {
	cfg := fire.DefaultConfig()
	return &configFlags{cfg: cfg, variant: cfg.Params.Variant.String()}
}

// Bind attaches the configuration to the provided FlagSet.
func (f *configFlags) Bind(fs *pflag.FlagSet) {
	p := &f.cfg.Params
	fs.StringVar(&f.variant, "variant", f.variant, "spread rule: sir, diffusion or vegetation")
	fs.IntVar(&f.cfg.Size, "size", f.cfg.Size, "grid side length")
	fs.IntVar(&f.cfg.MaxIterations, "max-iterations", f.cfg.MaxIterations, "iteration cap")
	fs.Int64Var(&f.cfg.Seed, "seed", f.cfg.Seed, "random seed")
	fs.StringVar(&f.ignitions, "ignition", "", `initially burning cells as "row,col;row,col" (default: one random interior cell)`)
	fs.Float64Var(&p.Beta, "beta", p.Beta, "ignition probability per empty neighbour (sir)")
	fs.Float64Var(&p.Gamma, "gamma", p.Gamma, "burn-out probability per iteration (sir)")
	fs.Float64Var(&p.DiffusionRate, "diffusion-rate", p.DiffusionRate, "base spread probability (diffusion)")
	fs.Float64Var(&p.BaseProbSpread, "base-prob", p.BaseProbSpread, "spread probability scaled by vegetation (vegetation)")
	fs.Float64Var(&p.Wind.Direction.Row, "wind-row", p.Wind.Direction.Row, "wind direction row component")
	fs.Float64Var(&p.Wind.Direction.Col, "wind-col", p.Wind.Direction.Col, "wind direction column component")
	fs.Float64Var(&p.Wind.Influence, "wind-influence", p.Wind.Influence, "probability bonus in the wind direction")
	fs.BoolVar(&f.cfg.StrictWind, "strict-wind", f.cfg.StrictWind, "reject wind directions that are not a unit neighbour offset")
}

// Config resolves the string-valued flags and validates the result.
func (f *configFlags) Config() (fire.Config, error) {
	cfg := f.cfg
	variant, err := fire.ParseVariant(f.variant)
	if err != nil {
		return cfg, err
	}
	cfg.Params.Variant = variant
	if f.ignitions != "" {
		cells, err := fire.ParseCells(f.ignitions)
		if err != nil {
			return cfg, err
		}
		cfg.Ignitions = cells
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
