// Package scenario loads batch experiments from YAML files: the grid and run
// settings shared by every trial, the output options and the parameter sets to
// compare.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"firespread/internal/batch"
	"firespread/internal/fire"
)

// File is the on-disk scenario description.
type File struct {
	GridSize      int        `yaml:"grid_size"`
	MaxIterations int        `yaml:"max_iterations"`
	Trials        int        `yaml:"trials"`
	Seed          int64      `yaml:"seed"`
	Workers       int        `yaml:"workers,omitempty"`
	StrictWind    bool       `yaml:"strict_wind,omitempty"`
	Ignitions     []Ignition `yaml:"ignitions,omitempty,flow"`
	Output        Output     `yaml:"output"`
	Sets          []Set      `yaml:"sets"`
}

// Ignition is an initially burning cell. When a scenario lists none, every
// trial draws its own interior ignition.
type Ignition struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// Output controls what a batch writes besides the summary table.
type Output struct {
	Dir string `yaml:"dir"`
	// CaptureEvery writes a frame of the first trial every N iterations.
	// Zero disables frame capture.
	CaptureEvery int  `yaml:"capture_every,omitempty"`
	Video        bool `yaml:"video,omitempty"`
	Scale        int  `yaml:"scale"`
	FPS          int  `yaml:"fps"`
}

// WindSpec is the YAML form of fire.Wind.
type WindSpec struct {
	Direction [2]float64 `yaml:"direction,flow"`
	Influence float64    `yaml:"influence"`
}

// Set is one parameter set. Omitted fields take the default configuration's
// values.
type Set struct {
	Label          string   `yaml:"label,omitempty"`
	Variant        string   `yaml:"variant"`
	Beta           float64  `yaml:"beta"`
	Gamma          float64  `yaml:"gamma"`
	DiffusionRate  float64  `yaml:"diffusion_rate"`
	BaseProbSpread float64  `yaml:"base_prob_spread"`
	Wind           WindSpec `yaml:"wind"`
}

var setKeys = map[string]bool{
	"label": true, "variant": true, "beta": true, "gamma": true,
	"diffusion_rate": true, "base_prob_spread": true, "wind": true,
}

func defaultSet() Set {
	p := fire.DefaultConfig().Params
	return Set{
		Variant:        p.Variant.String(),
		Beta:           p.Beta,
		Gamma:          p.Gamma,
		DiffusionRate:  p.DiffusionRate,
		BaseProbSpread: p.BaseProbSpread,
		Wind: WindSpec{
			Direction: [2]float64{p.Wind.Direction.Row, p.Wind.Direction.Col},
			Influence: p.Wind.Influence,
		},
	}
}

// UnmarshalYAML fills omitted fields from the defaults and rejects unknown keys.
func (s *Set) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: parameter set must be a mapping", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		if !setKeys[key.Value] {
			return fmt.Errorf("line %d: unknown parameter set field %q", key.Line, key.Value)
		}
	}
	type plain Set
	raw := plain(defaultSet())
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*s = Set(raw)
	return nil
}

// Params converts the set into rule parameters.
func (s Set) Params() (fire.Params, error) {
	variant, err := fire.ParseVariant(s.Variant)
	if err != nil {
		return fire.Params{}, err
	}
	return fire.Params{
		Variant:        variant,
		Beta:           s.Beta,
		Gamma:          s.Gamma,
		DiffusionRate:  s.DiffusionRate,
		BaseProbSpread: s.BaseProbSpread,
		Wind: fire.Wind{
			Direction: fire.Vector{Row: s.Wind.Direction[0], Col: s.Wind.Direction[1]},
			Influence: s.Wind.Influence,
		},
	}, nil
}

func base() File {
	return File{
		GridSize:      50,
		MaxIterations: 100,
		Trials:        10,
		Seed:          1,
		Output: Output{
			Dir:   "simulation_results",
			Scale: 8,
			FPS:   10,
		},
	}
}

// Load reads and validates a scenario file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scenario from YAML. Fields missing from the document keep
// their defaults; unknown fields are errors.
func Parse(data []byte) (*File, error) {
	f := base()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Marshal renders the scenario as YAML.
func (f *File) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks the run settings and every parameter set.
func (f *File) Validate() error {
	var errs []error
	if f.Trials < 1 {
		errs = append(errs, fmt.Errorf("%w: trials %d, need at least 1", fire.ErrInvalidParameter, f.Trials))
	}
	if f.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: workers %d", fire.ErrInvalidParameter, f.Workers))
	}
	if f.Output.Scale < 1 {
		errs = append(errs, fmt.Errorf("%w: output scale %d", fire.ErrInvalidParameter, f.Output.Scale))
	}
	if f.Output.FPS < 1 {
		errs = append(errs, fmt.Errorf("%w: output fps %d", fire.ErrInvalidParameter, f.Output.FPS))
	}
	if f.Output.CaptureEvery < 0 {
		errs = append(errs, fmt.Errorf("%w: capture_every %d", fire.ErrInvalidParameter, f.Output.CaptureEvery))
	}
	if len(f.Sets) == 0 {
		errs = append(errs, fmt.Errorf("%w: scenario has no parameter sets", fire.ErrInvalidParameter))
	}
	seen := map[string]int{}
	for i, s := range f.Sets {
		cfg, err := f.Config(s)
		if err == nil {
			err = cfg.Validate()
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("set %d: %w", i, err))
			continue
		}
		label := batch.Spec{Label: s.Label, Config: cfg}.Name()
		if j, dup := seen[label]; dup {
			errs = append(errs, fmt.Errorf("%w: sets %d and %d share the label %q", fire.ErrInvalidParameter, j, i, label))
		}
		seen[label] = i
	}
	return errors.Join(errs...)
}

// Config builds the run configuration for one set.
func (f *File) Config(s Set) (fire.Config, error) {
	params, err := s.Params()
	if err != nil {
		return fire.Config{}, err
	}
	cfg := fire.Config{
		Size:          f.GridSize,
		Seed:          f.Seed,
		MaxIterations: f.MaxIterations,
		StrictWind:    f.StrictWind,
		Params:        params,
	}
	for _, ig := range f.Ignitions {
		cfg.Ignitions = append(cfg.Ignitions, fire.Cell{Row: ig.Row, Col: ig.Col})
	}
	return cfg, nil
}

// Specs converts every set into a batch spec, in file order.
func (f *File) Specs() ([]batch.Spec, error) {
	specs := make([]batch.Spec, 0, len(f.Sets))
	for i, s := range f.Sets {
		cfg, err := f.Config(s)
		if err != nil {
			return nil, fmt.Errorf("set %d: %w", i, err)
		}
		specs = append(specs, batch.Spec{Label: s.Label, Config: cfg})
	}
	return specs, nil
}

// Options returns the batch options described by the file.
func (f *File) Options() batch.Options {
	return batch.Options{Trials: f.Trials, Seed: f.Seed, Workers: f.Workers}
}
