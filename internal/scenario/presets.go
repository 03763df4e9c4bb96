package scenario

import (
	"fmt"
	"sort"
)

func sirSet(beta, gamma float64) Set {
	s := defaultSet()
	s.Variant = "sir"
	s.Beta, s.Gamma = beta, gamma
	return s
}

func windSet(rate float64, row, col, influence float64) Set {
	s := defaultSet()
	s.Variant = "diffusion"
	s.DiffusionRate = rate
	s.Wind = WindSpec{Direction: [2]float64{row, col}, Influence: influence}
	return s
}

var presets = map[string]func() File{
	"sir": func() File {
		f := base()
		f.Sets = []Set{
			sirSet(0.3, 0.1),
			sirSet(0.5, 0.2),
			sirSet(0.7, 0.4),
			sirSet(0.9, 0.5),
		}
		return f
	},
	// The last two directions are diagonal and never receive the bonus.
	"wind": func() File {
		f := base()
		f.Output.Dir = "simulation_results_wind"
		f.Sets = []Set{
			windSet(0.3, 0, 1, 0.05),
			windSet(0.5, 1, 0, 0.1),
			windSet(0.7, 1, 1, 0.15),
			windSet(0.9, 0.5, 0.5, 0.2),
		}
		return f
	},
}

// PresetNames lists the built-in scenarios.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns a fresh copy of a built-in scenario.
func Preset(name string) (*File, error) {
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (available: %v)", name, PresetNames())
	}
	f := build()
	return &f, nil
}

// Default returns the SIR comparison preset.
func Default() *File {
	f := presets["sir"]()
	return &f
}
