package fire

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	"firespread/internal/core"
)

func variantConfigs() []Config {
	base := DefaultConfig()
	base.Size = 12
	base.MaxIterations = 60

	sir := base
	sir.Params.Variant = VariantSIR
	sir.Params.Beta = 0.6
	sir.Params.Gamma = 0.2

	diff := base
	diff.Params.Variant = VariantDiffusion
	diff.Params.DiffusionRate = 0.7
	diff.Params.Wind = Wind{Direction: Vector{1, 0}, Influence: 0.5}

	veg := base
	veg.Params.Variant = VariantVegetation
	veg.Params.BaseProbSpread = 0.95
	veg.Params.Wind = Wind{Direction: Vector{0, -1}, Influence: 0.3}

	return []Config{sir, diff, veg}
}

func TestInvariantsAcrossVariants(t *testing.T) {
	for _, cfg := range variantConfigs() {
		t.Run(cfg.Params.Variant.String(), func(t *testing.T) {
			for seed := int64(1); seed <= 20; seed++ {
				sim, err := cfg.NewSimulation(core.NewRNG(seed))
				if err != nil {
					t.Fatalf("NewSimulation: %v", err)
				}
				var grids []*Grid
				sim.Observe(func(_ int, g *Grid) { grids = append(grids, g) })
				rec, err := sim.Run(cfg.MaxIterations)
				if err != nil {
					t.Fatalf("Run: %v", err)
				}
				if len(grids) != rec.Len() {
					t.Fatalf("observer saw %d grids, record has %d", len(grids), rec.Len())
				}
				checkRun(t, cfg, rec, grids)
			}
		})
	}
}

func checkRun(t *testing.T, cfg Config, rec *RunRecord, grids []*Grid) {
	t.Helper()
	n := cfg.Size
	for i, c := range rec.Counts {
		if c.Total() != n*n {
			t.Fatalf("iteration %d counts %+v do not sum to %d", i, c, n*n)
		}
	}
	for i := 1; i < len(grids); i++ {
		prev, cur := grids[i-1], grids[i]
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				before, after := prev.At(r, c), cur.At(r, c)
				if before == Burned && after != Burned {
					t.Fatalf("iteration %d: burned cell (%d,%d) became %v", i, r, c, after)
				}
				if before == Empty && after == Burned {
					t.Fatalf("iteration %d: cell (%d,%d) skipped burning", i, r, c)
				}
				if !cur.Interior(r, c) && after == Burning {
					t.Fatalf("iteration %d: border cell (%d,%d) is burning", i, r, c)
				}
				if cfg.Params.Variant != VariantSIR && before == Burning && after != Burned {
					t.Fatalf("iteration %d: burning cell (%d,%d) did not burn out", i, r, c)
				}
			}
		}
	}
	last := rec.Last()
	if rec.Extinct != (last.Burning == 0) {
		t.Fatalf("extinct=%v but final burning count %d", rec.Extinct, last.Burning)
	}
	if !rec.Extinct && rec.Len() != cfg.MaxIterations {
		t.Fatalf("run stopped early at %d without extinction", rec.Stopped)
	}
	if rec.Stopped != rec.Len()-1 {
		t.Fatalf("stopped=%d with %d entries", rec.Stopped, rec.Len())
	}
}

func TestRunDeterministic(t *testing.T) {
	for _, cfg := range variantConfigs() {
		run := func() *RunRecord {
			sim, err := cfg.NewSimulation(core.NewRNG(42))
			if err != nil {
				t.Fatalf("NewSimulation: %v", err)
			}
			rec, err := sim.Run(cfg.MaxIterations)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			return rec
		}
		a, b := run(), run()
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("%s: identical seeds produced different records", cfg.Params.Variant)
		}
	}
}

func TestRunRejectsZeroCap(t *testing.T) {
	sim, err := NewSimulation(mustGrid(t, 5, Cell{2, 2}), nil, SIR{Beta: 0.5, Gamma: 0.5}, core.NewRNG(1))
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	if _, err := sim.Run(0); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("got %v, want ErrInvalidParameter", err)
	}
	if got := sim.Record().Len(); got != 0 {
		t.Fatalf("a rejected run must not record anything, got %d entries", got)
	}
}

func TestRunStopsAtCapWithoutAdvancing(t *testing.T) {
	sim, err := NewSimulation(mustGrid(t, 5, Cell{2, 2}), nil, SIR{Beta: 0, Gamma: 0}, core.NewRNG(1))
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	rec, err := sim.Run(1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rec.Len() != 1 || rec.Stopped != 0 || sim.Iteration() != 0 {
		t.Fatalf("len=%d stopped=%d iteration=%d", rec.Len(), rec.Stopped, sim.Iteration())
	}
	if m := Measure(rec); m.SpreadRate != 0 || m.ExtinctionTime != 0 {
		t.Fatalf("metrics for a zero-length run: %+v", m)
	}
}

type failingRule struct{ SIR }

func (failingRule) Next(*Grid, *Vegetation, core.Source) (*Grid, error) {
	return nil, ErrOutOfRangeProbability
}

func TestRunFailsWithoutRecord(t *testing.T) {
	sim, err := NewSimulation(mustGrid(t, 5, Cell{2, 2}), nil, failingRule{}, core.NewRNG(1))
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	rec, err := sim.Run(5)
	if !errors.Is(err, ErrOutOfRangeProbability) || rec != nil {
		t.Fatalf("got record %v, err %v", rec, err)
	}
	if advanced, err := sim.Step(); advanced || err != nil {
		t.Fatalf("a failed simulation must stay stopped, got %v %v", advanced, err)
	}
}

func TestMeasureSumsBurnedCounts(t *testing.T) {
	rec := &RunRecord{
		Counts: []Counts{
			{Empty: 8, Burning: 1},
			{Empty: 5, Burning: 3, Burned: 1},
			{Empty: 5, Burning: 0, Burned: 4},
		},
		Stopped: 2,
		Extinct: true,
	}
	m := Measure(rec)
	if m.ExtinctionTime != 2 || m.SpreadRate != 2.5 {
		t.Fatalf("metrics %+v, want spread 2.5 and extinction 2", m)
	}
}

func TestFromMap(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"size":           "9",
		"variant":        "diffusion",
		"diffusion_rate": "0.4",
		"wind_row":       "-1",
		"wind_influence": "0.2",
		"ignition":       "2,3; 4,4",
		"strict_wind":    "true",
	})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if cfg.Size != 9 || cfg.Params.Variant != VariantDiffusion || cfg.Params.DiffusionRate != 0.4 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Params.Wind.Direction != (Vector{-1, 1}) {
		t.Fatalf("wind direction %+v, want row override on default col", cfg.Params.Wind.Direction)
	}
	if !reflect.DeepEqual(cfg.Ignitions, []Cell{{2, 3}, {4, 4}}) || !cfg.StrictWind {
		t.Fatalf("ignitions %v strict %v", cfg.Ignitions, cfg.StrictWind)
	}
	// (-1,1) is diagonal, so the strict check rejects it.
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("Validate: got %v", err)
	}

	for _, bad := range []map[string]string{
		{"beta": "lots"},
		{"size": "x"},
		{"variant": "plasma"},
		{"ignition": "1;2"},
	} {
		if _, err := FromMap(bad); err == nil {
			t.Fatalf("expected error for %v", bad)
		}
	}
}

func TestPlaybackStepsToCompletion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 8
	cfg.MaxIterations = 15
	cfg.Ignitions = []Cell{{3, 3}}
	cfg.Params.Variant = VariantDiffusion

	p, err := NewPlayback(cfg)
	if err != nil {
		t.Fatalf("NewPlayback: %v", err)
	}
	if got := p.Cells()[3*8+3]; got != uint8(Burning) {
		t.Fatalf("ignition cell byte = %d", got)
	}
	for i := 0; i < 100 && !p.Finished(); i++ {
		p.Step()
	}
	if !p.Finished() || p.Err() != nil {
		t.Fatalf("finished=%v err=%v", p.Finished(), p.Err())
	}
	if p.Iteration() > cfg.MaxIterations-1 {
		t.Fatalf("playback ran past the cap: %d", p.Iteration())
	}
	if len(p.Parameters().Groups) != 3 {
		t.Fatalf("diffusion playback should expose run, spread and wind groups")
	}

	p.Reset(0)
	if p.Iteration() != 0 {
		t.Fatalf("reset should rewind to iteration 0, got %d", p.Iteration())
	}
}

func TestRegisteredFactories(t *testing.T) {
	for _, name := range []string{"sir", "diffusion", "vegetation"} {
		f, ok := core.Sims()[name]
		if !ok {
			t.Fatalf("factory %q not registered", name)
		}
		sim, err := f(map[string]string{"size": "10"})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if sim.Size() != (core.Size{W: 10, H: 10}) || sim.Name() != "fire/"+name {
			t.Fatalf("%s: name %q size %+v", name, sim.Name(), sim.Size())
		}
	}
	if _, err := core.Sims()["sir"](map[string]string{"size": "2"}); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("tiny grid: got %v", err)
	}
}

func TestPlaybackOverlayData(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 6
	cfg.MaxIterations = 10
	cfg.Ignitions = []Cell{{2, 2}}
	cfg.Params.Beta, cfg.Params.Gamma = 0, 1

	p, err := NewPlayback(cfg)
	if err != nil {
		t.Fatalf("NewPlayback: %v", err)
	}
	if p.State() != "burning" || p.VegetationField() != nil {
		t.Fatalf("state %q vegetation %v", p.State(), p.VegetationField())
	}
	if _, _, influence := p.WindVector(); influence != 0 {
		t.Fatalf("sir playback reported wind influence %v", influence)
	}
	p.Step()
	if c := p.Counts(); c.Burning != 0 || p.Iteration() != 1 {
		t.Fatalf("after one step counts %+v iteration %d", c, p.Iteration())
	}
	if p.State() != "extinct" || !p.Finished() {
		t.Fatalf("burned-out grid should read as extinct at once, got %q", p.State())
	}
	p.Step()
	if p.Iteration() != 1 {
		t.Fatalf("extinct playback advanced to iteration %d", p.Iteration())
	}
	status := p.Status()
	if len(status) != 5 || status[3].Key != "burned" {
		t.Fatalf("status %+v", status)
	}

	cfg.Params.Variant = VariantVegetation
	cfg.Params.Wind = Wind{Direction: Vector{0, 1}, Influence: 0.25}
	p, err = NewPlayback(cfg)
	if err != nil {
		t.Fatalf("NewPlayback: %v", err)
	}
	field := p.VegetationField()
	if len(field) != 36 {
		t.Fatalf("vegetation field has %d weights", len(field))
	}
	sum := 0.0
	for _, w := range field {
		sum += w
	}
	status = p.Status()
	last := status[len(status)-1]
	if len(status) != 6 || last.Key != "vegetation" || last.Value != strconv.FormatFloat(sum/36, 'f', -1, 64) {
		t.Fatalf("vegetation status %+v, want mean %v", last, sum/36)
	}
	if row, col, influence := p.WindVector(); row != 0 || col != 1 || influence != 0.25 {
		t.Fatalf("wind (%v,%v,%v)", row, col, influence)
	}
}

func TestConfigApplyKeepsUnsetFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 20
	if err := cfg.Apply(map[string]string{"gamma": "0.05", "unknown": "x"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.Size != 20 || cfg.Params.Gamma != 0.05 || cfg.Params.Beta != DefaultConfig().Params.Beta {
		t.Fatalf("config after Apply %+v", cfg)
	}
}

func TestConfigApplyIsAllOrNothing(t *testing.T) {
	for i := 0; i < 20; i++ {
		cfg := DefaultConfig()
		want := cfg
		err := cfg.Apply(map[string]string{
			"size":           "30",
			"max_iterations": "7",
			"beta":           "0.9",
			"gamma":          "bad",
			"wind_influence": "0.4",
		})
		if !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("Apply: got %v", err)
		}
		if !reflect.DeepEqual(cfg, want) {
			t.Fatalf("failed Apply changed the config: %+v", cfg)
		}
	}
}
