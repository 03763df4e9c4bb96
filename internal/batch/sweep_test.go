package batch

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"firespread/internal/fire"
)

func TestParseAxis(t *testing.T) {
	axis, err := ParseAxis("beta=0.1, 0.5,0.9")
	if err != nil {
		t.Fatalf("ParseAxis: %v", err)
	}
	if axis.Key != "beta" || !reflect.DeepEqual(axis.Values, []float64{0.1, 0.5, 0.9}) {
		t.Fatalf("axis %+v", axis)
	}
	for _, bad := range []string{"beta", "=0.1", "size=10,20", "gamma=0.1,x"} {
		if _, err := ParseAxis(bad); !errors.Is(err, fire.ErrInvalidParameter) {
			t.Fatalf("ParseAxis(%q) = %v", bad, err)
		}
	}
}

func TestExpandCartesian(t *testing.T) {
	base := testSpec("", fire.VariantSIR).Config
	specs, err := Expand(base, []Axis{
		{Key: "beta", Values: []float64{0.2, 0.8}},
		{Key: "gamma", Values: []float64{0.1, 0.3, 0.5}},
	})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(specs) != 6 {
		t.Fatalf("got %d specs", len(specs))
	}
	last := specs[5]
	if last.Label != "beta=0.8 gamma=0.5" || last.Config.Params.Beta != 0.8 || last.Config.Params.Gamma != 0.5 {
		t.Fatalf("last spec %+v", last)
	}
	if specs[1].Config.Params.Beta != 0.2 || specs[1].Config.Params.Gamma != 0.3 {
		t.Fatalf("last axis should vary fastest: %+v", specs[1].Config.Params)
	}
	if base.Params.Beta != fire.DefaultConfig().Params.Beta {
		t.Fatalf("Expand modified the base config")
	}
	if _, err := Expand(base, nil); err == nil {
		t.Fatal("empty sweep should fail")
	}
}

func TestSweepMatchesRun(t *testing.T) {
	specs, err := Expand(testSpec("", fire.VariantSIR).Config, []Axis{{Key: "beta", Values: []float64{0.3, 0.9}}})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	opts := Options{Trials: 3, Seed: 11, Workers: 2}
	rows, err := Sweep(context.Background(), specs, opts)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	for i, spec := range specs {
		res, err := Run(context.Background(), spec, opts)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if !reflect.DeepEqual(rows[i], res.Summary) {
			t.Fatalf("row %d = %+v, want %+v", i, rows[i], res.Summary)
		}
	}
}

func TestSweepRejectsInvalidPoint(t *testing.T) {
	specs, err := Expand(testSpec("", fire.VariantSIR).Config, []Axis{{Key: "beta", Values: []float64{0.5, 1.5}}})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if _, err := Sweep(context.Background(), specs, Options{Trials: 1}); !errors.Is(err, fire.ErrInvalidParameter) {
		t.Fatalf("Sweep with beta 1.5: %v", err)
	}
}

func TestRank(t *testing.T) {
	rows := []Summary{
		{Label: "a", SpreadRate: 1, ExtinctionTime: 9},
		{Label: "b", SpreadRate: 3, ExtinctionTime: 2},
		{Label: "c", SpreadRate: 3, ExtinctionTime: 5},
	}
	ranked, err := Rank(rows, RankSpreadRate)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if ranked[0].Label != "b" || ranked[1].Label != "c" || ranked[2].Label != "a" {
		t.Fatalf("ranked %+v", ranked)
	}
	if rows[0].Label != "a" {
		t.Fatal("Rank sorted its input in place")
	}
	if ranked, _ = Rank(rows, RankExtinctionTime); ranked[0].Label != "a" {
		t.Fatalf("by extinction time %+v", ranked)
	}
	if _, err := Rank(rows, "heat"); err == nil {
		t.Fatal("unknown column should fail")
	}
}
