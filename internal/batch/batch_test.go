package batch

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"firespread/internal/core"
	"firespread/internal/fire"
)

// syntheticRecord builds a run of n entries over a 100-cell grid. Extinct
// runs end with no burning cells.
func syntheticRecord(n int, extinct bool) *fire.RunRecord {
	r := &fire.RunRecord{Stopped: n - 1, Extinct: extinct}
	for i := 0; i < n; i++ {
		c := fire.Counts{Empty: 90 - i, Burning: 1, Burned: 9 + i}
		if extinct && i == n-1 {
			c.Burning, c.Burned = 0, 10+i
		}
		r.Counts = append(r.Counts, c)
	}
	return r
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPadRepeatsFinalState(t *testing.T) {
	rec := syntheticRecord(4, true)
	p := Pad(rec, 8)
	if p.Len() != 8 {
		t.Fatalf("padded length %d", p.Len())
	}
	for i := 4; i < 8; i++ {
		if p.Empty[i] != 87 || p.Burning[i] != 0 || p.Burned[i] != 13 {
			t.Fatalf("index %d padded to (%v,%v,%v)", i, p.Empty[i], p.Burning[i], p.Burned[i])
		}
	}

	long := syntheticRecord(12, false)
	if got := Pad(long, 5); got.Len() != 5 || got.Burned[4] != 13 {
		t.Fatalf("truncation kept %d entries, burned[4]=%v", got.Len(), got.Burned[4])
	}
}

func TestAverageMixedLengths(t *testing.T) {
	// Runs stopping at 5, 10 and 3 averaged over a cap of 10.
	records := []*fire.RunRecord{
		syntheticRecord(6, true),
		syntheticRecord(11, false),
		syntheticRecord(4, true),
	}
	avg, err := Average(records, 10)
	if err != nil {
		t.Fatalf("Average: %v", err)
	}
	if avg.Len() != 10 {
		t.Fatalf("average length %d", avg.Len())
	}
	if !near(avg.Empty[6], 256.0/3) || !near(avg.Burning[6], 1.0/3) || !near(avg.Burned[6], 43.0/3) {
		t.Fatalf("index 6 = (%v,%v,%v)", avg.Empty[6], avg.Burning[6], avg.Burned[6])
	}
	for i := 0; i < avg.Len(); i++ {
		if sum := avg.Empty[i] + avg.Burning[i] + avg.Burned[i]; !near(sum, 100) {
			t.Fatalf("index %d averages sum to %v", i, sum)
		}
	}

	if _, err := Average(nil, 10); !errors.Is(err, fire.ErrInvalidParameter) {
		t.Fatalf("empty input: got %v", err)
	}
	if _, err := Average(records, 0); !errors.Is(err, fire.ErrInvalidParameter) {
		t.Fatalf("zero length: got %v", err)
	}
}

func testSpec(label string, variant fire.Variant) Spec {
	cfg := fire.DefaultConfig()
	cfg.Size = 10
	cfg.MaxIterations = 30
	cfg.Params.Variant = variant
	return Spec{Label: label, Config: cfg}
}

func TestRunIndependentOfWorkerCount(t *testing.T) {
	spec := testSpec("veg", fire.VariantVegetation)
	ctx := context.Background()

	serial, err := Run(ctx, spec, Options{Trials: 6, Seed: 9, Workers: 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	parallel, err := Run(ctx, spec, Options{Trials: 6, Seed: 9, Workers: 4})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(serial.Records, parallel.Records) {
		t.Fatal("worker count changed the trial outcomes")
	}

	sim, err := spec.Config.NewSimulation(core.NewRNG(9).Stream(2))
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	rec, err := sim.Run(spec.Config.MaxIterations)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(rec, serial.Records[2]) {
		t.Fatal("trial 2 should replay stream 2 of the root seed")
	}

	frames := 0
	replayed, err := Replay(spec, Options{Seed: 9}, 2, func(int, *fire.Grid) { frames++ })
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if !reflect.DeepEqual(replayed, serial.Records[2]) || frames != replayed.Len() {
		t.Fatalf("replay diverged from the batch (frames %d, len %d)", frames, replayed.Len())
	}
}

func TestRunSummaryMatchesMetrics(t *testing.T) {
	spec := testSpec("sir", fire.VariantSIR)
	res, err := Run(context.Background(), spec, Options{Trials: 5, Seed: 3})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Records) != 5 || len(res.Metrics) != 5 || res.Average.Len() != spec.Config.MaxIterations {
		t.Fatalf("records=%d metrics=%d average=%d", len(res.Records), len(res.Metrics), res.Average.Len())
	}
	spread, ext := 0.0, 0.0
	for _, m := range res.Metrics {
		spread += m.SpreadRate
		ext += float64(m.ExtinctionTime)
	}
	if !near(res.Summary.SpreadRate, spread/5) || !near(res.Summary.ExtinctionTime, ext/5) {
		t.Fatalf("summary %+v", res.Summary)
	}
	if res.Summary.Label != "sir" || res.Summary.Trials != 5 {
		t.Fatalf("summary label %q trials %d", res.Summary.Label, res.Summary.Trials)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	spec := testSpec("sir", fire.VariantSIR)
	if _, err := Run(context.Background(), spec, Options{Trials: 0}); !errors.Is(err, fire.ErrInvalidParameter) {
		t.Fatalf("zero trials: got %v", err)
	}
	spec.Config.Params.Beta = 1.5
	if _, err := Run(context.Background(), spec, Options{Trials: 2}); !errors.Is(err, fire.ErrInvalidParameter) {
		t.Fatalf("bad beta: got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, testSpec("sir", fire.VariantSIR), Options{Trials: 3}); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled context: got %v", err)
	}
}

func TestCompareKeepsInputOrder(t *testing.T) {
	specs := []Spec{
		testSpec("b", fire.VariantDiffusion),
		testSpec("a", fire.VariantSIR),
		{Config: testSpec("", fire.VariantVegetation).Config},
	}
	results, err := Compare(context.Background(), specs, Options{Trials: 2, Seed: 1})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	rows := Summaries(results)
	if len(rows) != 3 || rows[0].Label != "b" || rows[1].Label != "a" {
		t.Fatalf("rows out of order: %+v", rows)
	}
	if rows[2].Label != specs[2].Config.Params.Label() {
		t.Fatalf("unlabelled spec should fall back to its parameters, got %q", rows[2].Label)
	}
}

func TestSummarizeStdDev(t *testing.T) {
	records := []*fire.RunRecord{syntheticRecord(3, true), syntheticRecord(5, true)}
	s := Summarize(Spec{Label: "x"}, records)
	if s.ExtinctionTime != 3 || !near(s.ExtinctionTimeStdDev, math.Sqrt2) || s.ExtinctFraction != 1 {
		t.Fatalf("summary %+v", s)
	}
}
