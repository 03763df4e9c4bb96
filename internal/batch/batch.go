// Package batch repeats fire runs over many independent trials, normalises
// their lengths and averages the resulting trajectories and metrics.
package batch

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"firespread/internal/core"
	"firespread/internal/fire"
)

// Spec is one parameter set to evaluate.
type Spec struct {
	Label  string
	Config fire.Config
}

// Name returns the label, falling back to the parameter description.
func (s Spec) Name() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Config.Params.Label()
}

// Options control how a batch is executed.
type Options struct {
	// Trials is the number of independent runs per spec.
	Trials int
	// Seed roots the random streams; trial i always draws from stream i.
	Seed int64
	// Workers bounds concurrent trials. Zero means GOMAXPROCS.
	Workers int
	// Logger receives progress messages. Nil discards them.
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Result holds every trial of one spec plus the normalised averages.
type Result struct {
	Spec    Spec
	Records []*fire.RunRecord
	Metrics []fire.Metrics
	Average Trajectory
	Summary Summary
}

// Run executes opts.Trials independent runs of spec in parallel. Each trial
// owns its grid, vegetation and random stream; results are stored by trial
// index so the outcome does not depend on scheduling.
func Run(ctx context.Context, spec Spec, opts Options) (*Result, error) {
	if opts.Trials < 1 {
		return nil, fmt.Errorf("%w: trials %d, need at least 1", fire.ErrInvalidParameter, opts.Trials)
	}
	if err := spec.Config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Name(), err)
	}
	logger := opts.logger().With("set", spec.Name())
	if spec.Config.Params.UsesWind() && spec.Config.Params.Wind.Influence > 0 && !spec.Config.Params.Wind.Aligned() {
		logger.Warn("wind direction is not a unit neighbour offset; its influence never applies",
			"direction", spec.Config.Params.Wind.Direction)
	}

	root := core.NewRNG(opts.Seed)
	records := make([]*fire.RunRecord, opts.Trials)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i := 0; i < opts.Trials; i++ {
		trial := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sim, err := spec.Config.NewSimulation(root.Stream(trial))
			if err != nil {
				return fmt.Errorf("trial %d: %w", trial, err)
			}
			rec, err := sim.Run(spec.Config.MaxIterations)
			if err != nil {
				return fmt.Errorf("trial %d: %w", trial, err)
			}
			records[trial] = rec
			logger.Debug("trial finished", "trial", trial, "stopped", rec.Stopped, "extinct", rec.Extinct)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Name(), err)
	}

	avg, err := Average(records, spec.Config.MaxIterations)
	if err != nil {
		return nil, err
	}
	metrics := make([]fire.Metrics, len(records))
	for i, rec := range records {
		metrics[i] = fire.Measure(rec)
	}
	summary := Summarize(spec, records)
	logger.Info("batch finished",
		"trials", opts.Trials,
		"spread_rate", fmt.Sprintf("%.2f", summary.SpreadRate),
		"extinction_time", fmt.Sprintf("%.2f", summary.ExtinctionTime),
		"elapsed", time.Since(start).Round(time.Millisecond))

	return &Result{
		Spec:    spec,
		Records: records,
		Metrics: metrics,
		Average: avg,
		Summary: summary,
	}, nil
}

// Replay reruns a single trial of a batch with observers attached. It draws
// from the same stream as Run, so the record matches Result.Records[trial].
func Replay(spec Spec, opts Options, trial int, observers ...fire.Observer) (*fire.RunRecord, error) {
	if trial < 0 {
		return nil, fmt.Errorf("%w: trial %d", fire.ErrInvalidParameter, trial)
	}
	sim, err := spec.Config.NewSimulation(core.NewRNG(opts.Seed).Stream(trial))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Name(), err)
	}
	for _, o := range observers {
		sim.Observe(o)
	}
	rec, err := sim.Run(spec.Config.MaxIterations)
	if err != nil {
		return nil, fmt.Errorf("%s: trial %d: %w", spec.Name(), trial, err)
	}
	return rec, nil
}

// Compare runs every spec in turn with the same options and returns the
// results in input order.
func Compare(ctx context.Context, specs []Spec, opts Options) ([]*Result, error) {
	results := make([]*Result, 0, len(specs))
	for _, spec := range specs {
		res, err := Run(ctx, spec, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Summaries extracts the summary row of each result.
func Summaries(results []*Result) []Summary {
	out := make([]Summary, len(results))
	for i, r := range results {
		out[i] = r.Summary
	}
	return out
}
