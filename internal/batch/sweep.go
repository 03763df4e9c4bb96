package batch

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"

	"firespread/internal/fire"
)

// Axis is one swept parameter and the values it takes.
type Axis struct {
	Key    string
	Values []float64
}

// ParseAxis reads "key=v1,v2,..." as used on the command line.
func ParseAxis(s string) (Axis, error) {
	key, list, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return Axis{}, fmt.Errorf("%w: axis %q, want key=v1,v2", fire.ErrInvalidParameter, s)
	}
	if !slices.Contains(fire.SweepKeys, key) {
		return Axis{}, fmt.Errorf("%w: cannot sweep %q (one of %s)", fire.ErrInvalidParameter, key, strings.Join(fire.SweepKeys, ", "))
	}
	axis := Axis{Key: key}
	for _, field := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return Axis{}, fmt.Errorf("%w: axis %s value %q", fire.ErrInvalidParameter, key, field)
		}
		axis.Values = append(axis.Values, v)
	}
	return axis, nil
}

// Expand builds one spec per combination of axis values applied over base.
// The last axis varies fastest.
func Expand(base fire.Config, axes []Axis) ([]Spec, error) {
	if len(axes) == 0 {
		return nil, fmt.Errorf("%w: nothing to sweep", fire.ErrInvalidParameter)
	}
	specs := []Spec{{Config: base}}
	for _, axis := range axes {
		if len(axis.Values) == 0 {
			return nil, fmt.Errorf("%w: axis %s has no values", fire.ErrInvalidParameter, axis.Key)
		}
		next := make([]Spec, 0, len(specs)*len(axis.Values))
		for _, spec := range specs {
			for _, v := range axis.Values {
				cfg := spec.Config
				if err := cfg.Apply(map[string]string{axis.Key: strconv.FormatFloat(v, 'g', -1, 64)}); err != nil {
					return nil, err
				}
				label := fmt.Sprintf("%s=%g", axis.Key, v)
				if spec.Label != "" {
					label = spec.Label + " " + label
				}
				next = append(next, Spec{Label: label, Config: cfg})
			}
		}
		specs = next
	}
	return specs, nil
}

// Sweep evaluates every spec with a pool of opts.Workers goroutines, one spec
// per worker at a time with its trials run serially. Rows come back in spec
// order.
func Sweep(ctx context.Context, specs []Spec, opts Options) ([]Summary, error) {
	for _, spec := range specs {
		if err := spec.Config.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Name(), err)
		}
	}
	logger := opts.logger()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type job struct {
		index int
		spec  Spec
	}
	type outcome struct {
		index   int
		summary Summary
		err     error
	}

	jobs := make(chan job)
	results := make(chan outcome)
	var wg sync.WaitGroup

	inner := opts
	inner.Workers = 1
	inner.Logger = nil
	for i := 0; i < opts.workers(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				res, err := Run(ctx, j.spec, inner)
				out := outcome{index: j.index, err: err}
				if err == nil {
					out.summary = res.Summary
				}
				results <- out
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for i, spec := range specs {
			select {
			case jobs <- job{index: i, spec: spec}:
			case <-ctx.Done():
				return
			}
		}
	}()

	rows := make([]Summary, len(specs))
	var firstErr error
	done := 0
	for out := range results {
		if out.err != nil {
			if firstErr == nil {
				firstErr = out.err
				cancel()
			}
			continue
		}
		rows[out.index] = out.summary
		done++
		logger.Debug("sweep point done", "set", out.summary.Label, "spread", out.summary.SpreadRate, "progress", fmt.Sprintf("%d/%d", done, len(specs)))
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil && done < len(specs) {
		return nil, err
	}
	return rows, nil
}

// RankBy names the summary column a sweep is sorted on.
type RankBy string

const (
	RankSpreadRate     RankBy = "spread_rate"
	RankExtinctionTime RankBy = "extinction_time"
	RankExtinct        RankBy = "extinct"
)

// Rank returns a copy of rows sorted by the chosen column, highest first.
// Ties keep their sweep order.
func Rank(rows []Summary, by RankBy) ([]Summary, error) {
	var key func(Summary) float64
	switch by {
	case RankSpreadRate:
		key = func(s Summary) float64 { return s.SpreadRate }
	case RankExtinctionTime:
		key = func(s Summary) float64 { return s.ExtinctionTime }
	case RankExtinct:
		key = func(s Summary) float64 { return s.ExtinctFraction }
	default:
		return nil, fmt.Errorf("%w: rank by %q", fire.ErrInvalidParameter, by)
	}
	ranked := slices.Clone(rows)
	sort.SliceStable(ranked, func(i, j int) bool { return key(ranked[i]) > key(ranked[j]) })
	return ranked, nil
}
