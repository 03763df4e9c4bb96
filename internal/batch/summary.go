package batch

import (
	"math"

	"firespread/internal/fire"
)

// Summary is one row of a parameter comparison.
type Summary struct {
	Label  string
	Params fire.Params
	Trials int

	// SpreadRate and ExtinctionTime are means over the trials.
	SpreadRate     float64
	ExtinctionTime float64

	// Spread of the per-trial values.
	SpreadRateStdDev     float64
	ExtinctionTimeStdDev float64

	// ExtinctFraction is the share of trials that burned out before the cap.
	ExtinctFraction float64
}

// Summarize reduces a set of trials to a comparison row.
func Summarize(spec Spec, records []*fire.RunRecord) Summary {
	s := Summary{Label: spec.Name(), Params: spec.Config.Params, Trials: len(records)}
	if len(records) == 0 {
		return s
	}
	spread := make([]float64, len(records))
	ext := make([]float64, len(records))
	extinct := 0
	for i, r := range records {
		m := fire.Measure(r)
		spread[i] = m.SpreadRate
		ext[i] = float64(m.ExtinctionTime)
		if r.Extinct {
			extinct++
		}
	}
	s.SpreadRate, s.SpreadRateStdDev = meanStdDev(spread)
	s.ExtinctionTime, s.ExtinctionTimeStdDev = meanStdDev(ext)
	s.ExtinctFraction = float64(extinct) / float64(len(records))
	return s
}

func meanStdDev(xs []float64) (float64, float64) {
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	if len(xs) < 2 {
		return mean, 0
	}
	ss := 0.0
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(len(xs)-1))
}
