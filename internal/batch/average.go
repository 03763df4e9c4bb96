package batch

import (
	"fmt"

	"firespread/internal/fire"
)

// Trajectory is a per-iteration series of the three populations.
type Trajectory struct {
	Empty   []float64
	Burning []float64
	Burned  []float64
}

// Len returns the number of iterations in the trajectory.
func (t Trajectory) Len() int { return len(t.Burning) }

// FromRecord converts a single run into an unpadded trajectory.
func FromRecord(r *fire.RunRecord) Trajectory {
	t := Trajectory{
		Empty:   make([]float64, r.Len()),
		Burning: make([]float64, r.Len()),
		Burned:  make([]float64, r.Len()),
	}
	for i, c := range r.Counts {
		t.Empty[i] = float64(c.Empty)
		t.Burning[i] = float64(c.Burning)
		t.Burned[i] = float64(c.Burned)
	}
	return t
}

// Pad stretches or truncates a run to exactly length iterations. Past the
// end of the record, empty and burned counts repeat their last value and
// burning counts are zero.
func Pad(r *fire.RunRecord, length int) Trajectory {
	t := Trajectory{
		Empty:   make([]float64, length),
		Burning: make([]float64, length),
		Burned:  make([]float64, length),
	}
	if r.Len() == 0 {
		return t
	}
	last := r.Last()
	for i := 0; i < length; i++ {
		if i < r.Len() {
			c := r.Counts[i]
			t.Empty[i] = float64(c.Empty)
			t.Burning[i] = float64(c.Burning)
			t.Burned[i] = float64(c.Burned)
			continue
		}
		t.Empty[i] = float64(last.Empty)
		t.Burned[i] = float64(last.Burned)
	}
	return t
}

// Average pads every record to length and takes the element-wise mean.
func Average(records []*fire.RunRecord, length int) (Trajectory, error) {
	if len(records) == 0 {
		return Trajectory{}, fmt.Errorf("%w: no runs to average", fire.ErrInvalidParameter)
	}
	if length < 1 {
		return Trajectory{}, fmt.Errorf("%w: length %d, need at least 1", fire.ErrInvalidParameter, length)
	}
	avg := Trajectory{
		Empty:   make([]float64, length),
		Burning: make([]float64, length),
		Burned:  make([]float64, length),
	}
	for _, r := range records {
		p := Pad(r, length)
		for i := 0; i < length; i++ {
			avg.Empty[i] += p.Empty[i]
			avg.Burning[i] += p.Burning[i]
			avg.Burned[i] += p.Burned[i]
		}
	}
	k := float64(len(records))
	for i := 0; i < length; i++ {
		avg.Empty[i] /= k
		avg.Burning[i] /= k
		avg.Burned[i] /= k
	}
	return avg, nil
}
