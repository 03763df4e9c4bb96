package fire

// RunRecord is the per-iteration population history of one run.
type RunRecord struct {
	// Counts holds one entry per executed iteration, starting at iteration 0.
	Counts []Counts
	// Stopped is the index of the last recorded iteration. It equals
	// len(Counts)-1 and is reported as the extinction time.
	Stopped int
	// Extinct is true when the run stopped because no cell was burning, and
	// false when it ran into the iteration cap.
	Extinct bool
}

// Len returns the number of recorded iterations.
func (r *RunRecord) Len() int { return len(r.Counts) }

// Empty returns the empty-cell series.
func (r *RunRecord) Empty() []int {
	return r.series(func(c Counts) int { return c.Empty })
}

// Burning returns the burning-cell series.
func (r *RunRecord) Burning() []int {
	return r.series(func(c Counts) int { return c.Burning })
}

// Burned returns the burned-cell series.
func (r *RunRecord) Burned() []int {
	return r.series(func(c Counts) int { return c.Burned })
}

// Last returns the final recorded counts.
func (r *RunRecord) Last() Counts {
	if len(r.Counts) == 0 {
		return Counts{}
	}
	return r.Counts[len(r.Counts)-1]
}

func (r *RunRecord) series(pick func(Counts) int) []int {
	out := make([]int, len(r.Counts))
	for i, c := range r.Counts {
		out[i] = pick(c)
	}
	return out
}

// Metrics summarises a single run.
type Metrics struct {
	// SpreadRate is the burned-cell count summed over every recorded
	// iteration, divided by ExtinctionTime.
	SpreadRate float64
	// ExtinctionTime is the iteration index at which the run stopped.
	ExtinctionTime int
}

// Measure derives the run metrics. SpreadRate is 0 when the run stopped at
// iteration 0.
func Measure(r *RunRecord) Metrics {
	m := Metrics{ExtinctionTime: r.Stopped}
	if r.Stopped == 0 {
		return m
	}
	total := 0
	for _, c := range r.Counts {
		total += c.Burned
	}
	m.SpreadRate = float64(total) / float64(r.Stopped)
	return m
}
