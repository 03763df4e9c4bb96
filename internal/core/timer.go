package core

import "time"

// FixedStep paces playback so a simulation advances at a steady number of
// iterations per second, independent of the window refresh rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given rate.
// The first call to ShouldStep always fires.
func NewFixedStep(perSecond int) *FixedStep {
	fs := &FixedStep{}
	fs.SetRate(perSecond)
	fs.accumulator = fs.step
	return fs
}

// SetRate changes the step rate. Non-positive rates fall back to 10 per second.
func (f *FixedStep) SetRate(perSecond int) {
	if perSecond <= 0 {
		perSecond = 10
	}
	f.step = time.Second / time.Duration(perSecond)
}

// ShouldStep reports whether the simulation should advance by one iteration.
func (f *FixedStep) ShouldStep() bool {
	return f.ShouldStepAt(time.Now())
}

// ShouldStepAt is ShouldStep with an explicit clock reading.
func (f *FixedStep) ShouldStepAt(now time.Time) bool {
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
