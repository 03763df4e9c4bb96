package core

import "math/rand/v2"

// Source supplies the random draws consumed by the simulations. Float64 must
// return values in [0, 1) and IntN values in [0, n).
type Source interface {
	Float64() float64
	IntN(n int) int
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	seed uint64
	r    *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return newStream(uint64(seed), 0)
}

func newStream(seed, stream uint64) *RNG {
	return &RNG{seed: seed, r: rand.New(rand.NewPCG(seed, stream))}
}

// Stream derives an independent generator for the i-th member of a batch.
// Streams share the seed but start from distinct PCG states, so the draws of
// one trial never depend on how many draws another trial consumed.
func (r *RNG) Stream(i int) *RNG {
	return newStream(r.seed, uint64(i)+1)
}

// Float64 returns a uniform draw in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// IntN returns a uniform integer in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}
