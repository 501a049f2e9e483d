package utils

import (
	"math/rand"
	"time"
)

// NewRandomSource returns a *rand.Rand for planners and samplers along with the seed it was built
// from. A negative seed is replaced by one taken from the wall clock, which is what production runs
// use; passing the returned seed back in reproduces the sequence.
func NewRandomSource(seed int64) (*rand.Rand, int64) {
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	//nolint:gosec
	return rand.New(rand.NewSource(seed)), seed
}

// UniformFloat returns a value drawn uniformly from [lo, hi) using r.
func UniformFloat(r *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}
