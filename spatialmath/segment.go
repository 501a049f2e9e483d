package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// ParallelAxisRule decides what the slab test does when a segment has no extent along an axis and
// its fixed coordinate on that axis lies outside the box.
type ParallelAxisRule int

const (
	// ParallelOutsideMisses treats a segment lying outside a slab it is parallel to as missing the
	// box, which is the geometrically correct answer.
	ParallelOutsideMisses ParallelAxisRule = iota
	// ParallelOutsideHits reports a hit in that case. Older planner results were produced with this
	// rule, so it is kept for reproducing them.
	ParallelOutsideHits
)

// SegmentIntersectsBox runs a slab test of the segment from->to, parametrized as
// from + t*(to-from) for t in [0, 1], against the box. Boundary contact counts as an intersection.
func SegmentIntersectsBox(from, to r3.Vector, b Box, rule ParallelAxisRule) bool {
	dir := to.Sub(from)
	lo, hi := b.Min(), b.Max()

	tMin := math.Inf(-1)
	tMax := math.Inf(1)
	for i := 0; i < 3; i++ {
		p := axis(from, i)
		d := axis(dir, i)
		slabLo, slabHi := axis(lo, i), axis(hi, i)

		if d == 0 {
			// Parallel to this slab: the axis imposes no constraint on t, only on position.
			if p < slabLo || p > slabHi {
				return rule == ParallelOutsideHits
			}
			continue
		}
		t1 := (slabLo - p) / d
		t2 := (slabHi - p) / d
		tMin = math.Max(tMin, math.Min(t1, t2))
		tMax = math.Min(tMax, math.Max(t1, t2))
	}

	if tMin > tMax || tMax < 0 || tMin > 1 {
		return false
	}
	return true
}
