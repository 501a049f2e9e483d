package spatialmath

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestSegmentIntersectsBox(t *testing.T) {
	unit, err := NewBox(r3.Vector{}, r3.Vector{X: 2, Y: 2, Z: 2})
	test.That(t, err, test.ShouldBeNil)

	cases := []struct {
		name     string
		from, to r3.Vector
		expected bool
	}{
		{"passes through center", r3.Vector{X: -3, Y: -3, Z: -3}, r3.Vector{X: 3, Y: 3, Z: 3}, true},
		{"starts inside", r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 5, Y: 5, Z: 5}, true},
		{"fully inside", r3.Vector{X: 0.1, Y: 0.2, Z: 0.3}, r3.Vector{X: -0.1, Y: -0.2, Z: -0.3}, true},
		{"stops short", r3.Vector{X: -5, Y: 0.5, Z: 0.5}, r3.Vector{X: -1.5, Y: 0.5, Z: 0.5}, false},
		{"starts past", r3.Vector{X: 1.5, Y: 0.5, Z: 0.5}, r3.Vector{X: 5, Y: 0.5, Z: 0.5}, false},
		{"misses diagonally", r3.Vector{X: -3, Y: 2, Z: 0}, r3.Vector{X: 2, Y: 3, Z: 0}, false},
		{"touches face", r3.Vector{X: -3, Y: 0, Z: 0}, r3.Vector{X: -1, Y: 0, Z: 0}, true},
		{"touches edge", r3.Vector{X: -3, Y: 1, Z: 1}, r3.Vector{X: 3, Y: 1, Z: 1}, true},
		{"parallel inside slab", r3.Vector{X: -3, Y: 0, Z: 0.5}, r3.Vector{X: 3, Y: 0, Z: 0.5}, true},
		{"parallel outside slab", r3.Vector{X: -3, Y: 0, Z: 1.5}, r3.Vector{X: 3, Y: 0, Z: 1.5}, false},
		{"point inside", r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}, r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}, true},
		{"point outside", r3.Vector{X: 1.5, Y: 0.5, Z: 0.5}, r3.Vector{X: 1.5, Y: 0.5, Z: 0.5}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			test.That(t, SegmentIntersectsBox(c.from, c.to, unit, ParallelOutsideMisses), test.ShouldEqual, c.expected)
			// endpoint order never changes the verdict
			test.That(t, SegmentIntersectsBox(c.to, c.from, unit, ParallelOutsideMisses), test.ShouldEqual, c.expected)
		})
	}
}

func TestSegmentIntersectsBoxParallelRule(t *testing.T) {
	b, err := NewBox(r3.Vector{X: 10, Y: 10, Z: 10}, r3.Vector{X: 1, Y: 1, Z: 1})
	test.That(t, err, test.ShouldBeNil)

	// far away and parallel to the z slab: only the legacy rule blocks it
	from := r3.Vector{X: 0, Y: 0, Z: 0}
	to := r3.Vector{X: 0.3, Y: 0.3, Z: 0}
	test.That(t, SegmentIntersectsBox(from, to, b, ParallelOutsideMisses), test.ShouldBeFalse)
	test.That(t, SegmentIntersectsBox(from, to, b, ParallelOutsideHits), test.ShouldBeTrue)
	test.That(t, SegmentIntersectsBox(to, from, b, ParallelOutsideHits), test.ShouldBeTrue)

	// no zero direction component: both rules agree
	to = r3.Vector{X: 0.3, Y: 0.3, Z: 0.3}
	test.That(t, SegmentIntersectsBox(from, to, b, ParallelOutsideMisses), test.ShouldBeFalse)
	test.That(t, SegmentIntersectsBox(from, to, b, ParallelOutsideHits), test.ShouldBeFalse)
}

func TestSegmentIntersectsInflatedBox(t *testing.T) {
	b, err := NewBox(r3.Vector{}, r3.Vector{X: 2, Y: 2, Z: 2})
	test.That(t, err, test.ShouldBeNil)
	from := r3.Vector{X: -3, Y: 1.5, Z: 0.5}
	to := r3.Vector{X: 3, Y: 1.5, Z: 0.5}
	test.That(t, SegmentIntersectsBox(from, to, b, ParallelOutsideMisses), test.ShouldBeFalse)
	test.That(t, SegmentIntersectsBox(from, to, b.Inflate(1.75), ParallelOutsideMisses), test.ShouldBeTrue)
	test.That(t, SegmentIntersectsBox(r3.Vector{X: -3, Y: 0.8, Z: 0}, r3.Vector{X: 3, Y: 0.8, Z: 0}, b.Inflate(0.5), ParallelOutsideMisses),
		test.ShouldBeFalse)
}
