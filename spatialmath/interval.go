// Package spatialmath defines the axis-aligned geometry used by the planners: per-axis intervals,
// the bounded search domain, box obstacles and segment/box intersection.
package spatialmath

import (
	"fmt"
)

// Interval is a closed range [Min, Max] along one axis.
type Interval struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// NewInterval returns the Interval [lo, hi].
func NewInterval(lo, hi float64) Interval {
	return Interval{Min: lo, Max: hi}
}

// Valid reports whether Min < Max.
func (i Interval) Valid() bool {
	return i.Min < i.Max
}

// Length returns Max - Min.
func (i Interval) Length() float64 {
	return i.Max - i.Min
}

// Contains reports whether v lies in the closed interval.
func (i Interval) Contains(v float64) bool {
	return i.Min <= v && v <= i.Max
}

// String returns a human readable string that represents the interval.
func (i Interval) String() string {
	return fmt.Sprintf("[%.3f, %.3f]", i.Min, i.Max)
}
