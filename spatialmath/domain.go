package spatialmath

import (
	"fmt"
	"math/rand"

	"github.com/golang/geo/r3"

	"go.viam.com/rrtplan/utils"
)

// Domain is the axis-aligned bounding box of a search space, one Interval per axis in x, y, z order.
type Domain [3]Interval

// NewDomain builds a Domain from its three axis intervals.
func NewDomain(x, y, z Interval) Domain {
	return Domain{x, y, z}
}

// Valid reports whether every axis interval has Min < Max.
func (d Domain) Valid() bool {
	for _, axis := range d {
		if !axis.Valid() {
			return false
		}
	}
	return true
}

// Contains reports whether pt lies inside the domain, boundaries included.
func (d Domain) Contains(pt r3.Vector) bool {
	return d[0].Contains(pt.X) && d[1].Contains(pt.Y) && d[2].Contains(pt.Z)
}

// Min returns the corner with the smallest coordinates.
func (d Domain) Min() r3.Vector {
	return r3.Vector{X: d[0].Min, Y: d[1].Min, Z: d[2].Min}
}

// Max returns the corner with the largest coordinates.
func (d Domain) Max() r3.Vector {
	return r3.Vector{X: d[0].Max, Y: d[1].Max, Z: d[2].Max}
}

// Sample draws a point uniformly from the domain. Coordinates are drawn in x, y, z order, one
// rng.Float64 call each.
func (d Domain) Sample(rng *rand.Rand) r3.Vector {
	return r3.Vector{
		X: utils.UniformFloat(rng, d[0].Min, d[0].Max),
		Y: utils.UniformFloat(rng, d[1].Min, d[1].Max),
		Z: utils.UniformFloat(rng, d[2].Min, d[2].Max),
	}
}

// String returns a human readable string that represents the domain.
func (d Domain) String() string {
	return fmt.Sprintf("X:%v Y:%v Z:%v", d[0], d[1], d[2])
}
