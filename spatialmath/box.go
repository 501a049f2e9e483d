package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Box is an axis-aligned rectangular prism described by its center and half size.
type Box struct {
	Center   r3.Vector `json:"center"`
	HalfSize r3.Vector `json:"half_size"`
}

// NewBox instantiates a Box centered at center with full dimensions dims.
func NewBox(center, dims r3.Vector) (Box, error) {
	if dims.X <= 0 || dims.Y <= 0 || dims.Z <= 0 {
		return Box{}, newBadBoxDimensionsError(dims)
	}
	return Box{Center: center, HalfSize: dims.Mul(0.5)}, nil
}

// NewBoxFromCorner instantiates a Box whose minimum corner is at corner and whose full dimensions
// are dims. This is the form map editors store obstacles in.
func NewBoxFromCorner(corner, dims r3.Vector) (Box, error) {
	return NewBox(corner.Add(dims.Mul(0.5)), dims)
}

// Inflate returns a copy of the box whose half size is scaled by factor. The factor multiplies
// the box's own extent, so a factor below 1 shrinks the box.
func (b Box) Inflate(factor float64) Box {
	return Box{Center: b.Center, HalfSize: b.HalfSize.Mul(factor)}
}

// Dims returns the full dimensions of the box.
func (b Box) Dims() r3.Vector {
	return b.HalfSize.Mul(2)
}

// Min returns the corner with the smallest coordinates.
func (b Box) Min() r3.Vector {
	return b.Center.Sub(b.HalfSize)
}

// Max returns the corner with the largest coordinates.
func (b Box) Max() r3.Vector {
	return b.Center.Add(b.HalfSize)
}

// ContainsPoint reports whether pt lies inside the box, faces included.
func (b Box) ContainsPoint(pt r3.Vector) bool {
	lo, hi := b.Min(), b.Max()
	return lo.X <= pt.X && pt.X <= hi.X &&
		lo.Y <= pt.Y && pt.Y <= hi.Y &&
		lo.Z <= pt.Z && pt.Z <= hi.Z
}

// String returns a human readable string that represents the box.
func (b Box) String() string {
	dims := b.Dims()
	return fmt.Sprintf("Type: Box | Position: X:%.3f, Y:%.3f, Z:%.3f | Dims: X:%.3f, Y:%.3f, Z:%.3f",
		b.Center.X, b.Center.Y, b.Center.Z, dims.X, dims.Y, dims.Z)
}

func axis(v r3.Vector, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
