package spatialmath

import (
	"github.com/golang/geo/r3"
)

// Partition splits the domain into n*n*n equal sub-domains, ordered x-major then y then z.
// It returns nil when n < 1.
func (d Domain) Partition(n int) []Domain {
	if n < 1 {
		return nil
	}
	steps := d.steps(n)
	parts := make([]Domain, 0, n*n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				parts = append(parts, Domain{
					d.cell(0, i, steps[0]),
					d.cell(1, j, steps[1]),
					d.cell(2, k, steps[2]),
				})
			}
		}
	}
	return parts
}

// LegacyPartition reproduces the partitioning used to produce older benchmark logs: it still
// yields n*n*n entries, but every entry uses the innermost loop index for all three axes, so only
// the n diagonal cells of the grid ever appear (each repeated n*n times).
func (d Domain) LegacyPartition(n int) []Domain {
	if n < 1 {
		return nil
	}
	steps := d.steps(n)
	parts := make([]Domain, 0, n*n*n)
	for i := 0; i < n*n; i++ {
		for k := 0; k < n; k++ {
			parts = append(parts, Domain{
				d.cell(0, k, steps[0]),
				d.cell(1, k, steps[1]),
				d.cell(2, k, steps[2]),
			})
		}
	}
	return parts
}

func (d Domain) steps(n int) [3]float64 {
	return [3]float64{
		d[0].Length() / float64(n),
		d[1].Length() / float64(n),
		d[2].Length() / float64(n),
	}
}

func (d Domain) cell(axis, idx int, step float64) Interval {
	lo := d[axis].Min + float64(idx)*step
	return Interval{Min: lo, Max: lo + step}
}

// FindContaining returns the index of the first domain in parts that contains pt, boundaries
// included, or -1 if none does.
func FindContaining(parts []Domain, pt r3.Vector) int {
	for i, part := range parts {
		if part.Contains(pt) {
			return i
		}
	}
	return -1
}
