package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

func newBadBoxDimensionsError(dims r3.Vector) error {
	return errors.Errorf("box dimensions must all be positive, got X:%v Y:%v Z:%v", dims.X, dims.Y, dims.Z)
}
