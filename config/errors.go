package config

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/rrtplan/spatialmath"
)

func newFieldRequiredError(path, what string) error {
	return errors.Errorf("%s: %s is not set", path, what)
}

func newOutOfBoundsError(what string, pt r3.Vector, domain spatialmath.Domain) error {
	return errors.Errorf("%s point (%.3f, %.3f, %.3f) is outside the map %v", what, pt.X, pt.Y, pt.Z, domain)
}

func newInsideObstacleError(what, obstacle string) error {
	return errors.Errorf("%s point is inside obstacle %s", what, obstacle)
}
