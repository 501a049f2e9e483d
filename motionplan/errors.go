package motionplan

import "github.com/pkg/errors"

func newNonPositiveSettingError(name string, value interface{}) error {
	return errors.Errorf("%s must be positive, got %v", name, value)
}

func newSettingOutOfRangeError(name string, value, lo, hi float64) error {
	return errors.Errorf("%s must be between %v and %v, got %v", name, lo, hi, value)
}
