package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrValidation marks input rejected before any write
	ErrValidation = errors.New("validation failed")

	ErrShiftAlreadyOpen = errors.New("a shift is already open")
	ErrNoOpenShift      = errors.New("no open shift")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func validName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", validationError("%s is required", field)
	}
	return name, nil
}

func validAmount(field string, v float64, allowZero bool) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return validationError("%s must be a finite number", field)
	}
	if v < 0 || (!allowZero && v == 0) {
		if allowZero {
			return validationError("%s must not be negative", field)
		}
		return validationError("%s must be greater than zero", field)
	}
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
