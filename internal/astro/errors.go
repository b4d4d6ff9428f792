package astro

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every input-domain rejection in this module.
var ErrValidation = errors.New("validation error")

// ValidationError reports an input value outside the domain of an operation.
type ValidationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) succeed for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field string, value float64, format string, args ...any) error {
	return &ValidationError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}

// checkRange rejects v outside [min, max], and NaN.
func checkRange(field string, v, min, max float64) error {
	if !(v >= min && v <= max) {
		return invalid(field, v, "must be between %v and %v", min, max)
	}
	return nil
}
