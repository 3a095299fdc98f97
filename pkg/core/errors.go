package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrReadOnly   = errors.New("repository is in read-only mode")
	ErrValidation = errors.New("invalid reading")
	ErrNotFound   = errors.New("reading not found")
)

// ValidationError reports an out-of-range or malformed field of a reading.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrValidation) match any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func rangeError(field, label string, lo, hi int) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%s must be between %d and %d", label, lo, hi),
	}
}
