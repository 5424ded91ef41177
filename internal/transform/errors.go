package transform

import (
	"errors"
	"fmt"
)

// ErrMissingField matches any *MissingFieldError via errors.Is.
var ErrMissingField = errors.New("missing field")

// MissingFieldError is returned when a Record lacks a field a transformer reads.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("record is missing field %q", e.Field)
}

// Is reports whether target is ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}
