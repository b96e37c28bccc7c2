package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the kind every boundary validation failure unwraps to.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError reports a single rejected field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
