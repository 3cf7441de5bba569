package models

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel for configuration errors: malformed input,
// bad amounts, duplicate participants or an impossible headcount.
var ErrInvalidInput = errors.New("invalid input")

// InputError describes a configuration error and which input caused it.
type InputError struct {
	Field   string
	Message string
}

// NewInputError creates an InputError for field.
func NewInputError(field, message string) error {
	return &InputError{Field: field, Message: message}
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", ErrInvalidInput, e.Message, e.Field)
}

// Unwrap returns ErrInvalidInput so callers can use errors.Is.
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}
