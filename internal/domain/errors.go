package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel matched by every InvalidInputError.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports a projection input that cannot be computed.
// The caller should re-prompt for the named field; nothing is retried.
type InvalidInputError struct {
	Field  string
	Reason string
}

// NewInvalidInputError builds an InvalidInputError with a formatted reason.
func NewInvalidInputError(field, format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidInput) match any InvalidInputError.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
