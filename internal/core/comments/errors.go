package comments

import (
	"errors"
	"fmt"
)

var (
	// ErrContentEmpty indicates comment content is empty
	ErrContentEmpty = errors.New("comment content is required")

	// ErrContentTooLong indicates comment content exceeds MaxGraphemes
	ErrContentTooLong = errors.New("comment content is too long")
)

// ValidationError represents a rejected comment form field
type ValidationError struct {
	Err     error
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// newValidationError wraps a sentinel with field context
func newValidationError(field, message string, err error) error {
	return &ValidationError{
		Err:     err,
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
