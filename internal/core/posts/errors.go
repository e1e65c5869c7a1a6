package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for common post operations
var (
	// ErrPostNotFound is returned when a post is not found by id
	ErrPostNotFound = errors.New("post not found")

	// ErrNotAuthor is returned when someone other than the author tries to edit a post
	ErrNotAuthor = errors.New("only the author can edit this post")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsNotFound checks if error is a post not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPostNotFound)
}

// IsNotAuthor checks if error is an authorship violation
func IsNotAuthor(err error) bool {
	return errors.Is(err, ErrNotAuthor)
}
