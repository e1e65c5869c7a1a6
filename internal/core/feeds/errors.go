package feeds

import "errors"

var (
	// ErrGroupNotFound is returned for an unknown group slug
	ErrGroupNotFound = errors.New("group not found")

	// ErrAuthorNotFound is returned for an unknown profile username
	ErrAuthorNotFound = errors.New("author not found")

	// ErrNotAuthenticated is returned when the followed feed is requested anonymously
	ErrNotAuthenticated = errors.New("authentication required")
)

// IsNotFound checks if error is a missing group or author
func IsNotFound(err error) bool {
	return errors.Is(err, ErrGroupNotFound) || errors.Is(err, ErrAuthorNotFound)
}
