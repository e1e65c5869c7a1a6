package follows

import "errors"

var (
	// ErrAuthorNotFound is returned when the author to (un)follow does not exist
	ErrAuthorNotFound = errors.New("author not found")

	// ErrNotAuthenticated is returned when no follower identity was given
	ErrNotAuthenticated = errors.New("authentication required")
)

// IsNotFound checks if error is an unknown-author error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAuthorNotFound)
}
