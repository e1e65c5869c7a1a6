package follows

import "context"

// Service defines the follow graph operations
type Service interface {
	// IsFollowing reports whether userID follows authorID
	IsFollowing(ctx context.Context, userID, authorID int64) (bool, error)

	// Follow creates the edge userID -> author. Self-follows and existing edges are no-ops.
	Follow(ctx context.Context, userID int64, authorUsername string) error

	// Unfollow removes the edge userID -> author if it exists
	Unfollow(ctx context.Context, userID int64, authorUsername string) error

	// FollowedAuthors returns the ids of every author userID follows
	FollowedAuthors(ctx context.Context, userID int64) ([]int64, error)
}

// Repository defines the data access interface for follow edges
type Repository interface {
	// Create inserts the edge. Returns false when it already existed.
	Create(ctx context.Context, userID, authorID int64) (bool, error)

	// Delete removes the edge. Returns false when there was nothing to remove.
	Delete(ctx context.Context, userID, authorID int64) (bool, error)

	Exists(ctx context.Context, userID, authorID int64) (bool, error)
	ListFollowedAuthorIDs(ctx context.Context, userID int64) ([]int64, error)
}
