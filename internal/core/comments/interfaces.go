package comments

import "context"

// Service defines the business logic interface for comments
type Service interface {
	// AddComment attaches a comment by the authenticated author to an existing post
	AddComment(ctx context.Context, req AddCommentRequest) (*Comment, error)

	// ListForPost returns the post's comments, oldest first
	ListForPost(ctx context.Context, postID int64) ([]*Comment, error)
}

// Repository defines the data access interface for comments
type Repository interface {
	// Create inserts the comment and fills in ID and CreatedAt
	Create(ctx context.Context, comment *Comment) (*Comment, error)

	// ListByPost returns comments with Author hydrated, oldest first
	ListByPost(ctx context.Context, postID int64) ([]*Comment, error)
}
