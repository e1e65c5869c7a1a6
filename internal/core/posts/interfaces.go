package posts

import "context"

// Service defines the business logic interface for posts
type Service interface {
	// CreatePost validates the form and stores a post stamped with the author.
	// Nothing is written when validation fails.
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)

	// UpdatePost applies an edit by the post's author.
	// Returns ErrNotAuthor without writing anything when the editor is someone else.
	UpdatePost(ctx context.Context, req UpdatePostRequest) (*Post, error)

	// GetPost retrieves a hydrated post by id
	GetPost(ctx context.Context, id int64) (*Post, error)

	// CountByAuthor returns how many posts the user has written
	CountByAuthor(ctx context.Context, authorID int64) (int, error)
}

// Repository defines the data access interface for posts
type Repository interface {
	// Create inserts the post and fills in ID and PubDate
	Create(ctx context.Context, post *Post) (*Post, error)

	// GetByID retrieves a post with Author and Group hydrated
	GetByID(ctx context.Context, id int64) (*Post, error)

	// Update persists text, group and image of an existing post
	Update(ctx context.Context, post *Post) error

	CountByAuthor(ctx context.Context, authorID int64) (int, error)
}
