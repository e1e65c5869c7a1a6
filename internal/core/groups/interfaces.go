package groups

import "context"

// Repository defines the data access interface for groups
type Repository interface {
	// Create inserts a group. Returns ErrSlugTaken if the slug is already used.
	Create(ctx context.Context, group *Group) (*Group, error)
	GetByID(ctx context.Context, id int64) (*Group, error)
	GetBySlug(ctx context.Context, slug string) (*Group, error)
	// List returns every group ordered by title
	List(ctx context.Context) ([]*Group, error)
}

// Service defines the business logic interface for groups
type Service interface {
	Create(ctx context.Context, req CreateGroupRequest) (*Group, error)
	GetByID(ctx context.Context, id int64) (*Group, error)
	GetBySlug(ctx context.Context, slug string) (*Group, error)
	List(ctx context.Context) ([]*Group, error)
}
