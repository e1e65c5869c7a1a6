package feeds

import (
	"context"

	"Yatube/internal/core/posts"
)

// Service assembles the paginated post feeds
type Service interface {
	// GlobalFeed pages through every post. Served from the index cache while it is fresh.
	GlobalFeed(ctx context.Context, page string) (PostPage, error)

	// GroupFeed pages through a group's posts. ErrGroupNotFound for an unknown slug.
	GroupFeed(ctx context.Context, slug, page string) (*GroupFeed, error)

	// ProfileFeed pages through an author's posts.
	// viewerID is 0 for anonymous viewers, who never follow anyone.
	ProfileFeed(ctx context.Context, username string, viewerID int64, page string) (*ProfileFeed, error)

	// FollowedFeed pages through posts by authors the viewer follows
	FollowedFeed(ctx context.Context, viewerID int64, page string) (PostPage, error)
}

// Repository reads hydrated posts ordered by pub_date desc, id desc
type Repository interface {
	Count(ctx context.Context, filter Filter) (int, error)
	List(ctx context.Context, filter Filter, offset, limit int) ([]*posts.Post, error)

	// ListAll returns every post, used to fill the index cache
	ListAll(ctx context.Context) ([]*posts.Post, error)
}
