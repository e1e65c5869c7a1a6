package feeds

import (
	"context"
	"fmt"
	"log/slog"

	"Yatube/internal/core/follows"
	"Yatube/internal/core/groups"
	"Yatube/internal/core/pagination"
	"Yatube/internal/core/posts"
	"Yatube/internal/core/users"
)

type feedService struct {
	repo      Repository
	groupRepo groups.Repository
	userRepo  users.Repository
	follows   follows.Service
	cache     *IndexCache
}

// NewFeedService creates a new feed service. cache may be nil to disable caching.
func NewFeedService(
	repo Repository,
	groupRepo groups.Repository,
	userRepo users.Repository,
	followService follows.Service,
	cache *IndexCache,
) Service {
	return &feedService{
		repo:      repo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
		follows:   followService,
		cache:     cache,
	}
}

// GlobalFeed pages through every post
func (s *feedService) GlobalFeed(ctx context.Context, page string) (PostPage, error) {
	// 1. Serve from the snapshot when fresh
	if snapshot, ok := s.cache.Get(); ok {
		return pagination.Paginate(snapshot, page), nil
	}

	// 2. Reload the full ordered stream
	snapshot, err := s.repo.ListAll(ctx)
	if err != nil {
		return PostPage{}, fmt.Errorf("failed to load index feed: %w", err)
	}
	s.cache.Set(snapshot)
	hits, misses := s.cache.Stats()
	slog.Debug("index feed reloaded", "posts", len(snapshot), "cache_hits", hits, "cache_misses", misses)

	return pagination.Paginate(snapshot, page), nil
}

// GroupFeed pages through a group's posts
func (s *feedService) GroupFeed(ctx context.Context, slug, page string) (*GroupFeed, error) {
	// 1. Resolve the group
	if slug == "" {
		return nil, ErrGroupNotFound
	}
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		if groups.IsNotFound(err) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to look up group: %w", err)
	}

	// 2. Fetch the page
	postPage, err := s.page(ctx, Filter{GroupID: group.ID}, page)
	if err != nil {
		return nil, err
	}

	return &GroupFeed{Group: group, Page: postPage}, nil
}

// ProfileFeed pages through an author's posts
func (s *feedService) ProfileFeed(ctx context.Context, username string, viewerID int64, page string) (*ProfileFeed, error) {
	// 1. Resolve the author
	if username == "" {
		return nil, ErrAuthorNotFound
	}
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if users.IsNotFound(err) {
			return nil, ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to look up author: %w", err)
	}

	// 2. Fetch the page; the window total doubles as the post count
	postPage, err := s.page(ctx, Filter{AuthorID: author.ID}, page)
	if err != nil {
		return nil, err
	}

	// 3. Follow state for the viewer
	following, err := s.follows.IsFollowing(ctx, viewerID, author.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check follow state: %w", err)
	}

	return &ProfileFeed{
		Author:    author,
		Page:      postPage,
		PostCount: postPage.Total,
		Following: following,
	}, nil
}

// FollowedFeed pages through posts by authors the viewer follows
func (s *feedService) FollowedFeed(ctx context.Context, viewerID int64, page string) (PostPage, error) {
	if viewerID <= 0 {
		return PostPage{}, ErrNotAuthenticated
	}

	// 1. Who the viewer follows
	authorIDs, err := s.follows.FollowedAuthors(ctx, viewerID)
	if err != nil {
		return PostPage{}, fmt.Errorf("failed to list followed authors: %w", err)
	}

	// 2. Nobody followed is an empty feed, not an error
	if len(authorIDs) == 0 {
		return pagination.NewPage[*posts.Post](nil, pagination.Resolve(0, page)), nil
	}

	return s.page(ctx, Filter{AuthorIDs: authorIDs}, page)
}

// page counts the filtered stream and loads only the requested window
func (s *feedService) page(ctx context.Context, filter Filter, page string) (PostPage, error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return PostPage{}, fmt.Errorf("failed to count posts: %w", err)
	}

	w := pagination.Resolve(total, page)
	if w.Limit == 0 {
		return pagination.NewPage[*posts.Post](nil, w), nil
	}

	items, err := s.repo.List(ctx, filter, w.Offset, w.Limit)
	if err != nil {
		return PostPage{}, fmt.Errorf("failed to list posts: %w", err)
	}
	return pagination.NewPage(items, w), nil
}
