package groups

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var slugRegex = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

const (
	maxTitleLength = 200
	maxSlugLength  = 50
)

type groupService struct {
	repo Repository
}

// NewGroupService creates a new group service
func NewGroupService(repo Repository) Service {
	return &groupService{repo: repo}
}

// Create validates and stores a new group
func (s *groupService) Create(ctx context.Context, req CreateGroupRequest) (*Group, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(req.Slug)
	req.Description = strings.TrimSpace(req.Description)

	if req.Title == "" {
		return nil, NewValidationError("title", "title is required")
	}
	if len(req.Title) > maxTitleLength {
		return nil, NewValidationError("title", fmt.Sprintf("title must not exceed %d characters", maxTitleLength))
	}
	if req.Slug == "" || len(req.Slug) > maxSlugLength || !slugRegex.MatchString(req.Slug) {
		return nil, NewValidationError("slug", "slug must be 1-50 letters, numbers, underscores or hyphens")
	}
	if req.Description == "" {
		return nil, NewValidationError("description", "description is required")
	}

	group, err := s.repo.Create(ctx, &Group{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

// GetByID retrieves a group by id
func (s *groupService) GetByID(ctx context.Context, id int64) (*Group, error) {
	if id <= 0 {
		return nil, ErrGroupNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// GetBySlug retrieves a group by slug
func (s *groupService) GetBySlug(ctx context.Context, slug string) (*Group, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrGroupNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

// List returns all groups
func (s *groupService) List(ctx context.Context) ([]*Group, error) {
	return s.repo.List(ctx)
}
