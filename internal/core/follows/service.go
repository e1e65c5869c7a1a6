package follows

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"Yatube/internal/core/users"
)

type followService struct {
	repo     Repository
	userRepo users.Repository
}

// NewFollowService creates a new follow graph service
func NewFollowService(repo Repository, userRepo users.Repository) Service {
	return &followService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *followService) IsFollowing(ctx context.Context, userID, authorID int64) (bool, error) {
	if userID <= 0 || authorID <= 0 || userID == authorID {
		return false, nil
	}
	return s.repo.Exists(ctx, userID, authorID)
}

// Follow subscribes userID to the author's posts
func (s *followService) Follow(ctx context.Context, userID int64, authorUsername string) error {
	if userID <= 0 {
		return ErrNotAuthenticated
	}

	// 1. Resolve the author
	author, err := s.resolveAuthor(ctx, authorUsername)
	if err != nil {
		return err
	}

	// 2. Following yourself is silently ignored
	if author.ID == userID {
		return nil
	}

	// 3. Insert; an existing edge is left as is
	created, err := s.repo.Create(ctx, userID, author.ID)
	if err != nil {
		return fmt.Errorf("failed to follow author: %w", err)
	}
	if created {
		slog.Info("follow created", "user_id", userID, "author_id", author.ID)
	}
	return nil
}

// Unfollow removes the subscription if there is one
func (s *followService) Unfollow(ctx context.Context, userID int64, authorUsername string) error {
	if userID <= 0 {
		return ErrNotAuthenticated
	}

	author, err := s.resolveAuthor(ctx, authorUsername)
	if err != nil {
		return err
	}

	removed, err := s.repo.Delete(ctx, userID, author.ID)
	if err != nil {
		return fmt.Errorf("failed to unfollow author: %w", err)
	}
	if removed {
		slog.Info("follow removed", "user_id", userID, "author_id", author.ID)
	}
	return nil
}

func (s *followService) FollowedAuthors(ctx context.Context, userID int64) ([]int64, error) {
	if userID <= 0 {
		return nil, ErrNotAuthenticated
	}
	return s.repo.ListFollowedAuthorIDs(ctx, userID)
}

func (s *followService) resolveAuthor(ctx context.Context, username string) (*users.User, error) {
	username = strings.TrimSpace(username)
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
	return author, nil
}
