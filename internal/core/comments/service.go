package comments

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rivo/uniseg"

	"Yatube/internal/core/posts"
)

// MaxGraphemes caps the visible length of a comment
const MaxGraphemes = 10000

type commentService struct {
	repo     Repository
	postRepo posts.Repository
}

// NewCommentService creates a new comment service
func NewCommentService(repo Repository, postRepo posts.Repository) Service {
	return &commentService{
		repo:     repo,
		postRepo: postRepo,
	}
}

// AddComment validates the text and appends the comment to the post
func (s *commentService) AddComment(ctx context.Context, req AddCommentRequest) (*Comment, error) {
	if req.AuthorID <= 0 {
		return nil, fmt.Errorf("author is required")
	}

	// 1. The post must exist
	if _, err := s.postRepo.GetByID(ctx, req.PostID); err != nil {
		return nil, err
	}

	// 2. Validate text
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, newValidationError("text", "This field is required.", ErrContentEmpty)
	}
	if uniseg.GraphemeClusterCount(text) > MaxGraphemes {
		return nil, newValidationError("text", fmt.Sprintf("Ensure this value has at most %d characters.", MaxGraphemes), ErrContentTooLong)
	}

	// 3. Persist, stamped with the authenticated author
	comment, err := s.repo.Create(ctx, &Comment{
		PostID:   req.PostID,
		AuthorID: req.AuthorID,
		Text:     text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	slog.Info("comment added", "comment_id", comment.ID, "post_id", comment.PostID, "author_id", comment.AuthorID)
	return comment, nil
}

// ListForPost returns all comments of a post
func (s *commentService) ListForPost(ctx context.Context, postID int64) ([]*Comment, error) {
	return s.repo.ListByPost(ctx, postID)
}
