package comments

import (
	"time"

	"Yatube/internal/core/posts"
)

// Comment is a reply attached to a post. Comments are append-only.
type Comment struct {
	CreatedAt time.Time         `json:"createdAt" db:"created"`
	Author    *posts.AuthorView `json:"author,omitempty"`
	Text      string            `json:"text" db:"text"`
	ID        int64             `json:"id" db:"id"`
	PostID    int64             `json:"postId" db:"post_id"`
	AuthorID  int64             `json:"authorId" db:"author_id"`
}

// AddCommentRequest represents the submitted comment form
type AddCommentRequest struct {
	Text     string
	PostID   int64
	AuthorID int64
}
