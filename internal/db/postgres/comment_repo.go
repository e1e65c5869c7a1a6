package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Yatube/internal/core/comments"
	"Yatube/internal/core/posts"
)

type postgresCommentRepo struct {
	db *sql.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) comments.Repository {
	return &postgresCommentRepo{db: db}
}

// Create appends a comment to a post
func (r *postgresCommentRepo) Create(ctx context.Context, comment *comments.Comment) (*comments.Comment, error) {
	query := `
		INSERT INTO comments (post_id, author_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created`

	err := r.db.QueryRowContext(ctx, query, comment.PostID, comment.AuthorID, comment.Text).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		if isPQCode(err, foreignKeyViolation) {
			return nil, posts.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// ListByPost returns a post's comments in creation order
func (r *postgresCommentRepo) ListByPost(ctx context.Context, postID int64) ([]*comments.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.text, c.created,
		       u.username, u.first_name, u.last_name
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created, c.id`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer closeRows(rows)

	var result []*comments.Comment
	for rows.Next() {
		c := &comments.Comment{}
		author := &posts.AuthorView{}
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.CreatedAt,
			&author.Username, &author.FirstName, &author.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		author.ID = c.AuthorID
		c.Author = author
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return result, nil
}
