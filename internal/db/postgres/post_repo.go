package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Yatube/internal/core/posts"
)

// postSelect reads a post with its author and optional group in one query.
// Scanned by scanPost.
const postSelect = `
	SELECT p.id, p.text, p.pub_date, p.author_id, p.group_id, p.image,
	       u.username, u.first_name, u.last_name,
	       g.title, g.slug
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id`

// postOrder is the feed ordering: newest first, ties by id
const postOrder = ` ORDER BY p.pub_date DESC, p.id DESC`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*posts.Post, error) {
	var (
		post       posts.Post
		author     posts.AuthorView
		groupID    sql.NullInt64
		groupTitle sql.NullString
		groupSlug  sql.NullString
	)

	err := row.Scan(
		&post.ID, &post.Text, &post.PubDate, &post.AuthorID, &groupID, &post.Image,
		&author.Username, &author.FirstName, &author.LastName,
		&groupTitle, &groupSlug,
	)
	if err != nil {
		return nil, err
	}

	author.ID = post.AuthorID
	post.Author = &author
	if groupID.Valid {
		id := groupID.Int64
		post.GroupID = &id
		post.Group = &posts.GroupRef{ID: id, Title: groupTitle.String, Slug: groupSlug.String}
	}
	return &post, nil
}

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// Create inserts a new post
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	query := `
		INSERT INTO posts (text, author_id, group_id, image)
		VALUES ($1, $2, $3, $4)
		RETURNING id, pub_date`

	err := r.db.QueryRowContext(ctx, query, post.Text, post.AuthorID, nullableID(post.GroupID), post.Image).
		Scan(&post.ID, &post.PubDate)
	if err != nil {
		if isPQCode(err, foreignKeyViolation) {
			return nil, fmt.Errorf("post references missing author or group: %w", err)
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// GetByID retrieves a hydrated post
func (r *postgresPostRepo) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx, postSelect+` WHERE p.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, posts.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// Update persists the editable fields. Author and pub_date never change.
func (r *postgresPostRepo) Update(ctx context.Context, post *posts.Post) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE posts SET text = $2, group_id = $3, image = $4 WHERE id = $1`,
		post.ID, post.Text, nullableID(post.GroupID), post.Image,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rowsAffected == 0 {
		return posts.ErrPostNotFound
	}
	return nil
}

func (r *postgresPostRepo) CountByAuthor(ctx context.Context, authorID int64) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
