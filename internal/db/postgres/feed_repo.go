package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"Yatube/internal/core/feeds"
	"Yatube/internal/core/posts"
)

// postgresFeedRepo reads feed pages.
//
// Indexes used (003_create_posts_table.sql):
//   - idx_posts_pub_date for the index feed
//   - idx_posts_author for profile and followed feeds
//   - idx_posts_group for group feeds
type postgresFeedRepo struct {
	db *sql.DB
}

// NewFeedRepository creates a new PostgreSQL feed repository
func NewFeedRepository(db *sql.DB) feeds.Repository {
	return &postgresFeedRepo{db: db}
}

// whereClause builds the filter condition. Only fixed SQL fragments are used;
// values are always passed as parameters.
func whereClause(filter feeds.Filter) (string, []interface{}) {
	switch {
	case filter.GroupID > 0:
		return ` WHERE p.group_id = $1`, []interface{}{filter.GroupID}
	case filter.AuthorID > 0:
		return ` WHERE p.author_id = $1`, []interface{}{filter.AuthorID}
	case len(filter.AuthorIDs) > 0:
		return ` WHERE p.author_id = ANY($1)`, []interface{}{pq.Array(filter.AuthorIDs)}
	default:
		return "", nil
	}
}

func (r *postgresFeedRepo) Count(ctx context.Context, filter feeds.Filter) (int, error) {
	where, args := whereClause(filter)

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts p`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count feed: %w", err)
	}
	return count, nil
}

func (r *postgresFeedRepo) List(ctx context.Context, filter feeds.Filter, offset, limit int) ([]*posts.Post, error) {
	where, args := whereClause(filter)
	n := len(args)
	query := postSelect + where + postOrder + fmt.Sprintf(` OFFSET $%d LIMIT $%d`, n+1, n+2)
	args = append(args, offset, limit)

	return r.query(ctx, query, args...)
}

func (r *postgresFeedRepo) ListAll(ctx context.Context) ([]*posts.Post, error) {
	return r.query(ctx, postSelect+postOrder)
}

func (r *postgresFeedRepo) query(ctx context.Context, query string, args ...interface{}) ([]*posts.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query feed: %w", err)
	}
	defer closeRows(rows)

	result := []*posts.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed post: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feed: %w", err)
	}
	return result, nil
}
