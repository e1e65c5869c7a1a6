package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Yatube/internal/core/follows"
)

type postgresFollowRepo struct {
	db *sql.DB
}

// NewFollowRepository creates a new PostgreSQL follow repository
func NewFollowRepository(db *sql.DB) follows.Repository {
	return &postgresFollowRepo{db: db}
}

// Create inserts the edge; an existing edge is left untouched
func (r *postgresFollowRepo) Create(ctx context.Context, userID, authorID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO follows (user_id, author_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, author_id) DO NOTHING`,
		userID, authorID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create follow: %w", err)
	}
	return affected(result)
}

func (r *postgresFollowRepo) Delete(ctx context.Context, userID, authorID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM follows WHERE user_id = $1 AND author_id = $2`, userID, authorID)
	if err != nil {
		return false, fmt.Errorf("failed to delete follow: %w", err)
	}
	return affected(result)
}

func (r *postgresFollowRepo) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2)`,
		userID, authorID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return exists, nil
}

func (r *postgresFollowRepo) ListFollowedAuthorIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT author_id FROM follows WHERE user_id = $1 ORDER BY author_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list follows: %w", err)
	}
	defer closeRows(rows)

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan follow: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating follows: %w", err)
	}
	return ids, nil
}

func affected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return n > 0, nil
}
