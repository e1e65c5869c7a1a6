package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Yatube/internal/core/groups"
)

type postgresGroupRepo struct {
	db *sql.DB
}

// NewGroupRepository creates a new PostgreSQL group repository
func NewGroupRepository(db *sql.DB) groups.Repository {
	return &postgresGroupRepo{db: db}
}

// Create inserts a new group
func (r *postgresGroupRepo) Create(ctx context.Context, group *groups.Group) (*groups.Group, error) {
	query := `
		INSERT INTO groups (title, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, group.Title, group.Slug, group.Description).Scan(&group.ID)
	if err != nil {
		if isPQCode(err, uniqueViolation) {
			return nil, groups.ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

func (r *postgresGroupRepo) GetByID(ctx context.Context, id int64) (*groups.Group, error) {
	return r.getOne(ctx, `SELECT id, title, slug, description FROM groups WHERE id = $1`, id)
}

func (r *postgresGroupRepo) GetBySlug(ctx context.Context, slug string) (*groups.Group, error) {
	return r.getOne(ctx, `SELECT id, title, slug, description FROM groups WHERE slug = $1`, slug)
}

// List returns all groups ordered by title, for the post form
func (r *postgresGroupRepo) List(ctx context.Context) ([]*groups.Group, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, slug, description FROM groups ORDER BY title, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer closeRows(rows)

	var result []*groups.Group
	for rows.Next() {
		g := &groups.Group{}
		if err := rows.Scan(&g.ID, &g.Title, &g.Slug, &g.Description); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}
	return result, nil
}

func (r *postgresGroupRepo) getOne(ctx context.Context, query string, arg interface{}) (*groups.Group, error) {
	g := &groups.Group{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&g.ID, &g.Title, &g.Slug, &g.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, groups.ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return g, nil
}
