package postgres

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/lib/pq"
)

// PostgreSQL error codes we map to domain errors
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// isPQCode reports whether err is a PostgreSQL error with the given SQLSTATE
func isPQCode(err error, code string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}

// constraintName returns the violated constraint, if any
func constraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

func closeRows(rows *sql.Rows) {
	if closeErr := rows.Close(); closeErr != nil {
		slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
	}
}
