package domain

import (
	"context"
	"database/sql"
)

// Querier is the subset of database/sql satisfied by both *sql.DB and
// *sql.Tx. Repositories take it instead of a concrete handle so every
// statement joins whatever transaction the caller already holds.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
