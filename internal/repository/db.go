// Package repository declares the storage ports used by the use cases.
// Adapters live under internal/infra/adapter/persistence.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrDuplicate is returned by adapters when a unique constraint rejects a write.
var ErrDuplicate = errors.New("duplicate record")

// DBTX is the subset of *sql.DB the SQL adapters need. Both *sql.DB and the
// circuit-breaker wrapper satisfy it.
type DBTX interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
