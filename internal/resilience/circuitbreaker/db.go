package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sony/gobreaker"

	"yatube/internal/repository"
)

// DB guards a SQL handle with a circuit breaker. It satisfies
// repository.DBTX so the SQL adapters take it in place of *sql.DB.
type DB struct {
	cb   *gobreaker.CircuitBreaker
	name string
	conn repository.DBTX
}

// NewDB wraps conn.
func NewDB(conn repository.DBTX, cfg Config) *DB {
	return &DB{cb: newBreaker(cfg), name: cfg.Name, conn: conn}
}

func (d *DB) execute(fn func() (any, error)) (any, error) {
	res, err := d.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		RejectedTotal.WithLabelValues(d.name).Inc()
	}
	return res, err
}

// QueryContext returns gobreaker.ErrOpenState without querying while open.
func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	res, err := d.execute(func() (any, error) {
		return d.conn.QueryContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return res.(*sql.Rows), nil
}

// ExecContext returns gobreaker.ErrOpenState without executing while open.
func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := d.execute(func() (any, error) {
		return d.conn.ExecContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return res.(sql.Result), nil
}

// QueryRowContext is not guarded: *sql.Row defers its error to Scan, after
// the breaker would have recorded the call.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return d.conn.QueryRowContext(ctx, query, args...)
}

// State returns the current breaker state.
func (d *DB) State() gobreaker.State {
	return d.cb.State()
}

// IsOpen reports whether calls are currently rejected.
func (d *DB) IsOpen() bool {
	return d.cb.State() == gobreaker.StateOpen
}
