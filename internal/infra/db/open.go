// Package db opens the SQL handle and applies the embedded schema migrations.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Driver selects the SQL backend.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// ParseDriver validates a driver name.
func ParseDriver(s string) (Driver, error) {
	switch d := Driver(strings.ToLower(strings.TrimSpace(s))); d {
	case DriverPostgres, DriverSQLite:
		return d, nil
	default:
		return "", fmt.Errorf("unknown database driver %q", s)
	}
}

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxConns:        25,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// DB is an open SQL handle. For postgres it is backed by a pgxpool.Pool.
type DB struct {
	*sql.DB
	Driver Driver
	pool   *pgxpool.Pool
}

// Close closes the handle and, for postgres, the underlying pool.
func (d *DB) Close() error {
	err := d.DB.Close()
	if d.pool != nil {
		d.pool.Close()
	}
	return err
}

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, driver Driver, dsn string, cfg ConnectionConfig) (*DB, error) {
	var (
		out *DB
		err error
	)
	switch driver {
	case DriverPostgres:
		out, err = openPostgres(ctx, dsn, cfg)
	case DriverSQLite:
		out, err = openSQLite(dsn, cfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := out.PingContext(pingCtx); err != nil {
		_ = out.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	slog.Info("database connection established",
		slog.String("driver", string(driver)),
		slog.Int("max_conns", int(cfg.MaxConns)),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))
	return out, nil
}

func openPostgres(ctx context.Context, dsn string, cfg ConnectionConfig) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	return &DB{DB: stdlib.OpenDBFromPool(pool), Driver: DriverPostgres, pool: pool}, nil
}

func openSQLite(dsn string, cfg ConnectionConfig) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", SQLiteDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if cfg.MaxConns > 0 {
		sqlDB.SetMaxOpenConns(int(cfg.MaxConns))
	}
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	return &DB{DB: sqlDB, Driver: DriverSQLite}, nil
}

// sqlitePragmas apply to every pooled connection.
var sqlitePragmas = []string{
	"_pragma=foreign_keys(1)",
	"_pragma=busy_timeout(5000)",
}

// SQLiteDSN turns a file path or DSN into one with the connection pragmas
// the adapters rely on. A DSN that already sets pragmas is returned as is.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(sqlitePragmas, "&")
}
