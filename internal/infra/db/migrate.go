package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var embeddedMigrations embed.FS

// MigrateUp applies every pending migration.
func MigrateUp(driver Driver, dsn string) error {
	return runMigrations(driver, dsn, func(m *migrate.Migrate) error { return m.Up() })
}

// MigrateDown rolls back every migration. All data is lost.
func MigrateDown(driver Driver, dsn string) error {
	return runMigrations(driver, dsn, func(m *migrate.Migrate) error { return m.Down() })
}

// runMigrations works on its own handle because the migrate drivers close
// the instance they are given.
func runMigrations(driver Driver, dsn string, step func(*migrate.Migrate) error) error {
	var (
		sqlDB *sql.DB
		err   error
	)
	switch driver {
	case DriverPostgres:
		sqlDB, err = sql.Open("pgx", dsn)
	case DriverSQLite:
		sqlDB, err = sql.Open("sqlite", SQLiteDSN(dsn))
	default:
		return fmt.Errorf("unknown database driver %q", driver)
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", driver, err)
	}

	var dbDriver database.Driver
	switch driver {
	case DriverPostgres:
		dbDriver, err = postgres.WithInstance(sqlDB, &postgres.Config{})
	case DriverSQLite:
		dbDriver, err = sqlite.WithInstance(sqlDB, &sqlite.Config{})
	}
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("%s migrate driver: %w", driver, err)
	}

	src, err := iofs.New(embeddedMigrations, "migrations/"+string(driver))
	if err != nil {
		_ = dbDriver.Close()
		return fmt.Errorf("iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(driver), dbDriver)
	if err != nil {
		_ = src.Close()
		_ = dbDriver.Close()
		return fmt.Errorf("migrate.New: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := step(m); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("no new migrations to apply", slog.String("driver", string(driver)))
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	slog.Info("migrations applied",
		slog.String("driver", string(driver)),
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty))
	return nil
}
