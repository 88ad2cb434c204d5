package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// RunMigrations applies the embedded schema for a SQL backend. Mongo needs
// no migrations and is rejected here.
func RunMigrations(dbType DBType, dsn string) error {
	var (
		conn   *sql.DB
		driver database.Driver
		err    error
	)

	switch dbType {
	case Postgres:
		if conn, err = sql.Open("postgres", dsn); err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer conn.Close()
		driver, err = postgres.WithInstance(conn, &postgres.Config{})
	case SQLite:
		if conn, err = sql.Open("sqlite", dsn); err != nil {
			return fmt.Errorf("open sqlite: %w", err)
		}
		defer conn.Close()
		driver, err = sqlite.WithInstance(conn, &sqlite.Config{})
	default:
		return fmt.Errorf("no migrations for db type %q", dbType)
	}
	if err != nil {
		return fmt.Errorf("start %s driver: %w", dbType, err)
	}

	src, err := iofs.New(migrationsFS, "migrations/"+string(dbType))
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(dbType), driver)
	if err != nil {
		return fmt.Errorf("migration failed to start: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run up migrations: %w", err)
	}
	return nil
}
