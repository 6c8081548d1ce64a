package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate brings the schema of db up to the latest embedded version.
//
// The migrate instance is deliberately not closed: closing it would close db.
func Migrate(db *sqlx.DB) error {
	dir := "migrations/sqlite"
	if IsPostgres(db) {
		dir = "migrations/postgres"
	}

	src, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer src.Close()

	var m *migrate.Migrate
	if IsPostgres(db) {
		driver, err := migratepgx.WithInstance(db.DB, &migratepgx.Config{})
		if err != nil {
			return fmt.Errorf("migration driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, "pgx5", driver)
		if err != nil {
			return fmt.Errorf("migration instance: %w", err)
		}
	} else {
		driver, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
		if err != nil {
			return fmt.Errorf("migration driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, "sqlite", driver)
		if err != nil {
			return fmt.Errorf("migration instance: %w", err)
		}
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
