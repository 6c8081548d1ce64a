// Package dbtest opens migrated throwaway databases for package tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-inventory/pkg/database"
)

// NewSQLite returns a migrated SQLite database living in t.TempDir().
func NewSQLite(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := database.Open(&database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "inventory.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}
