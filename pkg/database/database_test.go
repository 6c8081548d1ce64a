package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open(&Config{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "inv.db")})
	require.NoError(t, err)
	defer db.Close()

	assert.False(t, IsPostgres(db))

	require.NoError(t, Migrate(db))
	// second run is a no-op
	require.NoError(t, Migrate(db))

	var tables []string
	require.NoError(t, db.Select(&tables,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('categories', 'products', 'purchase_history') ORDER BY name`))
	assert.Equal(t, []string{"categories", "products", "purchase_history"}, tables)
}

func TestForeignKeysEnforced(t *testing.T) {
	db, err := Open(&Config{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "inv.db")})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, Migrate(db))

	_, err = db.Exec(`INSERT INTO products (name, price, quantity, category_id, created_at, updated_at)
		VALUES ('Orphan', 1, 1, 999, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	assert.Error(t, err)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&Config{Driver: "oracle"})
	assert.Error(t, err)

	_, err = Open(&Config{Driver: DriverSQLite})
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(&Config{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "inv", SSLMode: "disable"})
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=inv sslmode=disable", dsn)
}
