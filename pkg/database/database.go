package database

import (
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	pgxDriverName    = "pgx"
	sqliteDriverName = "sqlite"
)

type Config struct {
	Driver string

	// SQLite
	Path string

	// PostgreSQL
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Open connects to the configured backend and verifies the connection.
func Open(cfg *Config) (*sqlx.DB, error) {
	switch cfg.Driver {
	case DriverPostgres:
		return openPostgres(cfg)
	case DriverSQLite, "":
		return openSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func PostgresDSN(cfg *Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

func openPostgres(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect(pgxDriverName, PostgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	return db, nil
}

// ConnectPostgres opens a pgx-backed pool from a ready DSN, such as the one a
// test container hands out.
func ConnectPostgres(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(pgxDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

func openSQLite(path string) (*sqlx.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	dsn := fmt.Sprintf(
		"file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite", path)
	db, err := sqlx.Connect(sqliteDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// one writer; transactions queue on the pool instead of failing with SQLITE_BUSY
	db.SetMaxOpenConns(1)
	return db, nil
}

// IsPostgres reports whether db talks to PostgreSQL, which supports row locks.
func IsPostgres(db *sqlx.DB) bool {
	return db.DriverName() == pgxDriverName
}
