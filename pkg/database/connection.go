package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"todoboard/pkg/utils"
)

const (
	driverSQLite   = "sqlite3"
	driverPostgres = "postgres"
)

// ParseDSN picks the driver for dsn. postgres:// and postgresql:// URLs use lib/pq,
// everything else is treated as a SQLite path, optionally prefixed with sqlite://.
func ParseDSN(dsn string) (driver, source string) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return driverPostgres, dsn
	case strings.HasPrefix(dsn, "sqlite://"):
		return driverSQLite, strings.TrimPrefix(dsn, "sqlite://")
	default:
		return driverSQLite, dsn
	}
}

// Open connects to dsn and makes sure the schema exists
func Open(dsn string) (Store, error) {
	driver, source := ParseDSN(dsn)

	if driver == driverSQLite {
		var err error
		if source, err = prepareSQLitePath(source); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == driverSQLite {
		// SQLite serializes writers and :memory: is per connection
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	utils.Log("database ready", "driver", driver)
	return &sqlStore{db: db, driver: driver}, nil
}

// prepareSQLitePath expands ~ and creates the parent directory
func prepareSQLitePath(dbPath string) (string, error) {
	if dbPath == "" || dbPath == ":memory:" || strings.HasPrefix(dbPath, "file:") {
		if dbPath == "" {
			dbPath = ":memory:"
		}
		return dbPath, nil
	}

	// Expand tilde to home directory if present
	if strings.HasPrefix(dbPath, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dbPath = homeDir + dbPath[1:]
	}

	// Create the directory structure if it doesn't exist
	dbDir := filepath.Dir(dbPath)
	if dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return "", err
		}
	}
	return dbPath, nil
}

// EnsureSchema creates the database schema if it doesn't exist
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS todos (
			id TEXT PRIMARY KEY,
			todo_name TEXT NOT NULL,
			is_complete BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			version INTEGER NOT NULL DEFAULT 0
		)
	`)
	return err
}
