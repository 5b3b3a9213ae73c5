// Package db opens the encrypted invoice database and keeps its schema
// current.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mutecomm/go-sqlcipher/v4"
)

// DB wraps the sql handle so repositories depend on this package, not on
// the driver.
type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the SQLCipher database at dbPath,
// keyed with password. Foreign keys and WAL are switched on before the
// handle is handed out.
func Open(dbPath, password string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_key=%s", dbPath, password)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
	} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	// A wrong key surfaces here as "file is not a database"
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to open database (wrong key?): %w", err)
	}

	return &DB{DB: sqlDB}, nil
}

// OpenWithDefaults opens the database at ~/.config/invoicekit/invoicekit.db
func OpenWithDefaults(password string) (*DB, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return Open(filepath.Join(homeDir, ".config", "invoicekit", "invoicekit.db"), password)
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.DB.Close()
}
