package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// SchemaVersion is stored in PRAGMA user_version once the notes table exists.
const SchemaVersion = 1

// Driver names registered by the two SQLite engines.
const (
	DriverCGO  = "sqlite3"
	DriverPure = "sqlite"
)

var ErrSchemaTooNew = errors.New("database schema is newer than supported")

type DB struct {
	*sql.DB
}

// New opens the SQLite file at dbPath with the given driver. The path
// ":memory:" opens a private in-memory database.
func New(driver, dbPath string) (*DB, error) {
	switch driver {
	case DriverCGO, DriverPure:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	inMemory := dbPath == ":memory:" || strings.HasPrefix(dbPath, "file::memory:")
	if !inMemory {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(driver, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: the store serializes its transactions anyway, and an
	// in-memory database only lives as long as its connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	if !inMemory {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL")
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	return &DB{db}, nil
}

// Migrate provisions the notes table on first open. Running it against an
// already provisioned database is a no-op.
func (db *DB) Migrate(ctx context.Context) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version > SchemaVersion {
		return fmt.Errorf("%w: found %d, want %d", ErrSchemaTooNew, version, SchemaVersion)
	}

	return withTx(ctx, db.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS notes (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				color TEXT NOT NULL,
				text TEXT NOT NULL DEFAULT '',
				pos_x INTEGER NOT NULL DEFAULT 0,
				pos_y INTEGER NOT NULL DEFAULT 0
			)`); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		if version < SchemaVersion {
			if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
				return fmt.Errorf("write schema version: %w", err)
			}
		}
		return nil
	})
}

func (db *DB) Close() error {
	return db.DB.Close()
}

// withTx runs fn inside a transaction and commits it when fn succeeds.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
