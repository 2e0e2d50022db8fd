package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLiteStore keeps key-value pairs in a single-table embedded SQLite
// database. It is an alternative backend to FileStore for installations that
// prefer one database file over a directory of JSON files.
type SQLiteStore struct {
	db *sqlx.DB
}

// OpenSQLite opens (creating if needed) the database file and ensures the kv
// table exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w: %v", path, ErrUnavailable, err)
	}
	store := NewSQLiteStore(db)
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewSQLiteStore wraps an already-open database handle. Callers must have
// created the kv table (OpenSQLite does both).
func NewSQLiteStore(db *sqlx.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) init() error {
	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("create kv table: %w: %v", ErrUnavailable, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Read returns the value for key, or ok=false when absent. Database failures
// are logged and reported as absent.
func (s *SQLiteStore) Read(key string) (string, bool) {
	var value string
	if err := s.db.Get(&value, "SELECT value FROM kv WHERE key = ?", key); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Warn("failed to read storage key, treating as absent", "key", key, "error", err)
		}
		return "", false
	}
	return value, true
}

// Write upserts the value under key.
func (s *SQLiteStore) Write(key, value string) error {
	query := "INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value"
	if _, err := s.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("write %s: %w: %v", key, classifyWriteError(err), err)
	}
	return nil
}

// Remove deletes the key. Removing an absent key is a no-op.
func (s *SQLiteStore) Remove(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("remove %s: %w: %v", key, ErrUnavailable, err)
	}
	return nil
}

// Usage reports the total value bytes and key count currently stored.
func (s *SQLiteStore) Usage() (Usage, error) {
	var usage Usage
	row := s.db.QueryRow("SELECT COALESCE(SUM(LENGTH(value)), 0), COUNT(*) FROM kv")
	if err := row.Scan(&usage.UsedBytes, &usage.Keys); err != nil {
		return Usage{}, fmt.Errorf("measure storage usage: %w: %v", ErrUnavailable, err)
	}
	return usage, nil
}

// classifyWriteError maps a SQLite write failure onto the storage error
// taxonomy. A full disk or exhausted database surfaces as a quota error.
func classifyWriteError(err error) error {
	message := strings.ToLower(err.Error())
	if strings.Contains(message, "full") {
		return ErrQuotaExceeded
	}
	return ErrUnavailable
}
