// Package storage persists application state as key-value entries in a
// local SQLite database. Keys are disjoint per owner (task list, settings,
// shortcut bindings), so last-writer-wins per key is sufficient.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

const storeFileName = "pomobar.db"

// Store is the key-value persistence adapter.
type Store struct {
	db *sql.DB
}

// Open creates or opens the application database under the OS config
// directory for the given app name.
func Open(appName string) (*Store, error) {
	path, err := resolveStorePath(appName)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return OpenPath(path)
}

// OpenPath opens the database at an explicit path.
func OpenPath(path string) (*Store, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (store *Store) Close() error { return store.db.Close() }

func (store *Store) migrate() error {
	_, err := store.db.Exec(`
	CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`)
	return err
}

// GetString returns the raw value stored under key.
func (store *Store) GetString(key string) (string, bool, error) {
	var value string
	err := store.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// SetString stores a raw value under key.
func (store *Store) SetString(key, value string) error {
	_, err := store.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// GetInt reads an integer value.
func (store *Store) GetInt(key string) (int, bool, error) {
	raw, ok, err := store.GetString(key)
	if err != nil || !ok {
		return 0, false, err
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("parse %q: %w", key, err)
	}
	return value, true, nil
}

// SetInt stores an integer value.
func (store *Store) SetInt(key string, value int) error {
	return store.SetString(key, strconv.Itoa(value))
}

// GetBool reads a boolean value.
func (store *Store) GetBool(key string) (bool, bool, error) {
	raw, ok, err := store.GetString(key)
	if err != nil || !ok {
		return false, false, err
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, fmt.Errorf("parse %q: %w", key, err)
	}
	return value, true, nil
}

// SetBool stores a boolean value.
func (store *Store) SetBool(key string, value bool) error {
	return store.SetString(key, strconv.FormatBool(value))
}

// GetJSON unmarshals the value stored under key into out. The boolean
// reports whether the key existed.
func (store *Store) GetJSON(key string, out any) (bool, error) {
	raw, ok, err := store.GetString(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

// SetJSON stores the JSON encoding of value under key.
func (store *Store) SetJSON(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return store.SetString(key, string(raw))
}

// Delete removes a key. Missing keys are not an error.
func (store *Store) Delete(key string) error {
	if _, err := store.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func resolveStorePath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, storeFileName), nil
}
