package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
)

// SQLStore is a Store backed by a single relational table:
//
//	cache(key TEXT PRIMARY KEY, value TEXT)
//
// Unlike the document backends it fails loudly on connection errors,
// since those indicate an environment problem rather than "no data
// yet". Clear drops all rows, closes the connection and removes the
// backing file when one was given.
type SQLStore struct {
	db   *sql.DB
	path string
}

// OpenSQLStore opens (or creates) the cache table on the given
// database/sql handle. path, when non-empty, names the backing file
// removed by Clear; pass "" for server-backed or in-memory databases.
func OpenSQLStore(db *sql.DB, path string) (*SQLStore, error) {
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connect cache database: %w", err)
	}
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS cache (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	if err != nil {
		return nil, fmt.Errorf("create cache table: %w", err)
	}
	return &SQLStore{db: db, path: path}, nil
}

// Get returns the value stored under key.
func (s *SQLStore) Get(key string) (json.RawMessage, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM cache WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query cache: %w", err)
	}
	return json.RawMessage(value), true, nil
}

// Set stores value under key with upsert semantics.
func (s *SQLStore) Set(key string, value json.RawMessage) error {
	_, err := s.db.Exec(
		`INSERT INTO cache (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("upsert cache: %w", err)
	}
	return nil
}

// Clear drops all rows, closes the connection and removes the backing
// file if one was configured.
func (s *SQLStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM cache`); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close cache database: %w", err)
	}
	if s.path != "" {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove cache database: %w", err)
		}
	}
	return nil
}
