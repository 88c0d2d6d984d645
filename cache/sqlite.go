package cache

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// OpenSQLiteStore opens an embedded SQLite-backed SQLStore at path.
// The database file is created on first use and removed by Clear.
func OpenSQLiteStore(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite cache: %w", err)
	}
	store, err := OpenSQLStore(db, path)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}
