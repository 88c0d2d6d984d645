package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SQLStore is a history Store over database/sql. It works with any
// driver that understands $1 placeholders, which covers both SQLite
// (modernc.org/sqlite) and Postgres (lib/pq).
type SQLStore struct {
	db    *sql.DB
	table string
}

// NewSQLStore creates a store over db, creating the collection table
// and its timestamp index when missing.
func NewSQLStore(ctx context.Context, db *sql.DB, collection string) (*SQLStore, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}

	s := &SQLStore{db: db, table: collection}

	createTable := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		query TEXT NOT NULL,
		content TEXT NOT NULL,
		timestamp BIGINT NOT NULL
	)`, s.table)
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		return nil, fmt.Errorf("create history table %s: %w", s.table, err)
	}

	createIndex := fmt.Sprintf(
		`CREATE INDEX IF NOT EXISTS idx_%s_timestamp ON %s (timestamp)`,
		s.table, s.table)
	if _, err := db.ExecContext(ctx, createIndex); err != nil {
		return nil, fmt.Errorf("create history index on %s: %w", s.table, err)
	}

	return s, nil
}

// Add implements Store.
func (s *SQLStore) Add(ctx context.Context, query, content string) (*Entry, error) {
	entry := &Entry{
		ID:        uuid.New(),
		Query:     query,
		Content:   content,
		Timestamp: time.Now().Unix(),
	}

	stmt := fmt.Sprintf(
		`INSERT INTO %s (id, query, content, timestamp) VALUES ($1, $2, $3, $4)`, s.table)
	if _, err := s.db.ExecContext(ctx, stmt,
		entry.ID.String(), entry.Query, entry.Content, entry.Timestamp); err != nil {
		return nil, fmt.Errorf("add history entry: %w", err)
	}
	return entry, nil
}

// Page implements Store.
func (s *SQLStore) Page(ctx context.Context, page, size int, before int64, order Order) ([]Entry, error) {
	before, order, err := validatePage(page, size, before, order)
	if err != nil {
		return nil, err
	}

	stmt := fmt.Sprintf(
		`SELECT id, query, content, timestamp FROM %s
		 WHERE timestamp <= $1 ORDER BY timestamp %s LIMIT $2 OFFSET $3`,
		s.table, order)
	rows, err := s.db.QueryContext(ctx, stmt, before, size, (page-1)*size)
	if err != nil {
		return nil, fmt.Errorf("page history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var id string
		if err := rows.Scan(&id, &entry.Query, &entry.Content, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entry.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("page history: %w", err)
	}
	return entries, nil
}

// Count implements Store.
func (s *SQLStore) Count(ctx context.Context, before int64) (int, error) {
	if before <= 0 {
		before = time.Now().Unix()
	}

	stmt := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE timestamp <= $1`, s.table)
	var count int
	if err := s.db.QueryRowContext(ctx, stmt, before).Scan(&count); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return count, nil
}

// Clear implements Store.
func (s *SQLStore) Clear(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, s.table))
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(deleted), nil
}
