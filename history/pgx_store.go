package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGXStore is a history Store over a pgx connection pool, for callers
// already on pgx that should not pay the database/sql detour.
type PGXStore struct {
	pool  *pgxpool.Pool
	table string
}

// NewPGXStore creates a store over pool, creating the collection table
// and its timestamp index when missing.
func NewPGXStore(ctx context.Context, pool *pgxpool.Pool, collection string) (*PGXStore, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}

	s := &PGXStore{pool: pool, table: collection}

	createTable := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		query TEXT NOT NULL,
		content TEXT NOT NULL,
		timestamp BIGINT NOT NULL
	)`, s.table)
	if _, err := pool.Exec(ctx, createTable); err != nil {
		return nil, fmt.Errorf("create history table %s: %w", s.table, err)
	}

	createIndex := fmt.Sprintf(
		`CREATE INDEX IF NOT EXISTS idx_%s_timestamp ON %s (timestamp)`,
		s.table, s.table)
	if _, err := pool.Exec(ctx, createIndex); err != nil {
		return nil, fmt.Errorf("create history index on %s: %w", s.table, err)
	}

	return s, nil
}

// Add implements Store.
func (s *PGXStore) Add(ctx context.Context, query, content string) (*Entry, error) {
	entry := &Entry{
		ID:        uuid.New(),
		Query:     query,
		Content:   content,
		Timestamp: time.Now().Unix(),
	}

	stmt := fmt.Sprintf(
		`INSERT INTO %s (id, query, content, timestamp) VALUES ($1, $2, $3, $4)`, s.table)
	if _, err := s.pool.Exec(ctx, stmt,
		entry.ID.String(), entry.Query, entry.Content, entry.Timestamp); err != nil {
		return nil, fmt.Errorf("add history entry: %w", err)
	}
	return entry, nil
}

// Page implements Store.
func (s *PGXStore) Page(ctx context.Context, page, size int, before int64, order Order) ([]Entry, error) {
	before, order, err := validatePage(page, size, before, order)
	if err != nil {
		return nil, err
	}

	stmt := fmt.Sprintf(
		`SELECT id, query, content, timestamp FROM %s
		 WHERE timestamp <= $1 ORDER BY timestamp %s LIMIT $2 OFFSET $3`,
		s.table, order)
	rows, err := s.pool.Query(ctx, stmt, before, size, (page-1)*size)
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
func (s *PGXStore) Count(ctx context.Context, before int64) (int, error) {
	if before <= 0 {
		before = time.Now().Unix()
	}

	stmt := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE timestamp <= $1`, s.table)
	var count int
	if err := s.pool.QueryRow(ctx, stmt, before).Scan(&count); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return count, nil
}

// Clear implements Store.
func (s *PGXStore) Clear(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s`, s.table))
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
