// Package history is a durable log of query/response pairs, paginated
// and filterable by time. Two store implementations share the same
// semantics: SQLStore over database/sql (SQLite or Postgres) and
// PGXStore over a pgx connection pool.
package history

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Order is the sort order for paginated reads.
type Order string

const (
	// OrderAsc sorts oldest first.
	OrderAsc Order = "ASC"

	// OrderDesc sorts newest first.
	OrderDesc Order = "DESC"
)

// MaxPageSize is the largest page size a read accepts.
const MaxPageSize = 100

// Common errors
var (
	// ErrInvalidCollection is returned for a collection name that is
	// not a plain identifier.
	ErrInvalidCollection = errors.New("invalid collection name")

	// ErrInvalidPage is returned for out-of-range pagination arguments.
	ErrInvalidPage = errors.New("invalid pagination arguments")
)

// Entry is one query/response pair.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	Query     string    `json:"query"`
	Content   string    `json:"content"`
	Timestamp int64     `json:"timestamp"`
}

// Time returns the entry's creation time.
func (e Entry) Time() time.Time {
	return time.Unix(e.Timestamp, 0)
}

// Store is a history log backend.
type Store interface {
	// Add appends a pair with the current timestamp and returns the
	// stored entry.
	Add(ctx context.Context, query, content string) (*Entry, error)

	// Page returns one page of entries with timestamp at or before the
	// bound, sorted by timestamp. page is 1-based; size is capped at
	// MaxPageSize; a zero before means now.
	Page(ctx context.Context, page, size int, before int64, order Order) ([]Entry, error)

	// Count returns the number of entries with timestamp at or before
	// the bound. A zero before means now.
	Count(ctx context.Context, before int64) (int, error)

	// Clear deletes every entry and returns the number deleted.
	Clear(ctx context.Context) (int, error)
}

var collectionPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validateCollection rejects collection names that cannot be used as a
// bare SQL identifier. The name is interpolated into statements, so
// anything beyond a plain identifier is refused outright.
func validateCollection(name string) error {
	if !collectionPattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidCollection, name)
	}
	return nil
}

// validatePage normalizes pagination arguments shared by both stores.
func validatePage(page, size int, before int64, order Order) (int64, Order, error) {
	if page < 1 {
		return 0, "", fmt.Errorf("%w: page must be >= 1", ErrInvalidPage)
	}
	if size < 1 || size > MaxPageSize {
		return 0, "", fmt.Errorf("%w: size must be between 1 and %d", ErrInvalidPage, MaxPageSize)
	}
	if before <= 0 {
		before = time.Now().Unix()
	}
	if order != OrderAsc {
		order = OrderDesc
	}
	return before, order, nil
}
