package cache

import (
	"encoding/json"
	"sync"
)

// Cache is the memoization facade: it derives keys from requester
// identity plus input payload and wraps Store access.
//
// Concurrent callers sharing a key are not serialized by default; each
// proceeds independently and the last Set wins. WithSingleFlight
// enables a per-key mutex for callers that want at-most-one concurrent
// compute per key.
type Cache struct {
	store        Store
	singleFlight bool

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures a Cache.
type Option func(*Cache)

// WithSingleFlight serializes callers on the same key with a per-key
// mutex, so concurrent logically identical requests compute at most
// once instead of racing last-write-wins.
func WithSingleFlight() Option {
	return func(c *Cache) {
		c.singleFlight = true
	}
}

// New creates a Cache over the given store.
func New(store Store, opts ...Option) *Cache {
	c := &Cache{store: store, locks: make(map[string]*sync.Mutex)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key derives the cache key for an input made on behalf of identity.
func (c *Cache) Key(identity string, input any) string {
	return DeriveKey(identity, input)
}

// Get returns the raw value stored under key.
func (c *Cache) Get(key string) (json.RawMessage, bool, error) {
	return c.store.Get(key)
}

// Set stores value under key.
func (c *Cache) Set(key string, value json.RawMessage) error {
	return c.store.Set(key, value)
}

// Clear empties the underlying store.
func (c *Cache) Clear() error {
	return c.store.Clear()
}

// Lock acquires the per-key mutex when single-flight is enabled and
// returns the corresponding unlock. Without single-flight it is a
// no-op.
func (c *Cache) Lock(key string) (unlock func()) {
	if !c.singleFlight {
		return func() {}
	}
	c.mu.Lock()
	m, ok := c.locks[key]
	if !ok {
		m = &sync.Mutex{}
		c.locks[key] = m
	}
	c.mu.Unlock()
	m.Lock()
	return m.Unlock
}
