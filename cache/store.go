package cache

import "encoding/json"

// Store is the key-value contract shared by all cache backends.
//
// Implementations must treat an unknown key as absent rather than an
// error, overwrite unconditionally on Set, and on Clear empty the store
// and delete any backing file so a later open sees a fresh empty store.
type Store interface {
	// Get returns the raw value stored under key, or ok=false if the
	// key is absent.
	Get(key string) (value json.RawMessage, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value json.RawMessage) error

	// Clear empties the store and removes any backing file or
	// connection.
	Clear() error
}
