package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// YAMLStore is a Store backed by a human-editable YAML document.
//
// The file is loaded once at open and fully rewritten on every Set.
// A missing, empty or malformed file is treated as an empty store
// rather than an error, so a hand-edited file can never brick a run.
type YAMLStore struct {
	path string

	mu   sync.Mutex
	data map[string]any
}

// OpenYAMLStore opens the YAML document at path, loading any existing
// entries.
func OpenYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path, data: loadYAML(path)}
}

func loadYAML(path string) map[string]any {
	raw, err := os.ReadFile(path)
	if err != nil {
		return map[string]any{}
	}
	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil || data == nil {
		return map[string]any{}
	}
	return data
}

func (s *YAMLStore) save() error {
	raw, err := yaml.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("encode cache file: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}

// Get returns the value stored under key, re-encoded as JSON.
func (s *YAMLStore) Get(key string) (json.RawMessage, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, false, fmt.Errorf("decode cached value for %s: %w", key, err)
	}
	return raw, true, nil
}

// Set stores value under key and rewrites the backing file.
func (s *YAMLStore) Set(key string, value json.RawMessage) error {
	var decoded any
	if err := json.Unmarshal(value, &decoded); err != nil {
		// Opaque payloads are kept as their literal text.
		decoded = string(value)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = decoded
	return s.save()
}

// Clear empties the store and deletes the backing file.
func (s *YAMLStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[string]any{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove cache file: %w", err)
	}
	return nil
}
