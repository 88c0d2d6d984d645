package cache

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// jsonlRecord is one self-describing line of the JSONL backing file.
type jsonlRecord struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// JSONLStore is a Store backed by a line-oriented JSONL document: one
// {"key":...,"value":...} record per line.
//
// The file is loaded once at open; when the same key appears on several
// lines the last record wins. Set appends a record, Clear deletes the
// file. Malformed lines and a missing or truncated file degrade to the
// empty state, matching the YAML backend's tolerance policy.
type JSONLStore struct {
	path string

	mu   sync.Mutex
	data map[string]json.RawMessage
}

// OpenJSONLStore opens the JSONL document at path, loading any existing
// records.
func OpenJSONLStore(path string) *JSONLStore {
	return &JSONLStore{path: path, data: loadJSONL(path)}
}

func loadJSONL(path string) map[string]json.RawMessage {
	data := make(map[string]json.RawMessage)
	f, err := os.Open(path)
	if err != nil {
		return data
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec jsonlRecord
		if err := json.Unmarshal(line, &rec); err != nil || rec.Key == "" {
			continue
		}
		data[rec.Key] = rec.Value
	}
	return data
}

// Get returns the value stored under key.
func (s *JSONLStore) Get(key string) (json.RawMessage, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores value under key and appends a record to the backing file.
func (s *JSONLStore) Set(key string, value json.RawMessage) error {
	line, err := json.Marshal(jsonlRecord{Key: key, Value: value})
	if err != nil {
		return fmt.Errorf("encode cache record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open cache file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	s.data[key] = append(json.RawMessage(nil), value...)
	return nil
}

// Clear empties the store and deletes the backing file.
func (s *JSONLStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]json.RawMessage)
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove cache file: %w", err)
	}
	return nil
}
