package memory

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/askgo-dev/askgo/types"
)

// FileHistory persists the transcript to a JSON file. The file is the
// node's source of truth: a missing file means an empty transcript, and
// every Persist rewrites it before forwarding down the chain.
type FileHistory struct {
	path string
	mu   sync.Mutex
	msgs []types.Message
	next History
}

// NewFile creates a FileHistory backed by path, loading any transcript
// already on disk. A nil next makes the file a terminal node.
func NewFile(path string, next History) (*FileHistory, error) {
	msgs, err := readTranscript(path)
	if err != nil {
		return nil, err
	}
	return &FileHistory{path: path, msgs: msgs, next: next}, nil
}

// Path returns the transcript file path.
func (f *FileHistory) Path() string {
	return f.path
}

// Load returns a copy of the transcript.
func (f *FileHistory) Load() []types.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return types.CloneTranscript(f.msgs)
}

// Persist writes msgs to disk, replaces the in-memory snapshot, and
// forwards down the chain. The snapshot is only replaced after the
// write succeeds so Load never reflects an unsaved transcript.
func (f *FileHistory) Persist(ctx context.Context, msgs []types.Message) error {
	data, err := types.MarshalTranscript(msgs)
	if err != nil {
		return err
	}

	f.mu.Lock()
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			f.mu.Unlock()
			return fmt.Errorf("write transcript %s: %w", f.path, err)
		}
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		f.mu.Unlock()
		return fmt.Errorf("write transcript %s: %w", f.path, err)
	}
	f.msgs = types.CloneTranscript(msgs)
	f.mu.Unlock()

	if f.next != nil {
		return f.next.Persist(ctx, msgs)
	}
	return nil
}

func readTranscript(path string) ([]types.Message, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read transcript %s: %w", path, err)
	}
	msgs, err := types.UnmarshalTranscript(data)
	if err != nil {
		return nil, fmt.Errorf("read transcript %s: %w", path, err)
	}
	return msgs, nil
}
