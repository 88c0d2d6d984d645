package memory

import (
	"context"
	"sync"

	"github.com/askgo-dev/askgo/types"
)

// BufferHistory keeps the transcript in memory. When constructed over a
// next node it seeds itself from that node's current transcript and
// forwards every Persist down the chain.
type BufferHistory struct {
	mu   sync.Mutex
	msgs []types.Message
	next History
}

// NewBuffer creates a BufferHistory. A nil next makes the buffer a
// terminal, volatile node.
func NewBuffer(next History) *BufferHistory {
	b := &BufferHistory{next: next}
	if next != nil {
		b.msgs = types.CloneTranscript(next.Load())
	}
	return b
}

// Load returns a copy of the buffered transcript.
func (b *BufferHistory) Load() []types.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return types.CloneTranscript(b.msgs)
}

// Persist replaces the buffered transcript and forwards it to the next
// node, if any.
func (b *BufferHistory) Persist(ctx context.Context, msgs []types.Message) error {
	b.mu.Lock()
	b.msgs = types.CloneTranscript(msgs)
	b.mu.Unlock()

	if b.next != nil {
		return b.next.Persist(ctx, msgs)
	}
	return nil
}
