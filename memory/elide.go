package memory

import (
	"context"

	"github.com/askgo-dev/askgo/compaction"
	"github.com/askgo-dev/askgo/types"
)

// ElisionHistory drops tool-only messages from the transcript before
// persisting it. A message survives when any of its parts carries
// non-tool content; only pure tool traffic is pruned.
type ElisionHistory struct {
	inner *BufferHistory
}

// WithElision wraps next in an eliding node. The node seeds itself from
// next's current transcript.
func WithElision(next History) *ElisionHistory {
	return &ElisionHistory{inner: NewBuffer(next)}
}

// Load returns a copy of the transcript as last persisted.
func (h *ElisionHistory) Load() []types.Message {
	return h.inner.Load()
}

// Persist prunes tool-only messages from msgs and stores the result.
func (h *ElisionHistory) Persist(ctx context.Context, msgs []types.Message) error {
	return h.inner.Persist(ctx, compaction.Elide(msgs))
}
