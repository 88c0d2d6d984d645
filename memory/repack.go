package memory

import (
	"context"

	"github.com/askgo-dev/askgo/compaction"
	"github.com/askgo-dev/askgo/hooks"
	"github.com/askgo-dev/askgo/types"
)

// RepackHistory compacts long transcripts on Persist using a Repacker.
// When the summarizer fails the transcript is stored unmodified, so a
// flaky secondary model can never lose history.
type RepackHistory struct {
	inner    *BufferHistory
	repacker *compaction.Repacker
	hooks    *hooks.Registry
	logger   compaction.Logger
}

// WithRepack wraps next in a compacting node. The registry is optional;
// when provided, compaction hooks fire around each repack. A nil logger
// discards output.
func WithRepack(next History, repacker *compaction.Repacker, registry *hooks.Registry, logger compaction.Logger) *RepackHistory {
	if logger == nil {
		logger = compaction.NopLogger()
	}
	return &RepackHistory{
		inner:    NewBuffer(next),
		repacker: repacker,
		hooks:    registry,
		logger:   logger,
	}
}

// Load returns a copy of the transcript as last persisted.
func (h *RepackHistory) Load() []types.Message {
	return h.inner.Load()
}

// Persist compacts msgs when the trigger predicates are met and stores
// the result. Summarization failures are logged and swallowed; the
// original transcript is stored in their place.
func (h *RepackHistory) Persist(ctx context.Context, msgs []types.Message) error {
	if !h.repacker.ShouldRepack(msgs) {
		return h.inner.Persist(ctx, msgs)
	}

	if h.hooks != nil {
		if err := h.hooks.TriggerBeforeCompaction(ctx, len(msgs)); err != nil {
			return err
		}
	}

	out, err := h.repacker.Repack(ctx, msgs)
	if err != nil {
		h.logger.Warn("compaction failed, persisting original transcript", "error", err)
		return h.inner.Persist(ctx, msgs)
	}

	if h.hooks != nil {
		if err := h.hooks.TriggerAfterCompaction(ctx, len(msgs), len(out)); err != nil {
			return err
		}
	}
	return h.inner.Persist(ctx, out)
}
