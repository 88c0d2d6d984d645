package compaction

import (
	"context"
	"fmt"

	"github.com/askgo-dev/askgo/types"
)

// Repacker compresses long transcripts by summarizing their middle
// segment with a secondary model while keeping the head message and the
// protected tail window byte-identical.
type Repacker struct {
	summarizer Summarizer
	config     *Config
	logger     Logger
}

// NewRepacker creates a Repacker. A nil config uses defaults; a nil
// logger discards output.
func NewRepacker(summarizer Summarizer, config *Config, logger Logger) (*Repacker, error) {
	if config == nil {
		config = DefaultConfig()
	} else {
		config.ApplyDefaults()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &Repacker{summarizer: summarizer, config: config, logger: logger}, nil
}

// Config returns the repacker's configuration.
func (r *Repacker) Config() *Config {
	return r.config
}

// ShouldRepack reports whether the transcript meets every configured
// trigger predicate. The intrinsic floor (a head message plus the
// protected tail) always applies; the message-count and token
// predicates each apply only when configured non-zero.
func (r *Repacker) ShouldRepack(msgs []types.Message) bool {
	if len(msgs) <= r.config.KeepLast+1 {
		return false
	}
	if r.config.TriggerMessages > 0 && len(msgs) < r.config.TriggerMessages {
		return false
	}
	if r.config.TriggerTokens > 0 && ResponseTokens(msgs) < r.config.TriggerTokens {
		return false
	}
	return true
}

// Repack returns the compacted transcript: head, one synthetic
// assistant message holding the condensed middle, then the protected
// tail.
//
// When the transcript does not meet the trigger predicates it is
// returned unchanged. When the summarizer exhausts its retry budget the
// original transcript is returned together with the error, so callers
// can log the failure without ever losing history.
func (r *Repacker) Repack(ctx context.Context, msgs []types.Message) ([]types.Message, error) {
	if !r.ShouldRepack(msgs) {
		return msgs, nil
	}

	head := msgs[0]
	tail := msgs[len(msgs)-r.config.KeepLast:]
	middle := msgs[1 : len(msgs)-r.config.KeepLast]

	r.logger.Info("repacking transcript",
		"messages", len(msgs),
		"middle", len(middle),
		"keep_last", r.config.KeepLast,
	)

	summary, err := r.summarize(ctx, middle)
	if err != nil {
		r.logger.Warn("repack falling back to original transcript", "error", err)
		return msgs, err
	}

	condensed := types.NewTextMessage(RenderCondensed(summary))

	out := make([]types.Message, 0, 2+len(tail))
	out = append(out, head)
	out = append(out, condensed)
	out = append(out, tail...)

	r.logger.Info("repack complete", "before", len(msgs), "after", len(out))
	return out, nil
}

// summarize runs the summarizer with the configured retry budget.
func (r *Repacker) summarize(ctx context.Context, middle []types.Message) (*Summary, error) {
	var lastErr error
	for attempt := 0; attempt <= r.config.Retries; attempt++ {
		summary, err := r.summarizer.Summarize(ctx, middle)
		if err == nil {
			return summary, nil
		}
		lastErr = err
		r.logger.Debug("summarizer attempt failed", "attempt", attempt+1, "error", err)
	}
	return nil, fmt.Errorf("%w: retries exhausted: %v", ErrSummarizationFailed, lastErr)
}
