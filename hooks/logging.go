package hooks

import (
	"context"
	"log"
	"time"

	"github.com/askgo-dev/askgo/types"
)

// LoggingHooks provides built-in logging hooks for observability.
type LoggingHooks struct {
	logger *log.Logger
}

// NewLoggingHooks creates logging hooks with the provided logger.
func NewLoggingHooks(logger *log.Logger) *LoggingHooks {
	return &LoggingHooks{logger: logger}
}

// DefaultLoggingHooks creates logging hooks with the default logger.
func DefaultLoggingHooks() *LoggingHooks {
	return &LoggingHooks{logger: log.Default()}
}

// Register attaches every logging hook to the registry.
func (h *LoggingHooks) Register(r *Registry) {
	r.OnBeforeRun(h.BeforeRun)
	r.OnAfterRun(h.AfterRun)
	r.OnCacheHit(h.CacheHit)
	r.OnBeforeCompaction(h.BeforeCompaction)
	r.OnAfterCompaction(h.AfterCompaction)
}

// BeforeRun logs the start of a run.
func (h *LoggingHooks) BeforeRun(ctx context.Context, agent, prompt string) error {
	preview := prompt
	if len(preview) > 100 {
		preview = preview[:100] + "..."
	}
	h.logger.Printf("[askgo] %s: run started: %s", agent, preview)
	return nil
}

// AfterRun logs the completion of a run.
func (h *LoggingHooks) AfterRun(ctx context.Context, agent string, usage types.Usage, duration time.Duration) error {
	h.logger.Printf("[askgo] %s: run finished: %d tokens, %d requests, %v",
		agent, usage.TotalTokens, usage.Requests, duration)
	return nil
}

// CacheHit logs a memoized run.
func (h *LoggingHooks) CacheHit(ctx context.Context, agent, key string) error {
	h.logger.Printf("[askgo] %s: cache hit: %.16s", agent, key)
	return nil
}

// BeforeCompaction logs the start of transcript compaction.
func (h *LoggingHooks) BeforeCompaction(ctx context.Context, messageCount int) error {
	h.logger.Printf("[askgo] compacting transcript of %d messages", messageCount)
	return nil
}

// AfterCompaction logs the outcome of transcript compaction.
func (h *LoggingHooks) AfterCompaction(ctx context.Context, before, after int) error {
	h.logger.Printf("[askgo] compaction complete: %d -> %d messages", before, after)
	return nil
}
