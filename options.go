package askgo

import (
	"context"
	"time"

	"github.com/askgo-dev/askgo/cache"
	"github.com/askgo-dev/askgo/hooks"
	"github.com/askgo-dev/askgo/types"
)

// Option configures an Agent at construction.
type Option func(*agentOptions)

type agentOptions struct {
	cache   *cache.Cache
	toolset Toolset
	hooks   hookTrigger
}

func applyOptions(opts []Option) agentOptions {
	var o agentOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithCache attaches a memoization cache.
func WithCache(c *cache.Cache) Option {
	return func(o *agentOptions) {
		o.cache = c
	}
}

// WithToolset attaches a scoped resource held for the duration of each
// run.
func WithToolset(t Toolset) Option {
	return func(o *agentOptions) {
		o.toolset = t
	}
}

// WithHooks attaches a lifecycle hook registry.
func WithHooks(r *hooks.Registry) Option {
	return func(o *agentOptions) {
		o.hooks = hookTrigger{registry: r}
	}
}

// hookTrigger wraps an optional registry so call sites need no nil
// checks.
type hookTrigger struct {
	registry *hooks.Registry
}

func (h hookTrigger) TriggerBeforeRun(ctx context.Context, agent, prompt string) error {
	if h.registry == nil {
		return nil
	}
	return h.registry.TriggerBeforeRun(ctx, agent, prompt)
}

func (h hookTrigger) TriggerAfterRun(ctx context.Context, agent string, usage types.Usage, d time.Duration) error {
	if h.registry == nil {
		return nil
	}
	return h.registry.TriggerAfterRun(ctx, agent, usage, d)
}

func (h hookTrigger) TriggerCacheHit(ctx context.Context, agent, key string) error {
	if h.registry == nil {
		return nil
	}
	return h.registry.TriggerCacheHit(ctx, agent, key)
}
