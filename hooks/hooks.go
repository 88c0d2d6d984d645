// Package hooks provides lifecycle hook registration for observability
// around agent runs and transcript compaction.
package hooks

import (
	"context"
	"sync"
	"time"

	"github.com/askgo-dev/askgo/types"
)

// BeforeRunHook is called before a run is executed.
type BeforeRunHook func(ctx context.Context, agent, prompt string) error

// AfterRunHook is called after a run completes, on both the cached and
// the live path.
type AfterRunHook func(ctx context.Context, agent string, usage types.Usage, duration time.Duration) error

// CacheHitHook is called when a run is answered from the cache.
type CacheHitHook func(ctx context.Context, agent, key string) error

// BeforeCompactionHook is called before transcript compaction.
type BeforeCompactionHook func(ctx context.Context, messageCount int) error

// AfterCompactionHook is called after transcript compaction with the
// message counts before and after.
type AfterCompactionHook func(ctx context.Context, before, after int) error

// Registry holds all registered hooks.
type Registry struct {
	mu               sync.RWMutex
	beforeRun        []BeforeRunHook
	afterRun         []AfterRunHook
	cacheHit         []CacheHitHook
	beforeCompaction []BeforeCompactionHook
	afterCompaction  []AfterCompactionHook
}

// NewRegistry creates a new hook registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// OnBeforeRun registers a hook to be called before a run.
func (r *Registry) OnBeforeRun(hook BeforeRunHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.beforeRun = append(r.beforeRun, hook)
}

// OnAfterRun registers a hook to be called after a run.
func (r *Registry) OnAfterRun(hook AfterRunHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.afterRun = append(r.afterRun, hook)
}

// OnCacheHit registers a hook to be called on cache hits.
func (r *Registry) OnCacheHit(hook CacheHitHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cacheHit = append(r.cacheHit, hook)
}

// OnBeforeCompaction registers a hook to be called before compaction.
func (r *Registry) OnBeforeCompaction(hook BeforeCompactionHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.beforeCompaction = append(r.beforeCompaction, hook)
}

// OnAfterCompaction registers a hook to be called after compaction.
func (r *Registry) OnAfterCompaction(hook AfterCompactionHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.afterCompaction = append(r.afterCompaction, hook)
}

// TriggerBeforeRun calls all registered before-run hooks.
func (r *Registry) TriggerBeforeRun(ctx context.Context, agent, prompt string) error {
	r.mu.RLock()
	hooks := make([]BeforeRunHook, len(r.beforeRun))
	copy(hooks, r.beforeRun)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, agent, prompt); err != nil {
			return err
		}
	}
	return nil
}

// TriggerAfterRun calls all registered after-run hooks.
func (r *Registry) TriggerAfterRun(ctx context.Context, agent string, usage types.Usage, duration time.Duration) error {
	r.mu.RLock()
	hooks := make([]AfterRunHook, len(r.afterRun))
	copy(hooks, r.afterRun)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, agent, usage, duration); err != nil {
			return err
		}
	}
	return nil
}

// TriggerCacheHit calls all registered cache-hit hooks.
func (r *Registry) TriggerCacheHit(ctx context.Context, agent, key string) error {
	r.mu.RLock()
	hooks := make([]CacheHitHook, len(r.cacheHit))
	copy(hooks, r.cacheHit)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, agent, key); err != nil {
			return err
		}
	}
	return nil
}

// TriggerBeforeCompaction calls all registered before-compaction hooks.
func (r *Registry) TriggerBeforeCompaction(ctx context.Context, messageCount int) error {
	r.mu.RLock()
	hooks := make([]BeforeCompactionHook, len(r.beforeCompaction))
	copy(hooks, r.beforeCompaction)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, messageCount); err != nil {
			return err
		}
	}
	return nil
}

// TriggerAfterCompaction calls all registered after-compaction hooks.
func (r *Registry) TriggerAfterCompaction(ctx context.Context, before, after int) error {
	r.mu.RLock()
	hooks := make([]AfterCompactionHook, len(r.afterCompaction))
	copy(hooks, r.afterCompaction)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, before, after); err != nil {
			return err
		}
	}
	return nil
}
