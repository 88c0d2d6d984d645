package askgo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/askgo-dev/askgo/cache"
	"github.com/askgo-dev/askgo/memory"
	"github.com/askgo-dev/askgo/types"
)

// cachedRunDuration is the nominal duration recorded for a run answered
// from the cache.
const cachedRunDuration = time.Millisecond

// Config holds the agent configuration.
type Config struct {
	// Name identifies the agent. It namespaces cache keys, so two
	// agents with different names never share memoized results.
	Name string

	// Caller performs the model round-trip. Required.
	Caller Caller

	// Memory is the conversation-history chain. Nil means no memory;
	// every run starts from an empty transcript.
	Memory memory.History

	// RequestLimit caps model requests per run. Zero means no cap.
	RequestLimit int
}

// Agent executes model-backed requests with optional memoization and
// conversation memory. Output is the declared result type a run decodes
// into; use string for plain text answers.
type Agent[Output any] struct {
	name         string
	caller       Caller
	memory       memory.History
	cache        *cache.Cache
	toolset      Toolset
	hooks        hookTrigger
	requestLimit int

	mu    sync.Mutex
	stats Stats
}

// New creates an agent from cfg.
func New[Output any](cfg Config, opts ...Option) (*Agent[Output], error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if cfg.Caller == nil {
		return nil, fmt.Errorf("%w: caller is required", ErrInvalidConfig)
	}
	if cfg.RequestLimit < 0 {
		return nil, fmt.Errorf("%w: request limit must not be negative", ErrInvalidConfig)
	}

	mem := cfg.Memory
	if mem == nil {
		mem = memory.NewNull()
	}

	a := &Agent[Output]{
		name:         cfg.Name,
		caller:       cfg.Caller,
		memory:       mem,
		requestLimit: cfg.RequestLimit,
	}
	options := applyOptions(opts)
	a.cache = options.cache
	a.toolset = options.toolset
	a.hooks = options.hooks
	if a.toolset == nil {
		a.toolset = NopToolset{}
	}
	return a, nil
}

// Name returns the agent's name.
func (a *Agent[Output]) Name() string {
	return a.name
}

// Cache attaches a cache after construction and returns the agent for
// chaining.
func (a *Agent[Output]) Cache(c *cache.Cache) *Agent[Output] {
	a.cache = c
	return a
}

// Stat returns a copy of the agent's cumulative run statistics.
func (a *Agent[Output]) Stat() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Run executes one request. When a cache is attached and holds a value
// for this input, the value is decoded and returned without calling the
// model; a decode mismatch surfaces as ErrCacheCorruption. Otherwise
// the caller is invoked with the memory chain's transcript, the
// resulting transcript is persisted through the chain, and the raw
// output is stored under the derived key.
func (a *Agent[Output]) Run(ctx context.Context, input any) (Output, error) {
	var zero Output

	prompt := promptString(input)

	if err := a.toolset.Enter(ctx); err != nil {
		return zero, NewRunError("toolset enter", a.name, err)
	}
	defer a.toolset.Exit(ctx)

	if err := a.hooks.TriggerBeforeRun(ctx, a.name, prompt); err != nil {
		return zero, NewRunError("before-run hook", a.name, err)
	}

	if a.cache != nil {
		key := a.cache.Key(a.name, input)
		unlock := a.cache.Lock(key)
		defer unlock()

		raw, found, err := a.cache.Get(key)
		if err != nil {
			return zero, NewRunError("cache get", a.name, err)
		}
		if found {
			out, err := decodeOutput[Output](raw)
			if err != nil {
				return zero, NewRunError("cache decode", a.name,
					fmt.Errorf("%w: %v", ErrCacheCorruption, err))
			}
			usage := types.Usage{Requests: 1}
			a.record(usage, cachedRunDuration)

			if err := a.hooks.TriggerCacheHit(ctx, a.name, key); err != nil {
				return zero, NewRunError("cache-hit hook", a.name, err)
			}
			if err := a.hooks.TriggerAfterRun(ctx, a.name, usage, cachedRunDuration); err != nil {
				return zero, NewRunError("after-run hook", a.name, err)
			}
			return out, nil
		}

		out, result, err := a.runLive(ctx, prompt)
		if err != nil {
			return zero, err
		}
		if err := a.cache.Set(key, result.Output); err != nil {
			return zero, NewRunError("cache set", a.name, err)
		}
		return out, nil
	}

	out, _, err := a.runLive(ctx, prompt)
	return out, err
}

// runLive performs the model round-trip and persists the transcript.
func (a *Agent[Output]) runLive(ctx context.Context, prompt string) (Output, *CallResult, error) {
	var zero Output

	start := time.Now()
	result, err := a.caller.Call(ctx, CallRequest{
		Prompt:       prompt,
		History:      a.memory.Load(),
		RequestLimit: a.requestLimit,
	})
	if err != nil {
		return zero, nil, NewRunError("call", a.name, fmt.Errorf("%w: %v", ErrCallerFailed, err))
	}
	elapsed := time.Since(start)
	a.record(result.Usage, elapsed)

	if err := a.memory.Persist(ctx, result.Messages); err != nil {
		return zero, nil, NewRunError("persist memory", a.name, err)
	}

	out, err := decodeOutput[Output](result.Output)
	if err != nil {
		return zero, nil, NewRunError("decode output", a.name, err)
	}

	if err := a.hooks.TriggerAfterRun(ctx, a.name, result.Usage, elapsed); err != nil {
		return zero, nil, NewRunError("after-run hook", a.name, err)
	}
	return out, result, nil
}

func (a *Agent[Output]) record(usage types.Usage, d time.Duration) {
	a.mu.Lock()
	a.stats.add(usage, d)
	a.mu.Unlock()
}

// promptString renders the run input as the user prompt. Strings pass
// through verbatim; anything else is JSON-encoded.
func promptString(input any) string {
	if s, ok := input.(string); ok {
		return s
	}
	data, err := json.Marshal(input)
	if err != nil {
		return fmt.Sprintf("%v", input)
	}
	return string(data)
}

// decodeOutput decodes a raw JSON value into the declared output type.
// Unknown fields are rejected so a cached value from a stale schema
// fails loudly instead of silently dropping data. For string outputs a
// non-JSON value is taken verbatim.
func decodeOutput[Output any](raw json.RawMessage) (Output, error) {
	var zero Output
	if _, ok := any(zero).(string); ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			s = string(raw)
		}
		return any(s).(Output), nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var out Output
	if err := dec.Decode(&out); err != nil {
		return zero, err
	}
	return out, nil
}
