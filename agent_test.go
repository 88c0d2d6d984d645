package askgo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/askgo-dev/askgo/cache"
	"github.com/askgo-dev/askgo/hooks"
	"github.com/askgo-dev/askgo/memory"
	"github.com/askgo-dev/askgo/types"
)

// fakeCaller answers with a canned output and records invocations.
type fakeCaller struct {
	output json.RawMessage
	err    error
	calls  int
	seen   CallRequest
}

func (f *fakeCaller) Call(ctx context.Context, req CallRequest) (*CallResult, error) {
	f.calls++
	f.seen = req
	if f.err != nil {
		return nil, f.err
	}
	transcript := append(types.CloneTranscript(req.History), types.NewUserMessage(req.Prompt))
	transcript = append(transcript, types.NewTextMessage("answer"))
	return &CallResult{
		Output:   f.output,
		Messages: transcript,
		Usage:    types.Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15, Requests: 1},
	}, nil
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		valid  bool
	}{
		{name: "valid", config: Config{Name: "a", Caller: &fakeCaller{}}, valid: true},
		{name: "missing name", config: Config{Caller: &fakeCaller{}}, valid: false},
		{name: "missing caller", config: Config{Name: "a"}, valid: false},
		{name: "negative limit", config: Config{Name: "a", Caller: &fakeCaller{}, RequestLimit: -1}, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New[string](tt.config)
			if tt.valid && err != nil {
				t.Errorf("New() error: %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("New() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestRunMissThenHit(t *testing.T) {
	caller := &fakeCaller{output: json.RawMessage(`"tokyo"`)}
	agent, err := New[string](Config{Name: "capitals", Caller: caller},
		WithCache(cache.New(cache.NewMemoryStore())))
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()

	got, err := agent.Run(ctx, "capital of japan")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got != "tokyo" {
		t.Errorf("Run() = %q, want %q", got, "tokyo")
	}
	if caller.calls != 1 {
		t.Fatalf("caller invoked %d times, want 1", caller.calls)
	}

	// Same input is answered from the cache.
	got, err = agent.Run(ctx, "capital of japan")
	if err != nil {
		t.Fatalf("Run() on hit error: %v", err)
	}
	if got != "tokyo" {
		t.Errorf("cached Run() = %q, want %q", got, "tokyo")
	}
	if caller.calls != 1 {
		t.Errorf("caller invoked %d times after hit, want 1", caller.calls)
	}

	// Different input misses.
	if _, err := agent.Run(ctx, "capital of france"); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if caller.calls != 2 {
		t.Errorf("caller invoked %d times, want 2", caller.calls)
	}

	stats := agent.Stat()
	if stats.Runs != 3 {
		t.Errorf("stats runs = %d, want 3", stats.Runs)
	}
	if stats.Usage.Requests != 3 {
		t.Errorf("stats requests = %d, want 2 live + 1 cached", stats.Usage.Requests)
	}
}

func TestRunStructuredOutput(t *testing.T) {
	type city struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	}

	caller := &fakeCaller{output: json.RawMessage(`{"name":"Tokyo","country":"Japan"}`)}
	agent, err := New[city](Config{Name: "cities", Caller: caller})
	if err != nil {
		t.Fatal(err)
	}

	got, err := agent.Run(context.Background(), "largest city")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got.Name != "Tokyo" || got.Country != "Japan" {
		t.Errorf("Run() = %+v", got)
	}
}

func TestRunCacheCorruption(t *testing.T) {
	type answer struct {
		Value string `json:"value"`
	}

	store := cache.NewMemoryStore()
	c := cache.New(store)
	caller := &fakeCaller{output: json.RawMessage(`{"value":"ok"}`)}
	agent, err := New[answer](Config{Name: "strict", Caller: caller}, WithCache(c))
	if err != nil {
		t.Fatal(err)
	}

	// Plant a value from a different schema under the key this run will
	// derive.
	key := c.Key("strict", "input")
	if err := c.Set(key, json.RawMessage(`{"value":"ok","extra":true}`)); err != nil {
		t.Fatal(err)
	}

	_, err = agent.Run(context.Background(), "input")
	if !errors.Is(err, ErrCacheCorruption) {
		t.Fatalf("Run() error = %v, want ErrCacheCorruption", err)
	}
	if caller.calls != 0 {
		t.Errorf("caller invoked on a corrupt hit; corruption must surface, not fall through")
	}

	// The stale entry stays in place for the operator to inspect.
	if _, found, _ := c.Get(key); !found {
		t.Error("corrupt entry was evicted")
	}
}

func TestRunStringOutputToleratesPlainText(t *testing.T) {
	// A string agent accepts raw non-JSON cached values verbatim.
	c := cache.New(cache.NewMemoryStore())
	key := c.Key("plain", "input")
	if err := c.Set(key, json.RawMessage(`not json`)); err != nil {
		t.Fatal(err)
	}

	agent, err := New[string](Config{Name: "plain", Caller: &fakeCaller{}}, WithCache(c))
	if err != nil {
		t.Fatal(err)
	}
	got, err := agent.Run(context.Background(), "input")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got != "not json" {
		t.Errorf("Run() = %q, want the raw value", got)
	}
}

func TestRunCallerError(t *testing.T) {
	sentinel := errors.New("model unavailable")
	agent, err := New[string](Config{Name: "failing", Caller: &fakeCaller{err: sentinel}})
	if err != nil {
		t.Fatal(err)
	}

	_, err = agent.Run(context.Background(), "input")
	if !errors.Is(err, ErrCallerFailed) {
		t.Errorf("Run() error = %v, want ErrCallerFailed", err)
	}

	var runErr *RunError
	if !errors.As(err, &runErr) {
		t.Errorf("Run() error type = %T, want *RunError", err)
	}
}

func TestRunMemoryFlow(t *testing.T) {
	caller := &fakeCaller{output: json.RawMessage(`"a"`)}
	mem := memory.NewBuffer(nil)
	agent, err := New[string](Config{Name: "chatty", Caller: caller, Memory: mem})
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if _, err := agent.Run(ctx, "first question"); err != nil {
		t.Fatal(err)
	}

	// The transcript from run one is replayed into run two.
	if _, err := agent.Run(ctx, "second question"); err != nil {
		t.Fatal(err)
	}
	if len(caller.seen.History) != 2 {
		t.Errorf("second run saw %d history messages, want 2", len(caller.seen.History))
	}

	if got := mem.Load(); len(got) != 4 {
		t.Errorf("memory holds %d messages after two runs, want 4", len(got))
	}
}

// trackingToolset records enter/exit transitions.
type trackingToolset struct {
	enters   int
	exits    int
	enterErr error
}

func (ts *trackingToolset) Enter(ctx context.Context) error {
	ts.enters++
	return ts.enterErr
}

func (ts *trackingToolset) Exit(ctx context.Context) error {
	ts.exits++
	return nil
}

func TestRunToolsetLifecycle(t *testing.T) {
	t.Run("exit on success", func(t *testing.T) {
		ts := &trackingToolset{}
		agent, err := New[string](Config{Name: "a", Caller: &fakeCaller{output: json.RawMessage(`"x"`)}},
			WithToolset(ts))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := agent.Run(context.Background(), "p"); err != nil {
			t.Fatal(err)
		}
		if ts.enters != 1 || ts.exits != 1 {
			t.Errorf("enters=%d exits=%d, want 1/1", ts.enters, ts.exits)
		}
	})

	t.Run("exit on caller error", func(t *testing.T) {
		ts := &trackingToolset{}
		agent, err := New[string](Config{Name: "a", Caller: &fakeCaller{err: errors.New("boom")}},
			WithToolset(ts))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := agent.Run(context.Background(), "p"); err == nil {
			t.Fatal("expected run error")
		}
		if ts.exits != 1 {
			t.Errorf("exits=%d after failed run, want 1", ts.exits)
		}
	})

	t.Run("no exit when enter fails", func(t *testing.T) {
		ts := &trackingToolset{enterErr: errors.New("no resources")}
		agent, err := New[string](Config{Name: "a", Caller: &fakeCaller{}}, WithToolset(ts))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := agent.Run(context.Background(), "p"); err == nil {
			t.Fatal("expected enter error")
		}
		if ts.exits != 0 {
			t.Errorf("exits=%d after failed enter, want 0", ts.exits)
		}
	})
}

func TestRunHooks(t *testing.T) {
	registry := hooks.NewRegistry()
	var events []string
	registry.OnBeforeRun(func(ctx context.Context, agent, prompt string) error {
		events = append(events, "before")
		return nil
	})
	registry.OnCacheHit(func(ctx context.Context, agent, key string) error {
		events = append(events, "hit")
		return nil
	})
	registry.OnAfterRun(func(ctx context.Context, agent string, usage types.Usage, d time.Duration) error {
		events = append(events, "after")
		return nil
	})

	caller := &fakeCaller{output: json.RawMessage(`"x"`)}
	agent, err := New[string](Config{Name: "observed", Caller: caller},
		WithCache(cache.New(cache.NewMemoryStore())), WithHooks(registry))
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if _, err := agent.Run(ctx, "p"); err != nil {
		t.Fatal(err)
	}
	if _, err := agent.Run(ctx, "p"); err != nil {
		t.Fatal(err)
	}

	want := []string{"before", "after", "before", "hit", "after"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}
}

func TestPromptString(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{name: "string verbatim", input: "hello", expected: "hello"},
		{name: "struct encoded", input: map[string]any{"q": "hi"}, expected: `{"q":"hi"}`},
		{name: "number encoded", input: 7, expected: "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := promptString(tt.input); got != tt.expected {
				t.Errorf("promptString(%v) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
