package compaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/askgo-dev/askgo/types"
)

// fakeSummarizer returns a canned summary, optionally failing the first
// n attempts.
type fakeSummarizer struct {
	summary   *Summary
	failFirst int
	calls     int
	seen      []types.Message
}

func (f *fakeSummarizer) Summarize(ctx context.Context, msgs []types.Message) (*Summary, error) {
	f.calls++
	f.seen = msgs
	if f.calls <= f.failFirst {
		return nil, errors.New("transient failure")
	}
	return f.summary, nil
}

func transcript(n int) []types.Message {
	msgs := make([]types.Message, 0, n)
	msgs = append(msgs, types.NewSystemMessage("system framing"))
	for i := 1; i < n; i++ {
		if i%2 == 1 {
			msgs = append(msgs, types.NewUserMessage(fmt.Sprintf("question %d", i)))
		} else {
			msgs = append(msgs, types.NewTextMessage(fmt.Sprintf("answer %d", i)))
		}
	}
	return msgs
}

func TestShouldRepack(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		msgs     []types.Message
		expected bool
	}{
		{
			name:     "below intrinsic floor",
			config:   Config{KeepLast: 3},
			msgs:     transcript(4),
			expected: false,
		},
		{
			name:     "above floor with no predicates",
			config:   Config{KeepLast: 3},
			msgs:     transcript(5),
			expected: true,
		},
		{
			name:     "message predicate unmet",
			config:   Config{KeepLast: 3, TriggerMessages: 10},
			msgs:     transcript(8),
			expected: false,
		},
		{
			name:     "message predicate met",
			config:   Config{KeepLast: 3, TriggerMessages: 10},
			msgs:     transcript(10),
			expected: true,
		},
		{
			name:     "token predicate unmet",
			config:   Config{KeepLast: 3, TriggerTokens: 1000},
			msgs:     transcript(10),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRepacker(&fakeSummarizer{}, &tt.config, nil)
			if err != nil {
				t.Fatalf("NewRepacker() error: %v", err)
			}
			if got := r.ShouldRepack(tt.msgs); got != tt.expected {
				t.Errorf("ShouldRepack() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestShouldRepackTokenPredicateMet(t *testing.T) {
	msgs := transcript(10)
	for i := range msgs {
		if msgs[i].Role == types.RoleAssistant {
			msgs[i].Usage = &types.Usage{TotalTokens: 500}
		}
	}

	r, err := NewRepacker(&fakeSummarizer{}, &Config{KeepLast: 3, TriggerTokens: 1000}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !r.ShouldRepack(msgs) {
		t.Errorf("ShouldRepack() = false with %d recorded tokens, want true", ResponseTokens(msgs))
	}
}

func TestRepackShape(t *testing.T) {
	msgs := transcript(11)
	summarizer := &fakeSummarizer{summary: &Summary{Summary: "short", Context: "dense"}}
	r, err := NewRepacker(summarizer, &Config{KeepLast: 3}, nil)
	if err != nil {
		t.Fatal(err)
	}

	out, err := r.Repack(context.Background(), msgs)
	if err != nil {
		t.Fatalf("Repack() error: %v", err)
	}

	// head + synthetic + KeepLast tail
	if len(out) != 5 {
		t.Fatalf("Repack() returned %d messages, want 5", len(out))
	}

	// Head survives byte-identical.
	if out[0].Text() != msgs[0].Text() || out[0].Role != msgs[0].Role {
		t.Errorf("head message changed: %+v", out[0])
	}

	// Synthetic message is assistant-role and carries both sections.
	synthetic := out[1]
	if synthetic.Role != types.RoleAssistant {
		t.Errorf("synthetic message role = %q, want assistant", synthetic.Role)
	}
	text := synthetic.Text()
	for _, marker := range []string{"<condense>", "<summary>", "short", "<context>", "dense", "</condense>"} {
		if !strings.Contains(text, marker) {
			t.Errorf("synthetic message missing %q:\n%s", marker, text)
		}
	}

	// Tail survives verbatim in order.
	tail := msgs[len(msgs)-3:]
	for i, m := range tail {
		if out[2+i].Text() != m.Text() {
			t.Errorf("tail message %d = %q, want %q", i, out[2+i].Text(), m.Text())
		}
	}

	// The summarizer only ever saw the middle segment.
	if len(summarizer.seen) != len(msgs)-4 {
		t.Errorf("summarizer saw %d messages, want %d", len(summarizer.seen), len(msgs)-4)
	}
}

func TestRepackBelowTriggerUnchanged(t *testing.T) {
	msgs := transcript(4)
	r, err := NewRepacker(&fakeSummarizer{summary: &Summary{}}, &Config{KeepLast: 3}, nil)
	if err != nil {
		t.Fatal(err)
	}

	out, err := r.Repack(context.Background(), msgs)
	if err != nil {
		t.Fatalf("Repack() error: %v", err)
	}
	if len(out) != len(msgs) {
		t.Errorf("transcript below trigger was modified: %d -> %d", len(msgs), len(out))
	}
}

func TestRepackRetriesThenSucceeds(t *testing.T) {
	summarizer := &fakeSummarizer{
		summary:   &Summary{Summary: "s", Context: "c"},
		failFirst: 2,
	}
	r, err := NewRepacker(summarizer, &Config{KeepLast: 3, Retries: 2}, nil)
	if err != nil {
		t.Fatal(err)
	}

	out, err := r.Repack(context.Background(), transcript(11))
	if err != nil {
		t.Fatalf("Repack() error after retries: %v", err)
	}
	if summarizer.calls != 3 {
		t.Errorf("summarizer called %d times, want 3", summarizer.calls)
	}
	if len(out) != 5 {
		t.Errorf("Repack() returned %d messages, want 5", len(out))
	}
}

func TestRepackFallbackOnExhaustedRetries(t *testing.T) {
	summarizer := &fakeSummarizer{failFirst: 100}
	r, err := NewRepacker(summarizer, &Config{KeepLast: 3, Retries: 1}, nil)
	if err != nil {
		t.Fatal(err)
	}

	msgs := transcript(11)
	out, err := r.Repack(context.Background(), msgs)
	if !errors.Is(err, ErrSummarizationFailed) {
		t.Errorf("Repack() error = %v, want ErrSummarizationFailed", err)
	}
	if len(out) != len(msgs) {
		t.Errorf("fallback did not return the original transcript: %d vs %d", len(out), len(msgs))
	}
	if summarizer.calls != 2 {
		t.Errorf("summarizer called %d times, want first attempt + 1 retry", summarizer.calls)
	}
}

func TestNewRepackerValidation(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		valid  bool
	}{
		{name: "nil config uses defaults", config: nil, valid: true},
		{name: "even keep_last", config: &Config{KeepLast: 4}, valid: false},
		{name: "negative retries", config: &Config{KeepLast: 3, Retries: -1}, valid: false},
		{name: "odd keep_last", config: &Config{KeepLast: 5}, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRepacker(&fakeSummarizer{}, tt.config, nil)
			if tt.valid && err != nil {
				t.Errorf("NewRepacker() error: %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("NewRepacker() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
