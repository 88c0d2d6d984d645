package compaction

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/askgo-dev/askgo/types"
)

func TestRenderParseCondensedRoundTrip(t *testing.T) {
	original := &Summary{
		Summary: "user asked about weather in two cities",
		Context: "open question: forecast for tomorrow",
	}

	parsed, err := parseCondensed(RenderCondensed(original))
	if err != nil {
		t.Fatalf("parseCondensed() error: %v", err)
	}
	if parsed.Summary != original.Summary {
		t.Errorf("summary = %q, want %q", parsed.Summary, original.Summary)
	}
	if parsed.Context != original.Context {
		t.Errorf("context = %q, want %q", parsed.Context, original.Context)
	}
}

func TestParseCondensed(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{
			name: "surrounding prose tolerated",
			text: "Here you go:\n<summary>s</summary>\n<context>c</context>\nDone.",
		},
		{
			name:    "missing summary",
			text:    "<context>c</context>",
			wantErr: true,
		},
		{
			name:    "missing context",
			text:    "<summary>s</summary>",
			wantErr: true,
		},
		{
			name:    "unterminated section",
			text:    "<summary>s<context>c</context>",
			wantErr: true,
		},
		{
			name:    "empty response",
			text:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCondensed(tt.text)
			if tt.wantErr && !errors.Is(err, ErrNoSummary) {
				t.Errorf("parseCondensed() error = %v, want ErrNoSummary", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("parseCondensed() error: %v", err)
			}
		})
	}
}

func TestFormatTranscript(t *testing.T) {
	msgs := []types.Message{
		types.NewUserMessage("check the weather"),
		{
			Role: types.RoleAssistant,
			Parts: []types.Part{
				{Kind: types.PartText, Content: "on it"},
				{Kind: types.PartToolCall, ToolName: "weather", ToolCallID: "c1", ToolArgs: json.RawMessage(`{"city":"tokyo"}`)},
			},
		},
		types.NewToolResultMessage("c1", "sunny", false),
	}

	text := FormatTranscript(msgs)
	for _, marker := range []string{"User:", "Assistant:", "check the weather", "[Tool: weather", "[Tool Result for c1: sunny]"} {
		if !strings.Contains(text, marker) {
			t.Errorf("FormatTranscript() missing %q:\n%s", marker, text)
		}
	}
}

func TestFormatTranscriptTruncatesToolResults(t *testing.T) {
	long := strings.Repeat("x", 2000)
	msgs := []types.Message{types.NewToolResultMessage("c1", long, false)}

	text := FormatTranscript(msgs)
	if strings.Contains(text, long) {
		t.Error("long tool result was not truncated")
	}
	if !strings.Contains(text, "...") {
		t.Error("truncated tool result missing ellipsis")
	}
}

func TestBuildSummaryPrompt(t *testing.T) {
	prompt := BuildSummaryPrompt("User:\nhello\n", 250)
	if !strings.Contains(prompt, "<conversation>") {
		t.Error("prompt missing conversation delimiter")
	}
	if !strings.Contains(prompt, "250 words") {
		t.Error("prompt missing word budget")
	}
}
