package compaction

import (
	"fmt"
	"strings"

	"github.com/askgo-dev/askgo/types"
)

// SummarySystemPrompt is the system prompt used for transcript
// condensation. It instructs the model to compress the conversation
// into a short summary plus a denser context block capturing open
// requests, decisions and unresolved items.
const SummarySystemPrompt = `You compress conversations into concise, actionable summaries. Remove greetings, chit-chat and repetition. Preserve key facts, decisions, constraints, open questions and TODOs.

Respond with exactly two delimited sections and nothing else:

<summary>
A short summary of the conversation so far.
</summary>
<context>
The context needed to continue the conversation. Where applicable include:
- Primary request and intent: the user's explicit requests in detail.
- Problem solving: problems solved and any ongoing troubleshooting.
- Pending items: decisions taken, open questions, next steps.
</context>`

// BuildSummaryPrompt creates the user message for a condensation
// request over the formatted middle segment of a transcript.
func BuildSummaryPrompt(conversationText string, maxWords int) string {
	return fmt.Sprintf(`Condense the conversation below. It covers older turns that will be truncated from the context window, so your output is the only record that survives.

<conversation>
%s
</conversation>

Output at most %d words, using the <summary> and <context> sections exactly as instructed.`, conversationText, maxWords)
}

// FormatTranscript renders messages as readable text for the
// summarizer.
func FormatTranscript(msgs []types.Message) string {
	var b strings.Builder
	for _, m := range msgs {
		b.WriteString(roleLabel(m.Role))
		b.WriteString(":\n")
		b.WriteString(formatParts(m.Parts))
		b.WriteString("\n\n")
	}
	return b.String()
}

func roleLabel(r types.Role) string {
	if r == types.RoleAssistant {
		return "Assistant"
	}
	return "User"
}

func formatParts(parts []types.Part) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		switch p.Kind {
		case types.PartToolCall:
			out = append(out, fmt.Sprintf("[Tool: %s, Input: %s]", p.ToolName, string(p.ToolArgs)))
		case types.PartToolResult:
			content := p.Content
			if len(content) > 500 {
				content = content[:497] + "..."
			}
			label := "Tool Result"
			if p.IsError {
				label = "Tool Error"
			}
			out = append(out, fmt.Sprintf("[%s for %s: %s]", label, p.ToolCallID, content))
		case types.PartRetry:
			out = append(out, fmt.Sprintf("[Retry: %s]", p.Content))
		case types.PartThinking:
			out = append(out, fmt.Sprintf("[Thinking: %s]", p.Content))
		default:
			if p.Content != "" {
				out = append(out, p.Content)
			}
		}
	}
	return strings.Join(out, "\n")
}

// RenderCondensed embeds a summary in the fixed delimited format used
// for the synthetic transcript message.
func RenderCondensed(s *Summary) string {
	return "<condense>\n<summary>\n" + s.Summary + "\n</summary>\n<context>\n" + s.Context + "\n</context>\n</condense>"
}

// parseCondensed extracts the summary and context sections from a
// summarizer response.
func parseCondensed(text string) (*Summary, error) {
	summary, ok := between(text, "<summary>", "</summary>")
	if !ok {
		return nil, ErrNoSummary
	}
	context, ok := between(text, "<context>", "</context>")
	if !ok {
		return nil, ErrNoSummary
	}
	return &Summary{
		Summary: strings.TrimSpace(summary),
		Context: strings.TrimSpace(context),
	}, nil
}

func between(s, open, close string) (string, bool) {
	start := strings.Index(s, open)
	if start < 0 {
		return "", false
	}
	rest := s[start+len(open):]
	end := strings.Index(rest, close)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}
