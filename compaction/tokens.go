package compaction

import "github.com/askgo-dev/askgo/types"

// ResponseTokens sums the recorded token usage across assistant
// messages. This is the cumulative figure the token trigger predicate
// compares against.
func ResponseTokens(msgs []types.Message) int {
	total := 0
	for _, m := range msgs {
		if m.Role != types.RoleAssistant {
			continue
		}
		total += m.TokenCount()
	}
	return total
}

// ApproximateTokens provides a fast estimate without an API call.
func ApproximateTokens(content string) int {
	// Claude tokenizes roughly 3.5 characters per token for English text.
	return len(content) * 10 / 35
}
