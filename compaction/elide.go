package compaction

import "github.com/askgo-dev/askgo/types"

// Elide removes every message whose content is exclusively
// tool-protocol traffic (tool calls, tool results, retry notices),
// leaving narrative user and assistant turns untouched.
//
// Because a tool exchange always lives in messages of its own, matched
// call/result pairs are removed together, never half of one. Elide is
// pure and idempotent: applying it twice equals applying it once.
func Elide(msgs []types.Message) []types.Message {
	out := make([]types.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.IsToolOnly() {
			continue
		}
		out = append(out, m)
	}
	return out
}
