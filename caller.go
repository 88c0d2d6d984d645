package askgo

import (
	"context"
	"encoding/json"

	"github.com/askgo-dev/askgo/types"
)

// CallRequest carries one run's input to a Caller.
type CallRequest struct {
	// Prompt is the user prompt for this run.
	Prompt string

	// History is the transcript accumulated by the memory chain. The
	// caller replays it ahead of the prompt.
	History []types.Message

	// RequestLimit caps the number of model requests a multi-turn
	// caller may make for this run. Zero means no cap.
	RequestLimit int
}

// CallResult is what a Caller returns for one run.
type CallResult struct {
	// Output is the run's result, JSON-encoded. This is the value the
	// cache stores and the agent decodes into its output type.
	Output json.RawMessage

	// Messages is the full transcript after the run, including the
	// prompt and every response, ready to persist.
	Messages []types.Message

	// Usage is the total usage consumed by the run.
	Usage types.Usage
}

// Caller performs the model round-trip for an agent run. Implementations
// may make a single request or run a multi-turn tool loop; the agent
// only sees the final result.
type Caller interface {
	Call(ctx context.Context, req CallRequest) (*CallResult, error)
}

// CallerFunc adapts a function to the Caller interface.
type CallerFunc func(ctx context.Context, req CallRequest) (*CallResult, error)

// Call implements Caller.
func (f CallerFunc) Call(ctx context.Context, req CallRequest) (*CallResult, error) {
	return f(ctx, req)
}
