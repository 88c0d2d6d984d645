package memory

import (
	"context"

	"github.com/askgo-dev/askgo/types"
)

// History is a conversation-history node. Load returns the node's
// current transcript snapshot and Persist replaces it, forwarding the
// transcript down the chain when a next node is attached.
//
// Implementations must be safe for concurrent use.
type History interface {
	// Load returns a copy of the current transcript.
	Load() []types.Message

	// Persist replaces the stored transcript with msgs.
	Persist(ctx context.Context, msgs []types.Message) error
}

// NullHistory is a History that remembers nothing. Load always returns
// an empty transcript and Persist discards its input. It is the default
// for agents that should treat every run as a fresh conversation.
type NullHistory struct{}

// NewNull creates a NullHistory.
func NewNull() *NullHistory {
	return &NullHistory{}
}

// Load returns an empty transcript.
func (*NullHistory) Load() []types.Message {
	return nil
}

// Persist discards msgs.
func (*NullHistory) Persist(ctx context.Context, msgs []types.Message) error {
	return nil
}
