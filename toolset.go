package askgo

import "context"

// Toolset is a scoped resource an agent holds for the duration of a
// run. Run calls Enter once before the first request and Exit exactly
// once on every path out, including cache hits and errors.
type Toolset interface {
	Enter(ctx context.Context) error
	Exit(ctx context.Context) error
}

// NopToolset is a Toolset that does nothing.
type NopToolset struct{}

// Enter implements Toolset.
func (NopToolset) Enter(ctx context.Context) error { return nil }

// Exit implements Toolset.
func (NopToolset) Exit(ctx context.Context) error { return nil }
