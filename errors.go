package askgo

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig is returned when the agent configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrCacheCorruption is returned when a cached value cannot be
	// decoded into the agent's declared output type. The stale entry is
	// left in place; clearing the cache is the caller's decision.
	ErrCacheCorruption = errors.New("cached value does not match output type")

	// ErrCallerFailed is returned when the model round-trip fails.
	ErrCallerFailed = errors.New("caller failed")
)

// RunError represents a failed run with additional context.
type RunError struct {
	Op    string // Operation that failed
	Agent string // Agent name
	Err   error  // Underlying error
}

// Error implements the error interface.
func (e *RunError) Error() string {
	if e.Agent != "" {
		return fmt.Sprintf("%s (agent=%s): %v", e.Op, e.Agent, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *RunError) Unwrap() error {
	return e.Err
}

// NewRunError creates a new RunError.
func NewRunError(op, agent string, err error) *RunError {
	return &RunError{Op: op, Agent: agent, Err: err}
}
