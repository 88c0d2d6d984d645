package compaction

import "errors"

// Sentinel errors for compaction operations.
var (
	// ErrInvalidConfig indicates invalid repacker configuration.
	ErrInvalidConfig = errors.New("invalid compaction configuration")

	// ErrSummarizationFailed indicates the summarizer exhausted its
	// retry budget.
	ErrSummarizationFailed = errors.New("summarization failed")

	// ErrNoSummary indicates the summarizer returned a response the
	// condense format could not be parsed from.
	ErrNoSummary = errors.New("no summary in summarizer response")
)

// Logger is the minimal logging interface consumed by the repacker.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger {
	return noopLogger{}
}

// noopLogger is a no-op implementation of Logger.
type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any) {}
func (noopLogger) Info(msg string, args ...any)  {}
func (noopLogger) Warn(msg string, args ...any)  {}
func (noopLogger) Error(msg string, args ...any) {}
