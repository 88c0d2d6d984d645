package compaction

import "fmt"

// Default configuration values.
const (
	DefaultKeepLast        = 3
	DefaultTriggerTokens   = 100_000
	DefaultMaxSummaryWords = 500
	DefaultRetries         = 2
)

// Config holds repacker configuration.
type Config struct {
	// KeepLast is the protected tail window: the number of most recent
	// messages kept verbatim. Must be odd so the window starts and ends
	// on matching turn boundaries.
	// Default: 3
	KeepLast int

	// TriggerMessages is the minimum transcript length required before
	// repacking, in addition to the intrinsic head+tail floor.
	// 0 disables the message-count predicate.
	TriggerMessages int

	// TriggerTokens is the cumulative recorded response-token usage
	// that must be exceeded before repacking. 0 disables the token
	// predicate.
	// Default: 100000
	TriggerTokens int

	// MaxSummaryWords bounds the summarizer output.
	// Default: 500
	MaxSummaryWords int

	// Retries is the number of additional summarizer attempts after
	// the first failure.
	// Default: 2
	Retries int
}

// DefaultConfig returns a Config with the default thresholds.
func DefaultConfig() *Config {
	return &Config{
		KeepLast:        DefaultKeepLast,
		TriggerTokens:   DefaultTriggerTokens,
		MaxSummaryWords: DefaultMaxSummaryWords,
		Retries:         DefaultRetries,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *Config) ApplyDefaults() {
	if c.KeepLast == 0 {
		c.KeepLast = DefaultKeepLast
	}
	if c.MaxSummaryWords == 0 {
		c.MaxSummaryWords = DefaultMaxSummaryWords
	}
	if c.Retries == 0 {
		c.Retries = DefaultRetries
	}
	// TriggerMessages and TriggerTokens are left as configured: zero
	// disables a predicate.
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.KeepLast <= 0 {
		return fmt.Errorf("%w: keep_last must be positive, got %d", ErrInvalidConfig, c.KeepLast)
	}
	if c.KeepLast%2 == 0 {
		return fmt.Errorf("%w: keep_last must be odd so the tail starts on a request boundary, got %d", ErrInvalidConfig, c.KeepLast)
	}
	if c.TriggerMessages < 0 {
		return fmt.Errorf("%w: trigger_messages must be non-negative, got %d", ErrInvalidConfig, c.TriggerMessages)
	}
	if c.TriggerTokens < 0 {
		return fmt.Errorf("%w: trigger_tokens must be non-negative, got %d", ErrInvalidConfig, c.TriggerTokens)
	}
	if c.MaxSummaryWords <= 0 {
		return fmt.Errorf("%w: max_summary_words must be positive, got %d", ErrInvalidConfig, c.MaxSummaryWords)
	}
	if c.Retries < 0 {
		return fmt.Errorf("%w: retries must be non-negative, got %d", ErrInvalidConfig, c.Retries)
	}
	return nil
}
