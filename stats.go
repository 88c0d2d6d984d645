package askgo

import (
	"fmt"
	"time"

	"github.com/askgo-dev/askgo/types"
)

// Stats accumulates run statistics for one agent instance. Cached runs
// count one request with near-zero duration; live runs record the
// caller's reported usage and the elapsed wall time.
type Stats struct {
	// Usage is the cumulative token and request usage.
	Usage types.Usage

	// Duration is the cumulative wall time across runs.
	Duration time.Duration

	// Runs is the number of completed runs, cached or live.
	Runs int
}

// add accumulates one run into s.
func (s *Stats) add(usage types.Usage, d time.Duration) {
	s.Usage.Add(usage)
	s.Duration += d
	s.Runs++
}

// String renders the statistics in a single human-readable line.
func (s Stats) String() string {
	return fmt.Sprintf("runs=%d requests=%d tokens=%d (in=%d out=%d) duration=%s",
		s.Runs, s.Usage.Requests, s.Usage.TotalTokens,
		s.Usage.InputTokens, s.Usage.OutputTokens, s.Duration.Round(time.Millisecond))
}
