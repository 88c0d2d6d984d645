package memory

import (
	"github.com/askgo-dev/askgo/compaction"
	"github.com/askgo-dev/askgo/hooks"
)

// Config describes a memory chain to build.
type Config struct {
	// FilePath, when non-empty, adds a durable file sink at the tail of
	// the chain. Empty keeps the chain volatile.
	FilePath string

	// ElideTools prunes tool-only messages before persisting.
	ElideTools bool

	// Repacker, when non-nil, adds summarizing compaction at the head
	// of the chain.
	Repacker *compaction.Repacker

	// Hooks receives compaction notifications. Optional.
	Hooks *hooks.Registry

	// Logger receives compaction diagnostics. A nil logger discards
	// output.
	Logger compaction.Logger
}

// New builds a memory chain from cfg. The chain runs transforms front
// to back: repack, then elision, then the buffer and file sink. A zero
// Config yields a plain volatile buffer.
func New(cfg Config) (History, error) {
	var tail History
	if cfg.FilePath != "" {
		f, err := NewFile(cfg.FilePath, nil)
		if err != nil {
			return nil, err
		}
		tail = f
	}

	var h History = NewBuffer(tail)
	if cfg.ElideTools {
		h = WithElision(h)
	}
	if cfg.Repacker != nil {
		h = WithRepack(h, cfg.Repacker, cfg.Hooks, cfg.Logger)
	}
	return h, nil
}
