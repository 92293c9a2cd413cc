package tui

import (
	"github.com/cabinet-lcv/cherche-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Aggregator drives the incremental search.
	Aggregator driving.Aggregator
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil || p.Aggregator == nil {
		return ErrNoAggregator
	}
	return nil
}
