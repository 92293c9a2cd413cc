package mcp

import (
	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
	"github.com/cabinet-lcv/cherche-cli/internal/core/ports/driving"
)

// Ports aggregates everything the MCP server needs.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Aggregator answers one-shot combined searches.
	Aggregator driving.Aggregator

	// Catalog is the static site catalog exposed as a resource.
	Catalog []domain.SearchableItem
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Aggregator == nil {
		return ErrMissingAggregator
	}
	// Catalog is optional; the resource then reads as empty.
	return nil
}
