package driving

import (
	"context"

	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
)

// Aggregator is the single entry point for incremental site search.
// It merges synchronous catalog matches with an asynchronous remote
// substring search and manages the recent-query log.
type Aggregator interface {
	// SetQuery reacts to a query string change. An empty query enters
	// the idle state; a non-empty query publishes local results
	// immediately and issues exactly one remote request. A remote
	// response belonging to a superseded query is never published.
	SetQuery(ctx context.Context, query string)

	// State returns the current published state.
	State() domain.SearchState

	// Search runs a one-shot combined search and returns the grouped
	// results once both sources have settled. Remote failure degrades
	// to local-only results without error.
	Search(ctx context.Context, query string) ([]domain.ResultGroup, error)

	// Select records the query that produced the result in the recent
	// log, navigates to the result's URL and clears the query.
	Select(ctx context.Context, result domain.SearchResult) error

	// SelectRecent re-populates the query with a logged entry.
	SelectRecent(ctx context.Context, term string)

	// Recent returns the recent-query log, most recent first.
	Recent() []string

	// ClearRecent empties the recent-query log and its durable storage.
	ClearRecent(ctx context.Context) error

	// Notify registers a callback invoked on every state publication.
	// The callback may be invoked from a background goroutine.
	Notify(fn func(domain.SearchState))

	// Close stops all further publications. In-flight remote requests
	// are abandoned; their resolutions have no visible effect.
	Close()
}
