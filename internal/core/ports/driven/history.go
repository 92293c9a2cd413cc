package driven

import "context"

// HistoryStore persists the recent-query log under a single fixed key.
// Implementations degrade gracefully: an absent or corrupt value loads
// as an empty log rather than an error.
type HistoryStore interface {
	// Load returns the persisted log, most recent first.
	Load(ctx context.Context) ([]string, error)

	// Save replaces the persisted log.
	Save(ctx context.Context, entries []string) error

	// Clear removes the persisted log entirely.
	Clear(ctx context.Context) error
}
