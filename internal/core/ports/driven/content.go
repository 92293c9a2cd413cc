package driven

import (
	"context"

	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
)

// ContentSearcher queries the remote content store for blog posts.
type ContentSearcher interface {
	// Search returns posts whose title, excerpt or body contains term
	// (case-insensitive substring), ordered newest-first by creation
	// time. One response per request; no streaming.
	Search(ctx context.Context, term string) ([]domain.RemoteDocument, error)
}
