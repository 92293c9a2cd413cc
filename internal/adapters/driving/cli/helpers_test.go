package cli

import (
	"context"
	"testing"
	"time"

	contentmemory "github.com/cabinet-lcv/cherche-cli/internal/adapters/driven/content/memory"
	historymemory "github.com/cabinet-lcv/cherche-cli/internal/adapters/driven/history/memory"
	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
	"github.com/cabinet-lcv/cherche-cli/internal/core/services"
)

// stubNavigator records navigations instead of opening a browser.
type stubNavigator struct {
	urls []string
}

func (n *stubNavigator) Navigate(_ context.Context, url string) error {
	n.urls = append(n.urls, url)
	return nil
}

// setupTestServices wires the package-level services with in-memory
// adapters and returns a cleanup restoring the previous wiring.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	items := []domain.SearchableItem{
		{
			Title:       "Hypnose Thérapeutique",
			Description: "Une approche douce",
			URL:         "/psychologie/hypnose",
			Category:    "Psychologie",
			Keywords:    []string{"hypnose", "thérapie"},
		},
		{
			Title:    "Contact",
			URL:      "/contact",
			Category: "Contact",
		},
	}

	content := contentmemory.NewSearcher(contentmemory.Post{
		Doc: domain.RemoteDocument{
			ID:        "42",
			Title:     "Gérer le stress",
			Excerpt:   "Quelques pistes concrètes.",
			CreatedAt: time.Date(2026, 5, 12, 9, 0, 0, 0, time.UTC),
		},
	})

	agg := services.NewAggregator(
		services.NewStaticIndex(items),
		content,
		historymemory.NewStore(),
		&stubNavigator{},
	)

	oldAggregator := aggregator
	oldCatalog := catalogItems
	oldConfig := configStore
	aggregator = agg
	catalogItems = items
	configStore = nil

	return func() {
		agg.Close()
		aggregator = oldAggregator
		catalogItems = oldCatalog
		configStore = oldConfig
	}
}
