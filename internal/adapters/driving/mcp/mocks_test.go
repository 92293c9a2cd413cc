package mcp

import (
	"context"

	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
	"github.com/cabinet-lcv/cherche-cli/internal/core/ports/driving"
)

// mockAggregator implements driving.Aggregator for tests.
type mockAggregator struct {
	groups []domain.ResultGroup
	recent []string
	err    error

	lastQuery string
}

var _ driving.Aggregator = (*mockAggregator)(nil)

func (m *mockAggregator) SetQuery(_ context.Context, query string) {
	m.lastQuery = query
}

func (m *mockAggregator) State() domain.SearchState {
	return domain.SearchState{Query: m.lastQuery, Groups: m.groups, Recent: m.recent}
}

func (m *mockAggregator) Search(_ context.Context, query string) ([]domain.ResultGroup, error) {
	m.lastQuery = query
	if m.err != nil {
		return nil, m.err
	}
	return m.groups, nil
}

func (m *mockAggregator) Select(context.Context, domain.SearchResult) error {
	return m.err
}

func (m *mockAggregator) SelectRecent(_ context.Context, term string) {
	m.lastQuery = term
}

func (m *mockAggregator) Recent() []string {
	return m.recent
}

func (m *mockAggregator) ClearRecent(context.Context) error {
	m.recent = nil
	return nil
}

func (m *mockAggregator) Notify(func(domain.SearchState)) {}

func (m *mockAggregator) Close() {}
