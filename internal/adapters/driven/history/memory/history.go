// Package memory provides an in-memory history store for tests and
// ephemeral runs.
package memory

import (
	"context"
	"sync"

	"github.com/cabinet-lcv/cherche-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

// Store keeps the recent-query log in memory only.
type Store struct {
	mu      sync.Mutex
	entries []string
}

// NewStore creates an empty in-memory history store.
func NewStore() *Store {
	return &Store{}
}

// Load returns a copy of the stored log.
func (s *Store) Load(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.entries...), nil
}

// Save replaces the stored log.
func (s *Store) Save(_ context.Context, entries []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append([]string(nil), entries...)
	return nil
}

// Clear empties the stored log.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}
