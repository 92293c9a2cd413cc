package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/cabinet-lcv/cherche-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

// fileName is the recent-searches file inside the data directory.
const fileName = "recent_searches.toml"

// recentFile is the on-disk TOML shape.
type recentFile struct {
	RecentSearches []string `toml:"recent_searches"`
}

// Store persists the recent-query log as a TOML file. The log is small
// and rewritten whole on every save.
type Store struct {
	mu       sync.Mutex
	filePath string
}

// NewStore creates a file-backed history store under dataDir.
// If dataDir is empty, defaults to ~/.cherche/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".cherche", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{filePath: filepath.Join(dataDir, fileName)}, nil
}

// Load reads the persisted log. A missing file yields an empty log; a
// malformed file is an error, which callers treat as an empty log.
func (s *Store) Load(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading recent searches: %w", err)
	}

	var f recentFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing recent searches: %w", err)
	}

	return f.RecentSearches, nil
}

// Save replaces the persisted log.
func (s *Store) Save(_ context.Context, entries []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(recentFile{RecentSearches: entries})
	if err != nil {
		return fmt.Errorf("encoding recent searches: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing recent searches: %w", err)
	}
	return nil
}

// Clear removes the persisted log entirely.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing recent searches: %w", err)
	}
	return nil
}

// Path returns the recent-searches file path.
func (s *Store) Path() string {
	return s.filePath
}
