// Package memory provides an in-memory content searcher for tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
	"github.com/cabinet-lcv/cherche-cli/internal/core/ports/driven"
)

// Ensure Searcher implements the interface.
var _ driven.ContentSearcher = (*Searcher)(nil)

// Post is an in-memory blog post.
type Post struct {
	Doc     domain.RemoteDocument
	Content string
}

// Searcher answers substring queries over a fixed set of posts.
type Searcher struct {
	mu    sync.Mutex
	posts []Post
	err   error
}

// NewSearcher creates a searcher over the given posts.
func NewSearcher(posts ...Post) *Searcher {
	return &Searcher{posts: posts}
}

// SetError makes every subsequent Search fail with err.
func (s *Searcher) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Add appends a post.
func (s *Searcher) Add(post Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append(s.posts, post)
}

// Search returns posts whose title, excerpt or content contains the
// term, case-insensitively, newest first.
func (s *Searcher) Search(_ context.Context, term string) ([]domain.RemoteDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	needle := strings.ToLower(term)
	var docs []domain.RemoteDocument
	for _, p := range s.posts {
		haystack := strings.ToLower(p.Doc.Title + " " + p.Doc.Excerpt + " " + p.Content)
		if strings.Contains(haystack, needle) {
			docs = append(docs, p.Doc)
		}
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})

	return docs, nil
}
