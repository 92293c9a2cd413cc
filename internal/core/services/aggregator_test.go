package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
)

// --- Mock implementations ---

// stubContent implements driven.ContentSearcher with canned responses.
type stubContent struct {
	mu    sync.Mutex
	docs  []domain.RemoteDocument
	err   error
	calls []string
}

func (c *stubContent) Search(_ context.Context, term string) ([]domain.RemoteDocument, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, term)
	if c.err != nil {
		return nil, c.err
	}
	return c.docs, nil
}

// gatedContent blocks each Search call until the gate for its term is
// released, ignoring context cancellation so late deliveries can be
// simulated deterministically.
type gatedContent struct {
	mu    sync.Mutex
	gates map[string]chan []domain.RemoteDocument
}

func newGatedContent(terms ...string) *gatedContent {
	g := &gatedContent{gates: make(map[string]chan []domain.RemoteDocument)}
	for _, term := range terms {
		g.gates[term] = make(chan []domain.RemoteDocument, 1)
	}
	return g
}

func (c *gatedContent) Search(_ context.Context, term string) ([]domain.RemoteDocument, error) {
	c.mu.Lock()
	gate := c.gates[term]
	c.mu.Unlock()
	if gate == nil {
		return nil, nil
	}
	return <-gate, nil
}

func (c *gatedContent) release(term string, docs []domain.RemoteDocument) {
	c.mu.Lock()
	gate := c.gates[term]
	c.mu.Unlock()
	gate <- docs
}

// stubHistory implements driven.HistoryStore in memory.
type stubHistory struct {
	mu      sync.Mutex
	entries []string
	loadErr error
	saveErr error
	saves   int
	clears  int
}

func (h *stubHistory) Load(_ context.Context) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.loadErr != nil {
		return nil, h.loadErr
	}
	return append([]string(nil), h.entries...), nil
}

func (h *stubHistory) Save(_ context.Context, entries []string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.saves++
	if h.saveErr != nil {
		return h.saveErr
	}
	h.entries = append([]string(nil), entries...)
	return nil
}

func (h *stubHistory) Clear(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clears++
	h.entries = nil
	return nil
}

func (h *stubHistory) saved() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}

// stubNav implements driven.Navigator, recording visited URLs.
type stubNav struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (n *stubNav) Navigate(_ context.Context, url string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.urls = append(n.urls, url)
	return n.err
}

func (n *stubNav) visited() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.urls...)
}

// recorder collects published states.
type recorder struct {
	mu     sync.Mutex
	states []domain.SearchState
}

func (r *recorder) notify(s domain.SearchState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) last() (domain.SearchState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.states) == 0 {
		return domain.SearchState{}, false
	}
	return r.states[len(r.states)-1], true
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

// testCatalog is a tiny catalog where "stress" matches nothing.
func testCatalog() []domain.SearchableItem {
	return []domain.SearchableItem{
		{
			Title:       "Hypnose Thérapeutique",
			Description: "Une approche douce",
			URL:         "/psychologie/hypnose",
			Category:    "Psychologie",
			Keywords:    []string{"hypnose", "relaxation"},
		},
		{
			Title:       "Contact",
			Description: "Prenez rendez-vous",
			URL:         "/contact",
			Category:    "Contact",
			Keywords:    []string{"rendez-vous"},
		},
	}
}

func remoteGroup(t *testing.T, state domain.SearchState) *domain.ResultGroup {
	t.Helper()
	for i := range state.Groups {
		if state.Groups[i].Category == domain.CategoryBlog {
			return &state.Groups[i]
		}
	}
	return nil
}

// --- Tests ---

func TestAggregatorEmptyQueryIsIdle(t *testing.T) {
	history := &stubHistory{entries: []string{"anxiété", "stress"}}
	agg := NewAggregator(NewStaticIndex(testCatalog()), &stubContent{}, history, nil)
	defer agg.Close()

	agg.SetQuery(context.Background(), "")

	state := agg.State()
	assert.True(t, state.Idle())
	assert.Empty(t, state.Groups)
	assert.False(t, state.NoResults)
	assert.False(t, state.Loading)
	assert.Equal(t, []string{"anxiété", "stress"}, state.Recent)
}

func TestAggregatorLocalResultsPublishedImmediately(t *testing.T) {
	// The remote gate stays shut: local results must be visible anyway.
	content := newGatedContent("hypnose")
	agg := NewAggregator(NewStaticIndex(testCatalog()), content, &stubHistory{}, nil)
	defer agg.Close()

	agg.SetQuery(context.Background(), "hypnose")

	state := agg.State()
	assert.True(t, state.Loading)
	require.NotEmpty(t, state.Groups)
	assert.Equal(t, "Psychologie", state.Groups[0].Category)
	assert.Equal(t, "/psychologie/hypnose", state.Groups[0].Results[0].URL)
}

func TestAggregatorRemoteOnlyResult(t *testing.T) {
	content := &stubContent{docs: []domain.RemoteDocument{
		{ID: "42", Title: "Gérer le stress", Excerpt: "Quelques pistes"},
	}}
	agg := NewAggregator(NewStaticIndex(testCatalog()), content, &stubHistory{}, nil)
	defer agg.Close()

	agg.SetQuery(context.Background(), "stress")

	require.Eventually(t, func() bool {
		return !agg.State().Loading
	}, time.Second, 5*time.Millisecond)

	state := agg.State()
	require.Len(t, state.Groups, 1)
	assert.Equal(t, domain.CategoryBlog, state.Groups[0].Category)
	require.Len(t, state.Groups[0].Results, 1)
	assert.Equal(t, "Gérer le stress", state.Groups[0].Results[0].Title)
	assert.Equal(t, "/blog/42", state.Groups[0].Results[0].URL)
	assert.False(t, state.NoResults)
}

func TestAggregatorSupersession(t *testing.T) {
	content := newGatedContent("abc", "abcd")
	rec := &recorder{}
	agg := NewAggregator(NewStaticIndex(testCatalog()), content, &stubHistory{}, nil)
	agg.Notify(rec.notify)
	defer agg.Close()

	ctx := context.Background()
	agg.SetQuery(ctx, "abc")
	agg.SetQuery(ctx, "abcd")

	// The newer request resolves first and is published.
	content.release("abcd", []domain.RemoteDocument{{ID: "2", Title: "Nouveau"}})
	require.Eventually(t, func() bool {
		g := remoteGroup(t, agg.State())
		return g != nil && g.Results[0].Title == "Nouveau"
	}, time.Second, 5*time.Millisecond)

	// The stale request resolves afterwards and must be discarded.
	content.release("abc", []domain.RemoteDocument{{ID: "1", Title: "Périmé"}})
	time.Sleep(50 * time.Millisecond)

	state := agg.State()
	assert.Equal(t, "abcd", state.Query)
	g := remoteGroup(t, state)
	require.NotNil(t, g)
	require.Len(t, g.Results, 1)
	assert.Equal(t, "Nouveau", g.Results[0].Title)

	// No publication ever carried the stale document.
	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, s := range rec.states {
		for _, grp := range s.Groups {
			for _, r := range grp.Results {
				assert.NotEqual(t, "Périmé", r.Title)
			}
		}
	}
}

func TestAggregatorRemoteFailureKeepsLocalResults(t *testing.T) {
	content := &stubContent{err: errors.New("boom")}
	agg := NewAggregator(NewStaticIndex(testCatalog()), content, &stubHistory{}, nil)
	defer agg.Close()

	agg.SetQuery(context.Background(), "hypnose")

	require.Eventually(t, func() bool {
		return !agg.State().Loading
	}, time.Second, 5*time.Millisecond)

	state := agg.State()
	require.NotEmpty(t, state.Groups)
	assert.Equal(t, "/psychologie/hypnose", state.Groups[0].Results[0].URL)
	assert.Nil(t, remoteGroup(t, state))
	assert.False(t, state.NoResults)
}

func TestAggregatorNoResultsState(t *testing.T) {
	content := &stubContent{}
	agg := NewAggregator(NewStaticIndex(testCatalog()), content, &stubHistory{}, nil)
	defer agg.Close()

	agg.SetQuery(context.Background(), "xqwzyv")

	require.Eventually(t, func() bool {
		return !agg.State().Loading
	}, time.Second, 5*time.Millisecond)

	state := agg.State()
	assert.True(t, state.NoResults)
	assert.False(t, state.Idle())
	assert.Empty(t, state.Groups)
}

func TestAggregatorSelectRecordsNavigatesAndClears(t *testing.T) {
	history := &stubHistory{entries: []string{"anxiété", "stress"}}
	nav := &stubNav{}
	agg := NewAggregator(NewStaticIndex(testCatalog()), &stubContent{}, history, nav)
	defer agg.Close()

	ctx := context.Background()
	agg.SetQuery(ctx, "trauma")
	result := domain.SearchResult{Title: "RITMO®", URL: "/psychologie/ritmo", Category: "Psychologie"}

	require.NoError(t, agg.Select(ctx, result))

	// The query that produced the click is recorded, most recent first.
	assert.Equal(t, []string{"trauma", "anxiété", "stress"}, agg.Recent())
	assert.Equal(t, []string{"trauma", "anxiété", "stress"}, history.saved())

	// Navigation happened and the query was cleared.
	assert.Equal(t, []string{"/psychologie/ritmo"}, nav.visited())
	assert.True(t, agg.State().Idle())

	// Re-selecting with a logged query moves it to the front.
	agg.SetQuery(ctx, "anxiété")
	require.NoError(t, agg.Select(ctx, result))
	assert.Equal(t, []string{"anxiété", "trauma", "stress"}, agg.Recent())
}

func TestAggregatorSelectSurvivesSaveFailure(t *testing.T) {
	history := &stubHistory{saveErr: errors.New("disk full")}
	agg := NewAggregator(NewStaticIndex(testCatalog()), &stubContent{}, history, &stubNav{})
	defer agg.Close()

	ctx := context.Background()
	agg.SetQuery(ctx, "trauma")
	require.NoError(t, agg.Select(ctx, domain.SearchResult{URL: "/contact"}))

	// The in-memory log still advanced.
	assert.Equal(t, []string{"trauma"}, agg.Recent())
}

func TestAggregatorSelectReturnsNavigationError(t *testing.T) {
	nav := &stubNav{err: errors.New("no browser")}
	agg := NewAggregator(NewStaticIndex(testCatalog()), &stubContent{}, &stubHistory{}, nav)
	defer agg.Close()

	ctx := context.Background()
	agg.SetQuery(ctx, "contact")
	err := agg.Select(ctx, domain.SearchResult{URL: "/contact"})

	assert.Error(t, err)
	// The log entry is kept and the query cleared regardless.
	assert.Equal(t, []string{"contact"}, agg.Recent())
	assert.True(t, agg.State().Idle())
}

func TestAggregatorSelectRecentRequeries(t *testing.T) {
	agg := NewAggregator(NewStaticIndex(testCatalog()), &stubContent{}, &stubHistory{}, nil)
	defer agg.Close()

	agg.SelectRecent(context.Background(), "hypnose")

	state := agg.State()
	assert.Equal(t, "hypnose", state.Query)
	assert.NotEmpty(t, state.Groups)
}

func TestAggregatorClearRecent(t *testing.T) {
	history := &stubHistory{entries: []string{"a", "b"}}
	agg := NewAggregator(NewStaticIndex(testCatalog()), &stubContent{}, history, nil)
	defer agg.Close()

	require.NoError(t, agg.ClearRecent(context.Background()))

	assert.Empty(t, agg.Recent())
	assert.Equal(t, 1, history.clears)
}

func TestAggregatorCorruptHistoryDegradesToEmpty(t *testing.T) {
	history := &stubHistory{loadErr: errors.New("corrupt")}
	agg := NewAggregator(NewStaticIndex(testCatalog()), &stubContent{}, history, nil)
	defer agg.Close()

	assert.Empty(t, agg.Recent())
}

func TestAggregatorCloseStopsPublishing(t *testing.T) {
	content := newGatedContent("hypnose")
	rec := &recorder{}
	agg := NewAggregator(NewStaticIndex(testCatalog()), content, &stubHistory{}, nil)
	agg.Notify(rec.notify)

	agg.SetQuery(context.Background(), "hypnose")
	published := rec.count()

	agg.Close()
	content.release("hypnose", []domain.RemoteDocument{{ID: "1", Title: "Tard"}})
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, published, rec.count())
	agg.SetQuery(context.Background(), "contact")
	assert.Equal(t, published, rec.count())
}

func TestAggregatorSeqMonotonic(t *testing.T) {
	rec := &recorder{}
	agg := NewAggregator(NewStaticIndex(testCatalog()), &stubContent{}, &stubHistory{}, nil)
	agg.Notify(rec.notify)
	defer agg.Close()

	ctx := context.Background()
	agg.SetQuery(ctx, "hypnose")
	agg.SetQuery(ctx, "contact")
	agg.SetQuery(ctx, "")

	require.Eventually(t, func() bool { return rec.count() >= 3 }, time.Second, 5*time.Millisecond)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	for i := 1; i < len(rec.states); i++ {
		assert.Greater(t, rec.states[i].Seq, rec.states[i-1].Seq)
	}
}

func TestAggregatorNilContentSearcher(t *testing.T) {
	agg := NewAggregator(NewStaticIndex(testCatalog()), nil, &stubHistory{}, nil)
	defer agg.Close()

	agg.SetQuery(context.Background(), "hypnose")

	state := agg.State()
	assert.False(t, state.Loading)
	assert.NotEmpty(t, state.Groups)
}

func TestAggregatorOneShotSearch(t *testing.T) {
	content := &stubContent{docs: []domain.RemoteDocument{
		{ID: "7", Title: "Hypnose et sommeil", Excerpt: "..."},
	}}
	agg := NewAggregator(NewStaticIndex(testCatalog()), content, &stubHistory{}, nil)
	defer agg.Close()

	groups, err := agg.Search(context.Background(), "hypnose")

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Psychologie", groups[0].Category)
	assert.Equal(t, domain.CategoryBlog, groups[1].Category)

	// One-shot search leaves the incremental state and log untouched.
	assert.True(t, agg.State().Idle())
	assert.Empty(t, agg.Recent())
}
