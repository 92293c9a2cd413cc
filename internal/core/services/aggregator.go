package services

import (
	"context"
	"sync"
	"time"

	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
	"github.com/cabinet-lcv/cherche-cli/internal/core/ports/driven"
	"github.com/cabinet-lcv/cherche-cli/internal/core/ports/driving"
	"github.com/cabinet-lcv/cherche-cli/internal/logger"
)

// Ensure Aggregator implements the driving port.
var _ driving.Aggregator = (*Aggregator)(nil)

// DefaultRemoteTimeout bounds a single remote content query. A timeout
// is handled exactly like any other remote failure.
const DefaultRemoteTimeout = 5 * time.Second

// Aggregator merges synchronous catalog matches with an asynchronous
// remote substring search under a single query string.
//
// Supersession: every query change bumps a generation counter and tags
// the remote request it issues. A remote resolution is published only if
// its generation still matches, so a slow response to an earlier
// keystroke can never overwrite results of a later one.
type Aggregator struct {
	content driven.ContentSearcher
	history driven.HistoryStore
	nav     driven.Navigator
	timeout time.Duration

	mu      sync.Mutex
	notify  func(domain.SearchState)
	index   *StaticIndex
	gen     uint64
	seq     uint64
	query   string
	local   []domain.SearchResult
	remote  []domain.SearchResult
	loading bool
	recent  *domain.RecentQueries
	cancel  context.CancelFunc
	closed  bool
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithRemoteTimeout overrides the remote query timeout.
func WithRemoteTimeout(d time.Duration) AggregatorOption {
	return func(a *Aggregator) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// NewAggregator creates an aggregator over the given index and driven
// ports. The content searcher and navigator may be nil; searches then
// degrade to local-only results and selection skips navigation. The
// persisted recent-query log is loaded immediately; a failed load
// degrades to an empty log.
func NewAggregator(
	index *StaticIndex,
	content driven.ContentSearcher,
	history driven.HistoryStore,
	nav driven.Navigator,
	opts ...AggregatorOption,
) *Aggregator {
	a := &Aggregator{
		content: content,
		history: history,
		nav:     nav,
		timeout: DefaultRemoteTimeout,
		index:   index,
		recent:  domain.NewRecentQueries(nil),
	}

	for _, opt := range opts {
		opt(a)
	}

	if history != nil {
		entries, err := history.Load(context.Background())
		if err != nil {
			logger.Warn("loading recent searches: %v", err)
		} else {
			a.recent = domain.NewRecentQueries(entries)
		}
	}

	return a
}

// Notify registers the publication callback. Publications triggered by
// remote resolutions run on a background goroutine; consumers that care
// about ordering compare SearchState.Seq.
func (a *Aggregator) Notify(fn func(domain.SearchState)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.notify = fn
}

// SetQuery reacts to a query string change.
func (a *Aggregator) SetQuery(ctx context.Context, query string) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}

	a.gen++
	gen := a.gen
	a.query = query

	// Any previously issued request is superseded; cancel it so the
	// transport can stop early. Its resolution would be dropped by the
	// generation check regardless.
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}

	if query == "" {
		a.local = nil
		a.remote = nil
		a.loading = false
		publish := a.publishLocked()
		a.mu.Unlock()
		publish()
		return
	}

	logger.Debug("query %q (gen %d)", query, gen)
	a.local = a.index.Search(query)
	a.remote = nil

	if a.content == nil {
		a.loading = false
		publish := a.publishLocked()
		a.mu.Unlock()
		publish()
		return
	}

	a.loading = true
	remoteCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	publish := a.publishLocked()
	a.mu.Unlock()
	publish()

	go a.searchRemote(remoteCtx, query, gen)
}

// searchRemote resolves the remote portion of a query. The generation
// check at publish time implements logical cancellation: stale
// resolutions are silently dropped.
func (a *Aggregator) searchRemote(ctx context.Context, query string, gen uint64) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	docs, err := a.content.Search(ctx, query)

	a.mu.Lock()
	if a.closed || gen != a.gen {
		a.mu.Unlock()
		logger.Debug("dropping stale remote response for %q (gen %d)", query, gen)
		return
	}

	a.loading = false
	if err != nil {
		logger.Error("remote search %q: %v", query, err)
		a.remote = nil
	} else {
		a.remote = documentResults(docs)
	}
	publish := a.publishLocked()
	a.mu.Unlock()
	publish()
}

// State returns the current published state.
func (a *Aggregator) State() domain.SearchState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stateLocked()
}

// Search runs a one-shot combined search for CLI and MCP callers. It
// does not touch the incremental state or the recent-query log.
func (a *Aggregator) Search(ctx context.Context, query string) ([]domain.ResultGroup, error) {
	if query == "" {
		return nil, nil
	}

	a.mu.Lock()
	index := a.index
	a.mu.Unlock()

	combined := index.Search(query)

	if a.content != nil {
		remoteCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()

		docs, err := a.content.Search(remoteCtx, query)
		if err != nil {
			logger.Error("remote search %q: %v", query, err)
		} else {
			combined = append(combined, documentResults(docs)...)
		}
	}

	return domain.GroupByCategory(combined), nil
}

// Select records the originating query, navigates to the result and
// clears the query. Navigation failure is reported but does not undo
// the log entry.
func (a *Aggregator) Select(ctx context.Context, result domain.SearchResult) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return domain.ErrClosed
	}
	term := a.query
	a.mu.Unlock()

	if term != "" {
		a.record(ctx, term)
	}

	var navErr error
	if a.nav != nil {
		navErr = a.nav.Navigate(ctx, result.URL)
		if navErr != nil {
			logger.Error("navigate %s: %v", result.URL, navErr)
		}
	}

	a.SetQuery(ctx, "")
	return navErr
}

// SelectRecent re-enters the querying state with a logged entry.
func (a *Aggregator) SelectRecent(ctx context.Context, term string) {
	a.SetQuery(ctx, term)
}

// Recent returns the recent-query log, most recent first.
func (a *Aggregator) Recent() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.recent.Entries()
}

// ClearRecent empties the log and its durable storage entry.
func (a *Aggregator) ClearRecent(ctx context.Context) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return domain.ErrClosed
	}
	a.recent.Clear()
	publish := a.publishLocked()
	a.mu.Unlock()
	publish()

	if a.history == nil {
		return nil
	}
	if err := a.history.Clear(ctx); err != nil {
		logger.Error("clearing recent searches: %v", err)
		return err
	}
	return nil
}

// ReplaceIndex swaps in a rebuilt catalog index (catalog file changed).
// An active query is re-matched against the new index; the in-flight
// remote request is unaffected.
func (a *Aggregator) ReplaceIndex(index *StaticIndex) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}

	a.index = index
	if a.query == "" {
		a.mu.Unlock()
		return
	}

	a.local = index.Search(a.query)
	publish := a.publishLocked()
	a.mu.Unlock()
	publish()
}

// Close stops all further publications.
func (a *Aggregator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

// record persists the recent log before the matching in-memory state is
// published, keeping the durable and in-memory copies aligned. A failed
// write is logged; search keeps working on the in-memory log.
func (a *Aggregator) record(ctx context.Context, term string) {
	a.mu.Lock()
	a.recent.Add(term)
	entries := a.recent.Entries()
	a.mu.Unlock()

	if a.history == nil {
		return
	}
	if err := a.history.Save(ctx, entries); err != nil {
		logger.Error("saving recent searches: %v", err)
	}
}

// stateLocked builds the current state. Caller holds the lock.
func (a *Aggregator) stateLocked() domain.SearchState {
	combined := make([]domain.SearchResult, 0, len(a.local)+len(a.remote))
	combined = append(combined, a.local...)
	combined = append(combined, a.remote...)

	return domain.SearchState{
		Seq:       a.seq,
		Query:     a.query,
		Groups:    domain.GroupByCategory(combined),
		Loading:   a.loading,
		NoResults: a.query != "" && !a.loading && len(combined) == 0,
		Recent:    a.recent.Entries(),
	}
}

// publishLocked bumps the publication sequence and captures the state
// and callback. Caller holds the lock, releases it, then invokes the
// returned function so the callback never runs under the lock.
func (a *Aggregator) publishLocked() func() {
	a.seq++
	state := a.stateLocked()
	fn := a.notify

	return func() {
		if fn != nil {
			fn(state)
		}
	}
}

func documentResults(docs []domain.RemoteDocument) []domain.SearchResult {
	if len(docs) == 0 {
		return nil
	}
	results := make([]domain.SearchResult, len(docs))
	for i, d := range docs {
		results[i] = d.Result()
	}
	return results
}
