package domain

// CategoryBlog is the sentinel category grouping results fetched from the
// remote content store, as opposed to statically catalogued sections.
const CategoryBlog = "Articles du Blog"

// SearchResult is the unified projection used for display. It is produced
// by normalising either a catalog match or a remote document and is
// recomputed on every query.
type SearchResult struct {
	// Title is the display title.
	Title string `json:"title"`

	// Description is the summary line (catalog description or excerpt).
	Description string `json:"description"`

	// URL is the site-relative route to navigate to on selection.
	URL string `json:"url"`

	// Category is the group label. Either a catalog category or
	// CategoryBlog for remote documents.
	Category string `json:"category"`

	// Keywords are shown as tags under catalog results.
	Keywords []string `json:"keywords,omitempty"`

	// Score is the local relevance score. Zero for remote results,
	// which keep the store's newest-first order instead.
	Score float64 `json:"score,omitempty"`
}

// ResultGroup is a run of results sharing a category.
type ResultGroup struct {
	Category string         `json:"category"`
	Results  []SearchResult `json:"results"`
}

// GroupByCategory groups results by category, preserving first-seen
// category order and within-group order. There is no cross-category
// re-ranking: grouping is stable.
func GroupByCategory(results []SearchResult) []ResultGroup {
	var groups []ResultGroup
	index := make(map[string]int)

	for _, r := range results {
		i, ok := index[r.Category]
		if !ok {
			i = len(groups)
			index[r.Category] = i
			groups = append(groups, ResultGroup{Category: r.Category})
		}
		groups[i].Results = append(groups[i].Results, r)
	}

	return groups
}

// CountResults returns the total number of results across groups.
func CountResults(groups []ResultGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Results)
	}
	return n
}

// SearchState is the published view of the aggregator at one instant.
// Consumers render Groups when a query is active and Recent when idle.
type SearchState struct {
	// Seq increases with every publication. Consumers receiving states
	// asynchronously must discard any state with a Seq they have
	// already seen a successor of.
	Seq uint64

	// Query is the query string this state belongs to.
	Query string

	// Groups holds the merged, category-grouped results for Query.
	Groups []ResultGroup

	// Loading reports an unresolved remote request for Query.
	Loading bool

	// NoResults reports a settled non-empty query with no matches in
	// either source. Distinct from the idle (empty query) state.
	NoResults bool

	// Recent is the recent-query log, most recent first.
	Recent []string
}

// Idle reports whether the state represents the empty-query view.
func (s SearchState) Idle() bool {
	return s.Query == ""
}
