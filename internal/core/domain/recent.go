package domain

// MaxRecentQueries bounds the recent-query log.
const MaxRecentQueries = 5

// RecentQueries is a bounded, most-recent-first log of submitted queries.
// Entries are unique by exact string equality: re-adding an existing entry
// moves it to the front rather than duplicating it.
//
// RecentQueries is not safe for concurrent use; callers serialise access.
type RecentQueries struct {
	entries []string
}

// NewRecentQueries builds a log from persisted entries, dropping empty
// strings and duplicates and truncating to capacity. Invalid persisted
// data therefore degrades to a smaller valid log rather than an error.
func NewRecentQueries(entries []string) *RecentQueries {
	r := &RecentQueries{}
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e == "" {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		r.entries = append(r.entries, e)
		if len(r.entries) == MaxRecentQueries {
			break
		}
	}
	return r
}

// Add front-inserts term, removing any existing occurrence first and
// truncating to capacity. Empty terms are ignored.
func (r *RecentQueries) Add(term string) {
	if term == "" {
		return
	}

	updated := make([]string, 0, MaxRecentQueries)
	updated = append(updated, term)
	for _, e := range r.entries {
		if e == term {
			continue
		}
		updated = append(updated, e)
		if len(updated) == MaxRecentQueries {
			break
		}
	}
	r.entries = updated
}

// Entries returns a copy of the log, most recent first.
func (r *RecentQueries) Entries() []string {
	out := make([]string, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of logged queries.
func (r *RecentQueries) Len() int {
	return len(r.entries)
}

// Clear empties the log.
func (r *RecentQueries) Clear() {
	r.entries = nil
}
