// Package messages defines the Bubbletea messages exchanged inside the
// TUI.
package messages

import (
	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
)

// StateUpdated carries a search state publication from the aggregator.
// Publications can arrive out of order relative to each other; consumers
// compare State.Seq and discard anything older than what they last
// rendered.
type StateUpdated struct {
	State domain.SearchState
}

// SelectionDone reports the outcome of opening a result in the browser.
type SelectionDone struct {
	Result domain.SearchResult
	Err    error
}

// RecentCleared reports the outcome of clearing the recent-query log.
type RecentCleared struct {
	Err error
}

// Quit requests application shutdown.
type Quit struct{}
