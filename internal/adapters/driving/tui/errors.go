// Package tui implements the interactive search palette on top of
// Bubbletea, following the Elm architecture.
package tui

import "errors"

// ErrNoAggregator is returned when the aggregator port is not provided.
var ErrNoAggregator = errors.New("tui: aggregator is required")
