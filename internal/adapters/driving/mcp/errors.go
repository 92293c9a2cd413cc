// Package mcp provides an MCP (Model Context Protocol) server adapter
// for cherche. It lets AI assistants query the practice site's unified
// search from the same aggregator the palette uses.
package mcp

import "errors"

// ErrMissingAggregator is returned when the aggregator is not provided.
var ErrMissingAggregator = errors.New("mcp: aggregator is required")
