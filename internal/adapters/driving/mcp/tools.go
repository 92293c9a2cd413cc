package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
)

// SearchInput is the input schema for the site_search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query, matched against site pages and blog posts"`
}

// SearchOutput is the output schema for the site_search tool.
type SearchOutput struct {
	Groups []GroupOutput `json:"groups"`
	Count  int           `json:"count"`
}

// GroupOutput is one category of results.
type GroupOutput struct {
	Category string         `json:"category"`
	Results  []ResultOutput `json:"results"`
}

// ResultOutput represents a single search result.
type ResultOutput struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	URL         string  `json:"url"`
	Score       float64 `json:"score,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "site_search",
		Description: "Search the practice site's pages and blog posts, grouped by category",
	}, s.handleSiteSearch)
}

// handleSiteSearch handles the site_search tool invocation.
func (s *Server) handleSiteSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	groups, err := s.ports.Aggregator.Search(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Groups: make([]GroupOutput, len(groups)),
		Count:  domain.CountResults(groups),
	}

	for i, g := range groups {
		out := GroupOutput{
			Category: g.Category,
			Results:  make([]ResultOutput, len(g.Results)),
		}
		for j, r := range g.Results {
			out.Results[j] = ResultOutput{
				Title:       r.Title,
				Description: r.Description,
				URL:         r.URL,
				Score:       r.Score,
			}
		}
		output.Groups[i] = out
	}

	return nil, output, nil
}
