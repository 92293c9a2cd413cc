package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for cherche resources.
const uriScheme = "cherche://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "catalog",
		Name:        "catalog",
		Description: "The static catalog of site pages the search index is built from",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "recent",
		Name:        "recent-searches",
		Description: "The recent search queries, most recent first",
		MIMEType:    "application/json",
	}, s.handleRecentResource)
}

// handleCatalogResource returns the static site catalog.
func (s *Server) handleCatalogResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type entry struct {
		Title       string `json:"title"`
		Description string `json:"description,omitempty"`
		URL         string `json:"url"`
		Category    string `json:"category"`
	}

	entries := make([]entry, len(s.ports.Catalog))
	for i, item := range s.ports.Catalog {
		entries[i] = entry{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			Category:    item.Category,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling catalog: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleRecentResource returns the recent-query log.
func (s *Server) handleRecentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	recent := s.ports.Aggregator.Recent()
	if recent == nil {
		recent = []string{}
	}

	data, err := json.MarshalIndent(recent, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling recent searches: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
