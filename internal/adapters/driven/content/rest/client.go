// Package rest implements the remote content search against a
// PostgREST-style endpoint serving the site's blog_posts table.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
	"github.com/cabinet-lcv/cherche-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.ContentSearcher = (*Client)(nil)

const (
	// defaultLimit caps how many posts one query returns.
	defaultLimit = 20

	// Requests per second against the content API, with a small burst
	// so fast typing does not immediately queue.
	requestsPerSecond = 5
	requestBurst      = 10
)

// Client queries published blog posts over HTTP. Searches run a
// case-insensitive substring match across title, excerpt and body,
// newest posts first.
type Client struct {
	endpoint string
	apiKey   string
	limit    int
	http     *http.Client
	limiter  *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLimit overrides how many posts a single query may return.
func WithLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.limit = n
		}
	}
}

// NewClient creates a content search client for the given endpoint,
// e.g. "https://example.supabase.co/rest/v1". The API key may be empty
// for unauthenticated endpoints.
func NewClient(endpoint, apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		limit:    defaultLimit,
		http:     &http.Client{Timeout: 10 * time.Second},
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// wirePost is the JSON shape returned by the endpoint.
type wirePost struct {
	ID        wireID    `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	CreatedAt time.Time `json:"created_at"`
}

// wireID accepts both numeric and string post identifiers.
type wireID string

func (w *wireID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		s = ""
	}
	*w = wireID(s)
	return nil
}

// Search queries the blog_posts table for posts whose title, excerpt or
// content contains the term, newest first.
func (c *Client) Search(ctx context.Context, term string) ([]domain.RemoteDocument, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(term), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying content API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("content API returned %d: %s: %w",
			resp.StatusCode, strings.TrimSpace(string(body)), domain.ErrContentUnavailable)
	}

	var posts []wirePost
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, fmt.Errorf("decoding content API response: %w", err)
	}

	docs := make([]domain.RemoteDocument, 0, len(posts))
	for _, p := range posts {
		docs = append(docs, domain.RemoteDocument{
			ID:        string(p.ID),
			Title:     p.Title,
			Excerpt:   p.Excerpt,
			CreatedAt: p.CreatedAt,
		})
	}

	return docs, nil
}

// searchURL builds the filtered, ordered, limited query URL.
func (c *Client) searchURL(term string) string {
	pattern := "*" + sanitiseTerm(term) + "*"

	params := url.Values{}
	params.Set("select", "id,title,excerpt,created_at")
	params.Set("or", fmt.Sprintf("(title.ilike.%s,excerpt.ilike.%s,content.ilike.%s)",
		pattern, pattern, pattern))
	params.Set("order", "created_at.desc")
	params.Set("limit", fmt.Sprintf("%d", c.limit))

	return c.endpoint + "/blog_posts?" + params.Encode()
}

// sanitiseTerm strips characters that are part of the filter grammar so
// a query cannot break out of its ilike pattern.
func sanitiseTerm(term string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ',', '(', ')', '"', '\\', '*', '%':
			return -1
		}
		return r
	}, term)
}
