package domain

import "time"

// RemoteDocument is a blog post returned by the remote content store.
// Documents are fetched per query and not cached beyond it.
type RemoteDocument struct {
	// ID is the unique identifier of the post.
	ID string `json:"id"`

	// Title is the post title.
	Title string `json:"title"`

	// Excerpt is the short summary shown in result lists.
	Excerpt string `json:"excerpt"`

	// CreatedAt is the publication timestamp. The content store orders
	// results newest-first by this field.
	CreatedAt time.Time `json:"created_at"`
}

// Result projects the document into the unified result shape under the
// blog sentinel category. The route mirrors the site's /blog/:id pages.
func (d RemoteDocument) Result() SearchResult {
	return SearchResult{
		Title:       d.Title,
		Description: d.Excerpt,
		URL:         "/blog/" + d.ID,
		Category:    CategoryBlog,
	}
}
