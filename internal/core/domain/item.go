package domain

// SearchableItem is a static catalog entry describing one section of the
// site. The catalog is loaded once at startup and never mutated.
type SearchableItem struct {
	// Title is the display title of the section.
	Title string `toml:"title"`

	// Description is a one-line summary shown under the title.
	Description string `toml:"description"`

	// URL is the site-relative route for the section. Unique per item.
	URL string `toml:"url"`

	// Category is the group label the item is displayed under.
	Category string `toml:"category"`

	// Keywords are controlled vocabulary terms for the section.
	Keywords []string `toml:"keywords,omitempty"`

	// Synonyms are alternative phrasings users may type.
	Synonyms []string `toml:"synonyms,omitempty"`
}

// Result projects the item into the unified result shape.
func (i SearchableItem) Result(score float64) SearchResult {
	return SearchResult{
		Title:       i.Title,
		Description: i.Description,
		URL:         i.URL,
		Category:    i.Category,
		Keywords:    i.Keywords,
		Score:       score,
	}
}
