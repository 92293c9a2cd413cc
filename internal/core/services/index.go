package services

import (
	"sort"
	"strings"
	"unicode"

	"github.com/xrash/smetrics"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
)

// Field weights. A query hitting a controlled vocabulary term (keyword or
// synonym) ranks close to a title hit; incidental description matches rank
// lower, category matches lowest.
const (
	weightTitle       = 1.0
	weightKeywords    = 0.9
	weightSynonyms    = 0.9
	weightDescription = 0.8
	weightCategory    = 0.6
)

// similarityCutoff is the minimum per-token similarity for a field to
// count as matched. On the 0-1 similarity scale this corresponds to the
// 0.3 fuzziness tolerance the site's search dialog used.
const similarityCutoff = 0.7

// Jaro-Winkler parameters: standard boost threshold and prefix size.
const (
	jwBoostThreshold = 0.7
	jwPrefixSize     = 4
)

// indexedField is one weighted, pre-normalised field of a catalog item.
type indexedField struct {
	weight float64
	tokens []string
}

type indexedItem struct {
	item   domain.SearchableItem
	fields []indexedField
}

// StaticIndex is a fuzzy-searchable index over the fixed site catalog.
// It is built once and immutable afterwards, so it is shared by all
// queries without locking.
type StaticIndex struct {
	items []indexedItem
}

// NewStaticIndex builds the index from the catalog.
func NewStaticIndex(items []domain.SearchableItem) *StaticIndex {
	ix := &StaticIndex{items: make([]indexedItem, 0, len(items))}

	for _, item := range items {
		fields := []indexedField{
			{weight: weightTitle, tokens: fieldTokens(item.Title)},
			{weight: weightKeywords, tokens: fieldTokens(item.Keywords...)},
			{weight: weightSynonyms, tokens: fieldTokens(item.Synonyms...)},
			{weight: weightDescription, tokens: fieldTokens(item.Description)},
			{weight: weightCategory, tokens: fieldTokens(item.Category)},
		}
		ix.items = append(ix.items, indexedItem{item: item, fields: fields})
	}

	return ix
}

// Search returns catalog items matching the query, best-first by weighted
// relevance. Ties keep catalog order. An empty query yields no results;
// the caller substitutes the recent-queries view.
func (ix *StaticIndex) Search(query string) []domain.SearchResult {
	queryTokens := strings.Fields(normalise(query))
	if len(queryTokens) == 0 {
		return nil
	}

	var results []domain.SearchResult
	for _, it := range ix.items {
		score := 0.0
		for _, f := range it.fields {
			if s := fieldScore(queryTokens, f.tokens) * f.weight; s > score {
				score = s
			}
		}
		if score > 0 {
			results = append(results, it.item.Result(score))
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// fieldScore scores a field against the query tokens. Every query token
// must reach the similarity cutoff against some field token, otherwise
// the field does not match at all. Match position within the field is
// irrelevant: any token matches equally wherever it appears.
func fieldScore(queryTokens, fieldTokens []string) float64 {
	if len(fieldTokens) == 0 {
		return 0
	}

	total := 0.0
	for _, qt := range queryTokens {
		best := 0.0
		for _, ft := range fieldTokens {
			if s := tokenSimilarity(qt, ft); s > best {
				best = s
			}
		}
		if best < similarityCutoff {
			return 0
		}
		total += best
	}

	return total / float64(len(queryTokens))
}

// tokenSimilarity rates how well a query token matches a field token.
// A containment (partial word typed so far) counts as exact; otherwise
// Jaro-Winkler similarity covers misspellings.
func tokenSimilarity(queryToken, fieldToken string) float64 {
	if strings.Contains(fieldToken, queryToken) {
		return 1
	}
	return smetrics.JaroWinkler(queryToken, fieldToken, jwBoostThreshold, jwPrefixSize)
}

// fieldTokens normalises and tokenises one or more field values.
func fieldTokens(values ...string) []string {
	var tokens []string
	for _, v := range values {
		tokens = append(tokens, strings.Fields(normalise(v))...)
	}
	return tokens
}

// normalise lowercases, strips diacritics and replaces punctuation and
// symbols with spaces, so "RITMO®" and "anxiete" match "ritmo" and
// "anxiété".
func normalise(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}
