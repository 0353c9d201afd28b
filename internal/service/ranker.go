package service

import (
	"sort"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
)

// Ranker orders match sets and slices result pages. Page size limits come
// from configuration.
type Ranker struct {
	defaultPerPage int
	maxPerPage     int
}

// NewRanker creates a ranker with the given page size bounds.
func NewRanker(defaultPerPage, maxPerPage int) *Ranker {
	if defaultPerPage <= 0 {
		defaultPerPage = 10
	}
	if maxPerPage <= 0 {
		maxPerPage = 100
	}
	return &Ranker{defaultPerPage: defaultPerPage, maxPerPage: maxPerPage}
}

// Rank returns matches in the requested order without modifying the input.
// Relevance keeps input order; ties under every ordering are stable.
func (r *Ranker) Rank(matches []model.Property, s model.Sort) []model.Property {
	sorted := make([]model.Property, len(matches))
	copy(sorted, matches)
	switch s {
	case model.SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
	case model.SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price > sorted[j].Price })
	case model.SortNewest:
		// listing dates are YYYY-MM-DD, so lexicographic order is date order
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ListingDate > sorted[j].ListingDate })
	}
	return sorted
}

// ClampPage normalizes a requested page number.
func (r *Ranker) ClampPage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// ClampPerPage normalizes a requested page size against configured bounds.
func (r *Ranker) ClampPerPage(perPage int) int {
	if perPage <= 0 {
		return r.defaultPerPage
	}
	if perPage > r.maxPerPage {
		return r.maxPerPage
	}
	return perPage
}

// Paginate slices one page out of sorted. Pages past the end return an
// empty slice, never an error.
func (r *Ranker) Paginate(sorted []model.Property, page, perPage int) []model.Property {
	page = r.ClampPage(page)
	perPage = r.ClampPerPage(perPage)

	start := (page - 1) * perPage
	if start >= len(sorted) {
		return []model.Property{}
	}
	end := start + perPage
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end]
}
