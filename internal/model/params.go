package model

// Sort enumerates the supported result orderings.
type Sort string

const (
	SortRelevance Sort = "relevance"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
	SortNewest    Sort = "newest"
)

// ParseSort maps a raw token to a Sort, defaulting to relevance for
// anything unrecognized.
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortPriceAsc, SortPriceDesc, SortNewest:
		return Sort(s)
	}
	return SortRelevance
}

// QueryParameters is the structured output of query interpretation: every
// field is absent unless the query inferred it. Title and Description carry
// only the residual text left after structured extraction, so both are
// empty when every token mapped to a structured field.
type QueryParameters struct {
	Title        string         `json:"title,omitempty"`
	Description  string         `json:"description,omitempty"`
	PropertyType []PropertyType `json:"property_type,omitempty"`
	Bedrooms     []string       `json:"bedrooms,omitempty"` // canonical "0".."5"
	MinPrice     *int           `json:"min_price,omitempty"`
	MaxPrice     *int           `json:"max_price,omitempty"`
	MinSqft      *int           `json:"min_sqft,omitempty"`
	MaxSqft      *int           `json:"max_sqft,omitempty"`
	Sort         Sort           `json:"sort,omitempty"`
}

// IsZero reports whether interpretation produced nothing at all. The default
// relevance sort counts as nothing: it is emitted for every non-empty query.
func (q *QueryParameters) IsZero() bool {
	return q.Title == "" && q.Description == "" && !q.HasStructured()
}

// HasStructured reports whether any non-text field was inferred.
func (q *QueryParameters) HasStructured() bool {
	return len(q.PropertyType) > 0 || len(q.Bedrooms) > 0 ||
		q.MinPrice != nil || q.MaxPrice != nil ||
		q.MinSqft != nil || q.MaxSqft != nil ||
		(q.Sort != "" && q.Sort != SortRelevance)
}

// SearchParameters represents one search request: the verbatim query (if
// any), the structured filters, and pagination. Q always preserves the
// user's exact input.
type SearchParameters struct {
	Q string `json:"q,omitempty"`
	QueryParameters
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}
