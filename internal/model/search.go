package model

// FacetCounts holds per-dimension value counts over a result subset. The
// bucket maps are emitted with every fixed bucket key present (zero-filled);
// property_type and bedrooms carry only observed values, so callers must not
// assume any particular key exists.
type FacetCounts struct {
	PropertyType     map[string]int `json:"property_type"`
	Bedrooms         map[string]int `json:"bedrooms"`
	PriceRanges      map[string]int `json:"price_ranges"`
	SquareFeetRanges map[string]int `json:"square_feet_ranges"`
}

// SearchResponse represents a search result page with its facet context.
type SearchResponse struct {
	SearchID         string           `json:"search_id"`
	Results          []Property       `json:"results"`
	Total            int              `json:"total"`
	Page             int              `json:"page"`
	PerPage          int              `json:"per_page"`
	TotalPages       int              `json:"total_pages"`
	HasMore          bool             `json:"has_more"`
	Facets           FacetCounts      `json:"facets"`
	InterpretedQuery *QueryParameters `json:"interpreted_query,omitempty"`
	Took             int64            `json:"took_ms"`
}

// InterpretSource identifies which interpretation path produced a result.
type InterpretSource string

const (
	SourceRules    InterpretSource = "rules"    // deterministic rule layer
	SourceModel    InterpretSource = "model"    // language-model path
	SourceFallback InterpretSource = "fallback" // model failed, rules substituted
)

// InterpretResponse represents the standalone interpretation endpoint output.
type InterpretResponse struct {
	Q          string          `json:"q"`
	Parameters QueryParameters `json:"parameters"`
	Source     InterpretSource `json:"source"`
}
