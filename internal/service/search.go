package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/repository"
)

// SearchService runs the search pipeline over the catalog.
type SearchService struct {
	catalog     *repository.Catalog
	interpreter *QueryInterpreter
	ranker      *Ranker
	logger      *zap.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(
	catalog *repository.Catalog,
	interpreter *QueryInterpreter,
	ranker *Ranker,
	logger *zap.Logger,
) *SearchService {
	return &SearchService{
		catalog:     catalog,
		interpreter: interpreter,
		ranker:      ranker,
		logger:      logger,
	}
}

// Search performs a complete search: interpret the free-text query, merge
// with explicit filters, filter the catalog, compute sticky facets, then
// rank and paginate. The free-text path uses the rule layer only, so the
// search response never waits on the model.
func (s *SearchService) Search(params *model.SearchParameters) *model.SearchResponse {
	startTime := time.Now()

	normalizeParams(params)

	var interpreted *model.QueryParameters
	if strings.TrimSpace(params.Q) != "" {
		qp := s.interpreter.Interpret(params.Q)
		mergeInterpreted(params, &qp)
		interpreted = &qp
	}

	matches := Filter(s.catalog.All(), params)
	facets := s.stickyFacets(matches, params)

	page := s.ranker.ClampPage(params.Page)
	perPage := s.ranker.ClampPerPage(params.PerPage)
	sorted := s.ranker.Rank(matches, params.Sort)
	results := s.ranker.Paginate(sorted, page, perPage)

	total := len(matches)
	totalPages := 0
	if total > 0 {
		totalPages = (total + perPage - 1) / perPage
	}

	resp := &model.SearchResponse{
		SearchID:         uuid.NewString(),
		Results:          results,
		Total:            total,
		Page:             page,
		PerPage:          perPage,
		TotalPages:       totalPages,
		HasMore:          page*perPage < total,
		Facets:           facets,
		InterpretedQuery: interpreted,
		Took:             time.Since(startTime).Milliseconds(),
	}

	s.logger.Info("search executed",
		zap.String("search_id", resp.SearchID),
		zap.String("query", params.Q),
		zap.Int("total", total),
		zap.Int("page", page),
		zap.Int64("took_ms", resp.Took),
	)
	return resp
}

// GetProperty retrieves a single property by ID.
func (s *SearchService) GetProperty(id string) (model.Property, bool) {
	return s.catalog.GetByID(id)
}

// CatalogFacets aggregates facet counts over the full catalog.
func (s *SearchService) CatalogFacets() model.FacetCounts {
	return Aggregate(s.catalog.All())
}

// LogFeedback records a user interaction with a search result. Events are
// log-only; the id lets downstream log consumers dedupe retries.
func (s *SearchService) LogFeedback(req *model.FeedbackRequest) {
	s.logger.Info("feedback received",
		zap.String("event_id", uuid.NewString()),
		zap.String("search_id", req.SearchID),
		zap.String("property_id", req.PropertyID),
		zap.String("action", req.Action),
	)
}

// normalizeParams drops malformed field values in place: unknown enum
// members and negative bounds are ignored rather than rejected.
func normalizeParams(params *model.SearchParameters) {
	params.Title = strings.TrimSpace(params.Title)
	params.Description = strings.TrimSpace(params.Description)

	if len(params.PropertyType) > 0 {
		kept := make([]model.PropertyType, 0, len(params.PropertyType))
		for _, t := range params.PropertyType {
			if pt, ok := model.ParsePropertyType(string(t)); ok {
				kept = append(kept, pt)
			}
		}
		params.PropertyType = kept
	}
	if len(params.Bedrooms) > 0 {
		kept := make([]string, 0, len(params.Bedrooms))
		for _, b := range params.Bedrooms {
			b = strings.TrimSpace(b)
			if len(b) == 1 && b[0] >= '0' && b[0] <= '5' {
				kept = append(kept, b)
			}
		}
		params.Bedrooms = kept
	}

	params.MinPrice = dropNegative(params.MinPrice)
	params.MaxPrice = dropNegative(params.MaxPrice)
	params.MinSqft = dropNegative(params.MinSqft)
	params.MaxSqft = dropNegative(params.MaxSqft)

	if params.Sort != "" {
		params.Sort = model.ParseSort(string(params.Sort))
	}
}

func dropNegative(v *int) *int {
	if v != nil && *v < 0 {
		return nil
	}
	return v
}

// mergeInterpreted applies the interpreted query over the explicit filters.
// Structured fields from the query win over conflicting explicit ones, the
// residual text replaces any explicit title/description, and the
// interpreted sort (relevance when the query implied none) takes over.
func mergeInterpreted(params *model.SearchParameters, qp *model.QueryParameters) {
	if len(qp.PropertyType) > 0 {
		params.PropertyType = qp.PropertyType
	}
	if len(qp.Bedrooms) > 0 {
		params.Bedrooms = qp.Bedrooms
	}
	if qp.MinPrice != nil {
		params.MinPrice = qp.MinPrice
	}
	if qp.MaxPrice != nil {
		params.MaxPrice = qp.MaxPrice
	}
	if qp.MinSqft != nil {
		params.MinSqft = qp.MinSqft
	}
	if qp.MaxSqft != nil {
		params.MaxSqft = qp.MaxSqft
	}
	params.Title = qp.Title
	params.Description = qp.Description
	if qp.Sort != "" {
		params.Sort = qp.Sort
	}
}

// stickyFacets computes the facet block for a filtered search. A dimension
// with an active filter is counted over the subset matching every OTHER
// dimension, so sibling options under the selected one stay visible;
// dimensions without an active filter count the fully filtered subset.
func (s *SearchService) stickyFacets(matches []model.Property, params *model.SearchParameters) model.FacetCounts {
	facets := Aggregate(matches)

	if len(params.PropertyType) > 0 {
		relaxed := *params
		relaxed.PropertyType = nil
		facets.PropertyType = Aggregate(Filter(s.catalog.All(), &relaxed)).PropertyType
	}
	if len(params.Bedrooms) > 0 {
		relaxed := *params
		relaxed.Bedrooms = nil
		facets.Bedrooms = Aggregate(Filter(s.catalog.All(), &relaxed)).Bedrooms
	}
	if params.MinPrice != nil || params.MaxPrice != nil {
		relaxed := *params
		relaxed.MinPrice, relaxed.MaxPrice = nil, nil
		facets.PriceRanges = Aggregate(Filter(s.catalog.All(), &relaxed)).PriceRanges
	}
	if params.MinSqft != nil || params.MaxSqft != nil {
		relaxed := *params
		relaxed.MinSqft, relaxed.MaxSqft = nil, nil
		facets.SquareFeetRanges = Aggregate(Filter(s.catalog.All(), &relaxed)).SquareFeetRanges
	}
	return facets
}
