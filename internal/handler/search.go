package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/service"
)

// SearchHandler handles search-related HTTP requests
type SearchHandler struct {
	searchService *service.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search handles GET /api/v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	params := parseSearchParams(c)
	c.JSON(http.StatusOK, h.searchService.Search(params))
}

// Facets handles GET /api/v1/facets
func (h *SearchHandler) Facets(c *gin.Context) {
	c.JSON(http.StatusOK, h.searchService.CatalogFacets())
}

// parseSearchParams reads the query string tolerantly: malformed values are
// treated as absent rather than rejected.
func parseSearchParams(c *gin.Context) *model.SearchParameters {
	params := &model.SearchParameters{
		Q: c.Query("q"),
		QueryParameters: model.QueryParameters{
			Title:       c.Query("title"),
			Description: c.Query("description"),
			MinPrice:    intQueryPtr(c, "min_price"),
			MaxPrice:    intQueryPtr(c, "max_price"),
			MinSqft:     intQueryPtr(c, "min_sqft"),
			MaxSqft:     intQueryPtr(c, "max_sqft"),
			Sort:        model.Sort(c.Query("sort")),
		},
		Page:    intQuery(c, "page"),
		PerPage: intQuery(c, "per_page"),
	}
	for _, s := range splitCSV(c.Query("property_type")) {
		params.PropertyType = append(params.PropertyType, model.PropertyType(s))
	}
	params.Bedrooms = splitCSV(c.Query("bedrooms"))
	return params
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// intQueryPtr reads an optional integer query value.
func intQueryPtr(c *gin.Context, key string) *int {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

// intQuery reads an integer query value, zero when absent or malformed.
func intQuery(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}
