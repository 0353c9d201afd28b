package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/service"
)

// PropertyHandler handles single-property HTTP requests
type PropertyHandler struct {
	searchService *service.SearchService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(searchService *service.SearchService) *PropertyHandler {
	return &PropertyHandler{searchService: searchService}
}

// Get handles GET /api/v1/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	property, ok := h.searchService.GetProperty(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	c.JSON(http.StatusOK, property)
}
