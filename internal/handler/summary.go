package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/service"
)

// SummaryHandler handles result summary HTTP requests
type SummaryHandler struct {
	summaryService *service.SummaryService
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// Summarize handles POST /api/v1/summary
func (h *SummaryHandler) Summarize(c *gin.Context) {
	var req model.SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.summaryService.Summarize(c.Request.Context(), &req))
}
