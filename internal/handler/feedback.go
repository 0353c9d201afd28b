package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/service"
)

// FeedbackHandler handles feedback-related HTTP requests
type FeedbackHandler struct {
	searchService *service.SearchService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(searchService *service.SearchService) *FeedbackHandler {
	return &FeedbackHandler{searchService: searchService}
}

// Submit handles POST /api/v1/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req model.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	validActions := map[string]bool{
		model.FeedbackActionClick:       true,
		model.FeedbackActionContact:     true,
		model.FeedbackActionViewDetails: true,
	}
	if !validActions[req.Action] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action. Must be one of: click, contact, view_details"})
		return
	}

	h.searchService.LogFeedback(&req)
	c.Status(http.StatusNoContent)
}
