package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/service"
)

// InterpretHandler exposes query interpretation on its own endpoint.
type InterpretHandler struct {
	interpreter *service.QueryInterpreter
}

// NewInterpretHandler creates a new interpret handler
func NewInterpretHandler(interpreter *service.QueryInterpreter) *InterpretHandler {
	return &InterpretHandler{interpreter: interpreter}
}

// Interpret handles GET /api/v1/interpret
func (h *InterpretHandler) Interpret(c *gin.Context) {
	q := c.Query("q")
	params, source := h.interpreter.InterpretWithModel(c.Request.Context(), q)
	c.JSON(http.StatusOK, model.InterpretResponse{
		Q:          q,
		Parameters: params,
		Source:     source,
	})
}
