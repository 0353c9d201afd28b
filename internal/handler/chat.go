package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/service"
)

// ChatHandler handles chat HTTP requests
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Chat handles POST /api/v1/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.chatService.Chat(c.Request.Context(), &req))
}
