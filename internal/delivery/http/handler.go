package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/florabot/backend/internal/domain"
	"github.com/florabot/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	chatService *usecase.ChatService
}

// NewHandler creates a new HTTP handler.
func NewHandler(chatService *usecase.ChatService) *Handler {
	return &Handler{chatService: chatService}
}

// ChatRequest is the REST chat payload.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// HealthCheck returns the health status of the API.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "florabot-backend",
		"version": "1.0.0",
	})
}

// Chat runs one message through the pipeline and returns the reply.
// Pipeline outcomes (no match, ambiguity, stale catalog) are all
// regular 200 replies; only a malformed request is a client error.
func (h *Handler) Chat(c *gin.Context) {
	if h.chatService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat service not configured"})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  domain.ErrInvalidRequest.Error(),
			"detail": "message is required",
		})
		return
	}

	reply := h.chatService.HandleMessage(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, reply)
}
