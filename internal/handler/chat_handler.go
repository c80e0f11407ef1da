package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nomadtrail/nomad-backend-go/internal/service"
	"github.com/nomadtrail/nomad-backend-go/pkg/response"
)

// ChatHandler handles HTTP requests for the persona chat assistants
type ChatHandler struct {
	service *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(service *service.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

type chatAskRequest struct {
	Messages []service.ChatMessage `json:"messages" binding:"required"`
}

// Personas handles GET /api/v1/chat/personas
func (h *ChatHandler) Personas(c *gin.Context) {
	response.Success(c, service.Personas())
}

// Ask handles POST /api/v1/chat/:persona
func (h *ChatHandler) Ask(c *gin.Context) {
	var req chatAskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	reply, err := h.service.Ask(c.Request.Context(), c.Param("persona"), req.Messages)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChatDisabled):
			response.Error(c, http.StatusServiceUnavailable, "Chat assistant not configured", err)
		case strings.Contains(err.Error(), "unknown persona"):
			response.NotFound(c, "Unknown persona", err)
		case strings.Contains(err.Error(), "empty conversation"):
			response.BadRequest(c, "Conversation must contain at least one message", err)
		default:
			response.Error(c, http.StatusBadGateway, "Assistant request failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"persona": c.Param("persona"),
		"reply":   reply,
	})
}
