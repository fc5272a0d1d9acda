package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
	"github.com/martalonghi/aura-wellness-engine/internal/core/services"
)

type AssistantHandler struct {
	svc *services.AssistantService
}

func NewAssistantHandler(svc *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{
		svc: svc,
	}
}

type chatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

type chatRequest struct {
	Messages []chatMessage `json:"messages" binding:"required,min=1,dive"`
}

func (h *AssistantHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/assistant/chat", h.Chat)
}

// Chat forwards the conversation to the planning assistant. Upstream failures
// surface as a normal 200 with the fallback reply, never as an error status.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	history := make([]domain.AssistantMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		history = append(history, domain.AssistantMessage{Role: m.Role, Content: m.Content})
	}

	reply, err := h.svc.Chat(c.Request.Context(), history)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyConversation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversation cannot be empty"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
