package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/martalonghi/aura-wellness-engine/internal/core/services"
)

type RingsHandler struct {
	svc *services.RingsService
}

func NewRingsHandler(svc *services.RingsService) *RingsHandler {
	return &RingsHandler{
		svc: svc,
	}
}

func (h *RingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	days := router.Group("/days/:date")
	{
		days.GET("/rings", h.Get)
		days.POST("/rings/refresh", h.Refresh)
	}
}

// Get returns the day's ring state: the stored snapshot when one exists, a
// fresh read-only computation otherwise.
func (h *RingsHandler) Get(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}

	snapshot, err := h.svc.Snapshot(c.Request.Context(), day)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// Refresh recomputes the day's rings, persists the snapshot, and dispatches a
// notification for every ring that just closed.
func (h *RingsHandler) Refresh(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}

	snapshot, transitions, err := h.svc.Refresh(c.Request.Context(), day)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshot":    snapshot,
		"just_closed": transitions,
	})
}
