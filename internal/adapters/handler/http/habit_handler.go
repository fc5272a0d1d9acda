package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
	"github.com/martalonghi/aura-wellness-engine/internal/core/services"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type createHabitRequest struct {
	Name      string `json:"name" binding:"required"`
	Dimension string `json:"dimension" binding:"required"`
	Target    int    `json:"target"`
}

type habitCountRequest struct {
	Count *int `json:"count"`
	Delta *int `json:"delta"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/habits", h.Create)

	days := router.Group("/days/:date")
	{
		days.GET("/habits", h.ForDay)
		days.PUT("/habits/:id/count", h.SetCount)
		days.DELETE("/habits/:id", h.Delete)
	}
}

func (h *HabitHandler) Create(c *gin.Context) {
	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		Name:      req.Name,
		Dimension: domain.Dimension(req.Dimension),
		Target:    req.Target,
	})
	if err != nil {
		if errors.Is(err, domain.ErrHabitNameEmpty) || errors.Is(err, domain.ErrInvalidDimension) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// ForDay returns the day's habit record. Requesting today materializes it via
// carry-forward first.
func (h *HabitHandler) ForDay(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}

	record, err := h.svc.ForDay(c.Request.Context(), day)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// SetCount accepts either an absolute count or a delta increment; exactly one
// must be present.
func (h *HabitHandler) SetCount(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}

	var req habitCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if (req.Count == nil) == (req.Delta == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provide exactly one of count or delta"})
		return
	}

	var (
		record *domain.HabitDay
		err    error
	)
	if req.Count != nil {
		record, err = h.svc.SetCount(c.Request.Context(), day, c.Param("id"), *req.Count)
	} else {
		record, err = h.svc.Increment(c.Request.Context(), day, c.Param("id"), *req.Delta)
	}
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found for that day"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *HabitHandler) Delete(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), day, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found for that day"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}
