package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
	"github.com/martalonghi/aura-wellness-engine/internal/core/services"
)

type GoalHandler struct {
	svc *services.GoalService
}

func NewGoalHandler(svc *services.GoalService) *GoalHandler {
	return &GoalHandler{
		svc: svc,
	}
}

type scheduleGoalRequest struct {
	// ID re-runs the expansion for an already-scheduled goal; days that
	// hold it come back in skipped_days.
	ID string `json:"id"`

	Name         string `json:"name" binding:"required"`
	Dimension    string `json:"dimension" binding:"required"`
	Quantifiable bool   `json:"quantifiable"`
	Target       int    `json:"target"`
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date"`
	Recurrence   string `json:"recurrence"`
}

type setCountRequest struct {
	Count int `json:"count" binding:"min=0"`
}

type noteRequest struct {
	Note string `json:"note"`
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/goals", h.Schedule)

	days := router.Group("/days/:date")
	{
		days.GET("/goals", h.ListDay)
		days.PATCH("/goals/:id/toggle", h.Toggle)
		days.PUT("/goals/:id/count", h.SetCount)
		days.DELETE("/goals/:id", h.Remove)
		days.GET("/goals/:id/note", h.GetNote)
		days.PUT("/goals/:id/note", h.SetNote)
	}
}

// Schedule creates a goal and expands its recurrence range into per-day
// instances. Posting again with the returned goal id is idempotent: held
// days are skipped, new days in an extended range are filled in.
func (h *GoalHandler) Schedule(c *gin.Context) {
	var req scheduleGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := domain.ParseDayKey(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date (must be YYYY-MM-DD)"})
		return
	}

	end := start
	if req.EndDate != "" {
		end, err = domain.ParseDayKey(req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date (must be YYYY-MM-DD)"})
			return
		}
	}

	recurrence := domain.RecurrencePeriod(req.Recurrence)
	if req.Recurrence == "" {
		recurrence = domain.RecurrenceNone
	}

	result, err := h.svc.Schedule(c.Request.Context(), services.ScheduleGoalInput{
		GoalID:       req.ID,
		Name:         req.Name,
		Dimension:    domain.Dimension(req.Dimension),
		Quantifiable: req.Quantifiable,
		Target:       req.Target,
		StartDate:    start,
		EndDate:      end,
		Recurrence:   recurrence,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGoalNameEmpty),
			errors.Is(err, domain.ErrGoalNameTooLong),
			errors.Is(err, domain.ErrInvalidDimension),
			errors.Is(err, domain.ErrInvalidRecurrence),
			errors.Is(err, domain.ErrInvalidRange),
			errors.Is(err, domain.ErrInvalidTarget):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *GoalHandler) ListDay(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}

	goals, err := h.svc.ListDay(c.Request.Context(), day)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, goals)
}

func (h *GoalHandler) Toggle(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}

	goal, err := h.svc.Toggle(c.Request.Context(), day, c.Param("id"))
	if err != nil {
		h.respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) SetCount(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}

	var req setCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.svc.SetCount(c.Request.Context(), day, c.Param("id"), req.Count)
	if err != nil {
		h.respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Remove(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}

	if err := h.svc.Remove(c.Request.Context(), day, c.Param("id")); err != nil {
		h.respondMutationError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *GoalHandler) GetNote(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}

	note, err := h.svc.GetNote(c.Request.Context(), day, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"note": note})
}

func (h *GoalHandler) SetNote(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.SetNote(c.Request.Context(), day, c.Param("id"), req.Note); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *GoalHandler) respondMutationError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrGoalNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "goal not found for that day"})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// dayParam validates the :date path segment. Malformed dates are rejected at
// the boundary rather than coerced into surprising day keys.
func dayParam(c *gin.Context) (string, bool) {
	day := c.Param("date")
	if _, err := time.Parse(domain.DayKeyLayout, day); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date (must be YYYY-MM-DD)"})
		return "", false
	}
	return day, true
}
