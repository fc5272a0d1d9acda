package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
	"github.com/martalonghi/aura-wellness-engine/internal/core/services"
)

type RoutineHandler struct {
	svc *services.RoutineService
}

func NewRoutineHandler(svc *services.RoutineService) *RoutineHandler {
	return &RoutineHandler{
		svc: svc,
	}
}

type routineTaskRequest struct {
	Name      string `json:"name" binding:"required"`
	Dimension string `json:"dimension" binding:"required"`
	Duration  int    `json:"duration"`
}

type createRoutineRequest struct {
	Name     string               `json:"name" binding:"required"`
	Icon     string               `json:"icon"`
	Weekdays bool                 `json:"weekdays"`
	Weekends bool                 `json:"weekends"`
	Tasks    []routineTaskRequest `json:"tasks"`
}

type updateRoutineRequest struct {
	Name     string               `json:"name"`
	Icon     string               `json:"icon"`
	Weekdays *bool                `json:"weekdays"`
	Weekends *bool                `json:"weekends"`
	Tasks    []routineTaskRequest `json:"tasks"`
}

type taskCompletionRequest struct {
	Date string `json:"date" binding:"required"`
	Done bool   `json:"done"`
}

func (h *RoutineHandler) RegisterRoutes(router *gin.RouterGroup) {
	routines := router.Group("/routines")
	{
		routines.GET("", h.List)
		routines.POST("", h.Create)
		routines.PUT("/:id", h.Update)
		routines.DELETE("/:id", h.Delete)
		routines.PUT("/:id/tasks/:taskId/completion", h.SetTaskDone)
	}

	router.GET("/days/:date/routines", h.ForDay)
}

func taskInputs(reqs []routineTaskRequest) []domain.RoutineTaskInput {
	tasks := make([]domain.RoutineTaskInput, 0, len(reqs))
	for _, t := range reqs {
		tasks = append(tasks, domain.RoutineTaskInput{
			Name:      t.Name,
			Dimension: domain.Dimension(t.Dimension),
			Duration:  t.Duration,
		})
	}
	return tasks
}

func (h *RoutineHandler) List(c *gin.Context) {
	routines, err := h.svc.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, routines)
}

func (h *RoutineHandler) Create(c *gin.Context) {
	var req createRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	routine, err := h.svc.Create(c.Request.Context(), services.CreateRoutineInput{
		Name:     req.Name,
		Icon:     req.Icon,
		Weekdays: req.Weekdays,
		Weekends: req.Weekends,
		Tasks:    taskInputs(req.Tasks),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, routine)
}

func (h *RoutineHandler) Update(c *gin.Context) {
	var req updateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.UpdateRoutineInput{
		Name:     req.Name,
		Icon:     req.Icon,
		Weekdays: req.Weekdays,
		Weekends: req.Weekends,
	}
	if req.Tasks != nil {
		input.Tasks = taskInputs(req.Tasks)
	}

	routine, err := h.svc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, routine)
}

func (h *RoutineHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ForDay lists the routines applicable to the day (weekday/weekend flags)
// together with each one's completion record.
func (h *RoutineHandler) ForDay(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}

	views, err := h.svc.ForDay(c.Request.Context(), day)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h *RoutineHandler) SetTaskDone(c *gin.Context) {
	var req taskCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := domain.ParseDayKey(req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date (must be YYYY-MM-DD)"})
		return
	}

	completion, err := h.svc.SetTaskDone(c.Request.Context(), c.Param("id"), req.Date, c.Param("taskId"), req.Done)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, completion)
}

func (h *RoutineHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrRoutineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "routine not found"})
	case errors.Is(err, domain.ErrRoutineTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "routine task not found"})
	case errors.Is(err, domain.ErrRoutineNameEmpty),
		errors.Is(err, domain.ErrRoutineNoDays),
		errors.Is(err, domain.ErrInvalidDimension):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
