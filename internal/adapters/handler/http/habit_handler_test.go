package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martalonghi/aura-wellness-engine/internal/adapters/repository"
	"github.com/martalonghi/aura-wellness-engine/internal/adapters/storage"
	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
	"github.com/martalonghi/aura-wellness-engine/internal/core/services"
)

func setupHabitRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := repository.NewStoreHabitRepository(storage.NewInMemoryStore())
	handler := NewHabitHandler(services.NewHabitService(repo))

	router := gin.New()
	handler.RegisterRoutes(router.Group(""))
	return router
}

func TestHabitHandler(t *testing.T) {
	today := domain.DayKey(time.Now())

	createHabit := func(t *testing.T, router *gin.Engine) string {
		t.Helper()
		w := doJSON(t, router, http.MethodPost, "/habits", gin.H{
			"name":      "Drink Water",
			"dimension": "physical",
			"target":    8,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var habit struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &habit))
		return habit.ID
	}

	t.Run("Create returns 201 with the day-scoped habit", func(t *testing.T) {
		router := setupHabitRouter()
		id := createHabit(t, router)
		assert.Equal(t, "drink-water::"+today, id)
	})

	t.Run("Create rejects an unknown dimension", func(t *testing.T) {
		router := setupHabitRouter()
		w := doJSON(t, router, http.MethodPost, "/habits", gin.H{
			"name":      "Read",
			"dimension": "cosmic",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ForDay returns today's record with the new habit", func(t *testing.T) {
		router := setupHabitRouter()
		id := createHabit(t, router)

		w := doJSON(t, router, http.MethodGet, "/days/"+today+"/habits", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var record struct {
			Habits []struct {
				ID string `json:"id"`
			} `json:"habits"`
			Counts map[string]int `json:"counts"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
		require.Len(t, record.Habits, 1)
		assert.Equal(t, id, record.Habits[0].ID)
		assert.Equal(t, 0, record.Counts[id])
	})

	t.Run("ForDay on a past day reads as empty without writing", func(t *testing.T) {
		router := setupHabitRouter()

		w := doJSON(t, router, http.MethodGet, "/days/2001-01-01/habits", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var record struct {
			Habits []any `json:"habits"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
		assert.Empty(t, record.Habits)
	})

	t.Run("SetCount accepts an absolute count", func(t *testing.T) {
		router := setupHabitRouter()
		id := createHabit(t, router)

		w := doJSON(t, router, http.MethodPut, fmt.Sprintf("/days/%s/habits/%s/count", today, id), gin.H{"count": 5})
		require.Equal(t, http.StatusOK, w.Code)

		var record struct {
			Counts map[string]int `json:"counts"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
		assert.Equal(t, 5, record.Counts[id])
	})

	t.Run("SetCount accepts a delta", func(t *testing.T) {
		router := setupHabitRouter()
		id := createHabit(t, router)

		doJSON(t, router, http.MethodPut, fmt.Sprintf("/days/%s/habits/%s/count", today, id), gin.H{"count": 5})
		w := doJSON(t, router, http.MethodPut, fmt.Sprintf("/days/%s/habits/%s/count", today, id), gin.H{"delta": -2})
		require.Equal(t, http.StatusOK, w.Code)

		var record struct {
			Counts map[string]int `json:"counts"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
		assert.Equal(t, 3, record.Counts[id])
	})

	t.Run("SetCount requires exactly one of count or delta", func(t *testing.T) {
		router := setupHabitRouter()
		id := createHabit(t, router)

		w := doJSON(t, router, http.MethodPut, fmt.Sprintf("/days/%s/habits/%s/count", today, id), gin.H{"count": 5, "delta": 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/days/%s/habits/%s/count", today, id), gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown habit returns 404", func(t *testing.T) {
		router := setupHabitRouter()
		createHabit(t, router)

		w := doJSON(t, router, http.MethodPut, fmt.Sprintf("/days/%s/habits/ghost/count", today), gin.H{"count": 1})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Delete tombstones the habit", func(t *testing.T) {
		router := setupHabitRouter()
		id := createHabit(t, router)

		w := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/days/%s/habits/%s", today, id), nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, router, http.MethodGet, "/days/"+today+"/habits", nil)
		var record struct {
			Habits        []any    `json:"habits"`
			DeletedHabits []string `json:"deletedHabits"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
		assert.Empty(t, record.Habits)
		assert.Contains(t, record.DeletedHabits, id)
	})
}
