package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
)

func TestNewRoutine(t *testing.T) {
	t.Parallel()

	t.Run("Should build ordered tasks and skip blanks", func(t *testing.T) {
		t.Parallel()

		routine, err := domain.NewRoutine("Morning", "sunrise", true, false, []domain.RoutineTaskInput{
			{Name: "Stretch", Dimension: domain.DimensionPhysical, Duration: 10},
			{Name: "   ", Dimension: domain.DimensionPhysical, Duration: 5},
			{Name: "Journal", Dimension: domain.DimensionMental, Duration: 15},
		})
		require.NoError(t, err)

		require.Len(t, routine.Tasks, 2)
		assert.Equal(t, 1, routine.Tasks[0].StepNumber, "step numbers follow input order")
		assert.Equal(t, 3, routine.Tasks[1].StepNumber)
		assert.NotEqual(t, routine.Tasks[0].ID, routine.Tasks[1].ID, "each task gets its own id")
	})

	t.Run("Should validate inputs", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewRoutine("  ", "", true, true, nil)
		assert.ErrorIs(t, err, domain.ErrRoutineNameEmpty)

		_, err = domain.NewRoutine("Evening", "", false, false, nil)
		assert.ErrorIs(t, err, domain.ErrRoutineNoDays)

		_, err = domain.NewRoutine("Evening", "", true, true, []domain.RoutineTaskInput{
			{Name: "Relax", Dimension: domain.Dimension("cosmic")},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidDimension)
	})
}

func TestRoutine_AppliesTo(t *testing.T) {
	t.Parallel()

	saturday := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	weekdayOnly, _ := domain.NewRoutine("Commute", "", true, false, nil)
	weekendOnly, _ := domain.NewRoutine("Long run", "", false, true, nil)
	both, _ := domain.NewRoutine("Teeth", "", true, true, nil)

	assert.True(t, weekdayOnly.AppliesTo(monday))
	assert.False(t, weekdayOnly.AppliesTo(saturday))

	assert.True(t, weekendOnly.AppliesTo(saturday))
	assert.False(t, weekendOnly.AppliesTo(monday))

	assert.True(t, both.AppliesTo(saturday))
	assert.True(t, both.AppliesTo(monday))
}

func TestRoutineCompletion_CompletedCount(t *testing.T) {
	t.Parallel()

	routine, err := domain.NewRoutine("Morning", "", true, true, []domain.RoutineTaskInput{
		{Name: "Stretch", Dimension: domain.DimensionPhysical},
		{Name: "Journal", Dimension: domain.DimensionMental},
	})
	require.NoError(t, err)

	completion := domain.RoutineCompletion{
		routine.Tasks[0].ID: true,
		"stale-task-id":     true,
	}

	assert.Equal(t, 1, completion.CompletedCount(routine), "stale task ids are ignored")

	assert.NotNil(t, routine.FindTask(routine.Tasks[1].ID))
	assert.Nil(t, routine.FindTask("missing"))
}
