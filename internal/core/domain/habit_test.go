package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
)

func TestNewHabit(t *testing.T) {
	t.Parallel()

	t.Run("Should slugify the name into a day-scoped id", func(t *testing.T) {
		t.Parallel()

		habit, err := domain.NewHabit("  Drink Water  ", domain.DimensionPhysical, 8, "2024-06-01")
		require.NoError(t, err)

		assert.Equal(t, "drink-water::2024-06-01", habit.ID)
		assert.Equal(t, "Drink Water", habit.Name, "display name keeps its casing, trimmed")
		assert.Equal(t, "2024-06-01", habit.CreatedOn)
	})

	t.Run("Should floor the target at one", func(t *testing.T) {
		t.Parallel()

		habit, err := domain.NewHabit("Stretch", domain.DimensionPhysical, 0, "2024-06-01")
		require.NoError(t, err)
		assert.Equal(t, 1, habit.Target)
	})

	t.Run("Should validate inputs", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewHabit("   ", domain.DimensionPhysical, 1, "2024-06-01")
		assert.ErrorIs(t, err, domain.ErrHabitNameEmpty)

		_, err = domain.NewHabit("Read", domain.Dimension("vibes"), 1, "2024-06-01")
		assert.ErrorIs(t, err, domain.ErrInvalidDimension)
	})
}

func TestHabitIDs(t *testing.T) {
	t.Parallel()

	id := domain.ComposeHabitID("drink-water", "2024-06-02")
	assert.Equal(t, "drink-water::2024-06-02", id)
	assert.Equal(t, "drink-water", domain.RootHabitID(id))
	assert.Equal(t, "bare-id", domain.RootHabitID("bare-id"), "unscoped ids pass through")
}

func TestHabitDay_CloneForDay(t *testing.T) {
	t.Parallel()

	source := domain.NewHabitDay()
	water, _ := domain.NewHabit("Drink Water", domain.DimensionPhysical, 8, "2024-06-01")
	read, _ := domain.NewHabit("Read", domain.DimensionIntellectual, 1, "2024-06-01")
	source.Habits = append(source.Habits, water, read)
	source.Counts[water.ID] = 5
	source.Counts[read.ID] = 1
	source.DeletedHabits = []string{"stretch::2024-06-01"}

	next := source.CloneForDay("2024-06-02")

	require.Len(t, next.Habits, 2)
	assert.Equal(t, "drink-water::2024-06-02", next.Habits[0].ID, "clones are rescoped to the new day")
	assert.Zero(t, next.Counts["drink-water::2024-06-02"], "counts reset for the new day")
	assert.Empty(t, next.DeletedHabits, "tombstones do not carry forward")
	assert.Equal(t, "2024-06-01", next.Habits[0].CreatedOn, "CreatedOn records the original day")

	next.Habits[0].Target = 99
	assert.Equal(t, 8, source.Habits[0].Target, "clones must not alias the source habits")
}

func TestHabitLog_LatestBefore(t *testing.T) {
	t.Parallel()

	log := domain.HabitLog{
		"2024-05-30": domain.NewHabitDay(),
		"2024-06-01": domain.NewHabitDay(),
		"2024-06-10": domain.NewHabitDay(),
	}

	assert.Equal(t, "2024-06-01", log.LatestBefore("2024-06-05"))
	assert.Equal(t, "2024-05-30", log.LatestBefore("2024-06-01"), "strictly before: the day itself never matches")
	assert.Empty(t, log.LatestBefore("2024-05-01"), "no prior day yields empty")
}
