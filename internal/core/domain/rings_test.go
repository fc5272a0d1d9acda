package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
)

func TestRingStat_Closed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		stat domain.RingStat
		want bool
	}{
		{"empty ring never closes", domain.RingStat{Completed: 0, Total: 0, Percentage: 0}, false},
		{"full ring closes", domain.RingStat{Completed: 3, Total: 3, Percentage: 1.0}, true},
		{"partial ring stays open", domain.RingStat{Completed: 2, Total: 3, Percentage: 0.67}, false},
		{"overshoot still closed", domain.RingStat{Completed: 5, Total: 3, Percentage: 1.4}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.stat.Closed())
		})
	}
}

func TestAllClosed(t *testing.T) {
	t.Parallel()

	full := domain.RingStat{Completed: 1, Total: 1, Percentage: 1.0}
	empty := domain.RingStat{}
	open := domain.RingStat{Completed: 1, Total: 2, Percentage: 0.5}

	t.Run("Empty rings are excluded from the rule", func(t *testing.T) {
		assert.True(t, domain.AllClosed(full, full, empty))
	})

	t.Run("A day with no data never counts", func(t *testing.T) {
		assert.False(t, domain.AllClosed(empty, empty, empty))
	})

	t.Run("One open ring with data blocks it", func(t *testing.T) {
		assert.False(t, domain.AllClosed(full, open, empty))
	})
}

func TestDetectTransitions(t *testing.T) {
	t.Parallel()

	closed := domain.RingStat{Completed: 2, Total: 2, Percentage: 1.0}
	open := domain.RingStat{Completed: 1, Total: 2, Percentage: 0.5}

	t.Run("Nil previous snapshot counts as not closed", func(t *testing.T) {
		current := &domain.RingSnapshot{
			Date:           "2024-06-01",
			Goals:          closed,
			Habits:         open,
			AllRingsClosed: false,
		}

		got := domain.DetectTransitions(current, nil)
		assert.True(t, got.Goals, "goals just closed against a missing snapshot")
		assert.False(t, got.Habits)
		assert.False(t, got.Routines)
		assert.False(t, got.All)
	})

	t.Run("Already-closed rings do not fire again", func(t *testing.T) {
		previous := &domain.RingSnapshot{Date: "2024-06-01", Goals: closed}
		current := &domain.RingSnapshot{Date: "2024-06-01", Goals: closed}

		got := domain.DetectTransitions(current, previous)
		assert.False(t, got.Any(), "no edge when nothing changed")
	})

	t.Run("Reopened then reclosed rings fire again", func(t *testing.T) {
		previous := &domain.RingSnapshot{Date: "2024-06-01", Habits: open}
		current := &domain.RingSnapshot{Date: "2024-06-01", Habits: closed}

		got := domain.DetectTransitions(current, previous)
		assert.True(t, got.Habits, "habits crossed the threshold")
	})

	t.Run("All edge follows the stored flag", func(t *testing.T) {
		previous := &domain.RingSnapshot{Date: "2024-06-01", Goals: closed, AllRingsClosed: false}
		current := &domain.RingSnapshot{Date: "2024-06-01", Goals: closed, Habits: closed, AllRingsClosed: true}

		got := domain.DetectTransitions(current, previous)
		assert.True(t, got.All, "the combined edge fires when the flag flips to true")

		again := domain.DetectTransitions(current, current)
		assert.False(t, again.All, "the combined edge must not fire when the flag was already true")
	})
}
