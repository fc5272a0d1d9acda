package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGoalNameEmpty     = errors.New("goal name cannot be empty")
	ErrGoalNameTooLong   = errors.New("goal name is too long (max 100 chars)")
	ErrInvalidRecurrence = errors.New("invalid recurrence period (must be none, daily, weekly, or monthly)")
	ErrInvalidRange      = errors.New("end date cannot be before start date")
	ErrInvalidTarget     = errors.New("target must be positive for quantifiable goals")
	ErrGoalNotFound      = errors.New("goal not found for that day")
)

const MaxGoalNameLen = 100

// RecurrencePeriod controls how a goal's start..end range expands into
// scheduled day keys.
type RecurrencePeriod string

const (
	RecurrenceNone    RecurrencePeriod = "none"
	RecurrenceDaily   RecurrencePeriod = "daily"
	RecurrenceWeekly  RecurrencePeriod = "weekly"
	RecurrenceMonthly RecurrencePeriod = "monthly"
)

func (p RecurrencePeriod) Valid() bool {
	switch p {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// GoalInstance is one day's independent copy of a scheduled goal. Removing or
// completing an instance never touches other days' copies. The ID is the
// logical goal id shared by every instance produced by one scheduling run;
// duplicate prevention keys on it.
//
// Habit-derived entries stored in the same per-day lists carry a CreatedOn
// marker; true goal instances never do.
type GoalInstance struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Dimension    Dimension `json:"dimension"`
	Completed    bool      `json:"completed"`
	Quantifiable bool      `json:"quantifiable"`
	Target       int       `json:"target,omitempty"`
	Count        int       `json:"count,omitempty"`
	CreatedOn    string    `json:"createdOn,omitempty"`
}

// IsHabitEntry reports whether this list entry is habit-shaped rather than a
// true goal instance.
func (g *GoalInstance) IsHabitEntry() bool {
	return g.CreatedOn != ""
}

// IsComplete is the single source of truth for goal completion. For
// quantifiable goals the counter decides, not the stored flag.
func (g *GoalInstance) IsComplete() bool {
	if g.Quantifiable {
		return g.Count >= g.Target
	}
	return g.Completed
}

// SetCount updates the counter and keeps the stored completed flag consistent
// with it.
func (g *GoalInstance) SetCount(count int) {
	if count < 0 {
		count = 0
	}
	g.Count = count
	if g.Quantifiable {
		g.Completed = g.Count >= g.Target
	}
}

// NewGoalInstance validates and builds the prototype instance that scheduling
// copies into each target day.
func NewGoalInstance(name string, dimension Dimension, quantifiable bool, target int) (*GoalInstance, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrGoalNameEmpty
	}
	if len(name) > MaxGoalNameLen {
		return nil, ErrGoalNameTooLong
	}
	if !dimension.Valid() {
		return nil, ErrInvalidDimension
	}
	if quantifiable && target < 1 {
		return nil, ErrInvalidTarget
	}
	if !quantifiable {
		target = 0
	}

	return &GoalInstance{
		ID:           uuid.NewString(),
		Name:         name,
		Dimension:    dimension,
		Quantifiable: quantifiable,
		Target:       target,
	}, nil
}

// Clone returns an independent copy for insertion into one day's list.
func (g *GoalInstance) Clone() *GoalInstance {
	cp := *g
	return &cp
}

// ExpandSchedule produces the ordered, deduplicated sequence of day keys from
// start to end inclusive, stepped by the recurrence period.
//
// Rules:
//   - RecurrenceNone yields exactly [start] and ignores end.
//   - end before start fails with ErrInvalidRange.
//   - The last emitted key never exceeds end: each candidate is checked
//     before emission, so the loop cannot overshoot the boundary.
//   - Monthly steps hold the start's day-of-month as the anchor; when the
//     target month is shorter the day clamps to that month's last day while
//     later months return to the anchor (Jan 31 -> Feb 28 -> Mar 31).
func ExpandSchedule(start, end time.Time, period RecurrencePeriod) ([]string, error) {
	if !period.Valid() {
		return nil, ErrInvalidRecurrence
	}

	startDay, err := ParseDayKey(DayKey(start))
	if err != nil {
		return nil, err
	}

	if period == RecurrenceNone {
		return []string{DayKey(startDay)}, nil
	}

	endDay, err := ParseDayKey(DayKey(end))
	if err != nil {
		return nil, err
	}
	if endDay.Before(startDay) {
		return nil, ErrInvalidRange
	}

	var keys []string
	seen := make(map[string]bool)

	anchorDay := startDay.Day()
	cur := startDay
	for step := 0; !cur.After(endDay); step++ {
		key := DayKey(cur)
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}

		switch period {
		case RecurrenceDaily:
			cur = cur.AddDate(0, 0, 1)
		case RecurrenceWeekly:
			cur = cur.AddDate(0, 0, 7)
		case RecurrenceMonthly:
			cur = addMonthsClamped(startDay, step+1, anchorDay)
		}
	}

	return keys, nil
}

// addMonthsClamped steps n calendar months past base, clamping the anchor
// day-of-month to the target month's length. time.AddDate is avoided here
// because it normalizes overflow into the next month (Jan 31 + 1mo = Mar 2/3).
func addMonthsClamped(base time.Time, months, anchorDay int) time.Time {
	first := time.Date(base.Year(), base.Month()+time.Month(months), 1, 0, 0, 0, 0, ReferenceZone)
	lastDay := first.AddDate(0, 1, -1).Day()

	day := anchorDay
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, ReferenceZone)
}
