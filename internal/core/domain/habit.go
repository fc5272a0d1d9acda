package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrHabitNameEmpty = errors.New("habit name cannot be empty")
	ErrHabitNotFound  = errors.New("habit not found for that day")
)

// habitIDSeparator joins a habit's root id with the day key it belongs to.
// Each day's clones get fresh composite ids so per-day counts stay independent.
const habitIDSeparator = "::"

// Habit is one tracked habit as it exists on a single day. CreatedOn records
// the day key the definition first appeared; its presence is also what marks
// habit-derived entries apart from goal instances in shared day lists.
type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Target    int       `json:"target"`
	Dimension Dimension `json:"dimension"`
	CreatedOn string    `json:"createdOn"`
}

func NewHabit(name string, dimension Dimension, target int, day string) (*Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrHabitNameEmpty
	}
	if !dimension.Valid() {
		return nil, ErrInvalidDimension
	}
	if target < 1 {
		target = 1
	}

	root := slugify(name)
	return &Habit{
		ID:        ComposeHabitID(root, day),
		Name:      name,
		Target:    target,
		Dimension: dimension,
		CreatedOn: day,
	}, nil
}

// ComposeHabitID scopes a habit's root id to one calendar day.
func ComposeHabitID(root, day string) string {
	return root + habitIDSeparator + day
}

// RootHabitID strips the day-key scope from a composite habit id.
func RootHabitID(id string) string {
	if i := strings.Index(id, habitIDSeparator); i >= 0 {
		return id[:i]
	}
	return id
}

func slugify(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}

// HabitDay is one calendar day's habit record: the habit list as it stood
// that day, that day's counts, and tombstones for habits deleted on it.
type HabitDay struct {
	Habits        []*Habit       `json:"habits"`
	Counts        map[string]int `json:"counts"`
	DeletedHabits []string       `json:"deletedHabits,omitempty"`
}

func NewHabitDay() *HabitDay {
	return &HabitDay{
		Habits: []*Habit{},
		Counts: make(map[string]int),
	}
}

// Find returns the habit with the given composite id, or nil.
func (d *HabitDay) Find(id string) *Habit {
	for _, h := range d.Habits {
		if h.ID == id {
			return h
		}
	}
	return nil
}

// CloneForDay copies this record's habit list into a fresh record for a new
// day. Clones get composite ids scoped to the new day and zeroed counts;
// tombstones do not carry forward.
func (d *HabitDay) CloneForDay(day string) *HabitDay {
	next := NewHabitDay()
	for _, h := range d.Habits {
		clone := *h
		clone.ID = ComposeHabitID(RootHabitID(h.ID), day)
		next.Habits = append(next.Habits, &clone)
		next.Counts[clone.ID] = 0
	}
	return next
}

// HabitLog is the full day-keyed habit history persisted under one store key.
type HabitLog map[string]*HabitDay

// LatestBefore returns the most recent day key in the log strictly before
// day, or "" when none exists. Day keys sort lexicographically in date order.
func (l HabitLog) LatestBefore(day string) string {
	keys := make([]string, 0, len(l))
	for k := range l {
		if k < day {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return keys[len(keys)-1]
}
