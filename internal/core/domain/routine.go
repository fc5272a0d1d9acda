package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRoutineNameEmpty    = errors.New("routine name cannot be empty")
	ErrRoutineNotFound     = errors.New("routine not found")
	ErrRoutineTaskNotFound = errors.New("routine task not found")
	ErrRoutineNoDays       = errors.New("routine must apply to weekdays, weekends, or both")
)

// RoutineTask is one ordered step of a routine.
type RoutineTask struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Dimension  Dimension `json:"dimension"`
	Duration   int       `json:"duration"`
	StepNumber int       `json:"stepNumber"`
}

// Routine is a global multi-step routine. It is not day-partitioned;
// applicability to a given day is computed from the weekday/weekend flags.
type Routine struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Icon     string         `json:"icon"`
	Weekdays bool           `json:"weekdays"`
	Weekends bool           `json:"weekends"`
	Tasks    []*RoutineTask `json:"tasks"`
}

type RoutineTaskInput struct {
	Name      string
	Dimension Dimension
	Duration  int
}

func NewRoutine(name, icon string, weekdays, weekends bool, tasks []RoutineTaskInput) (*Routine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrRoutineNameEmpty
	}
	if !weekdays && !weekends {
		return nil, ErrRoutineNoDays
	}

	r := &Routine{
		ID:       uuid.NewString(),
		Name:     name,
		Icon:     icon,
		Weekdays: weekdays,
		Weekends: weekends,
		Tasks:    []*RoutineTask{},
	}

	for i, in := range tasks {
		taskName := strings.TrimSpace(in.Name)
		if taskName == "" {
			continue
		}
		if !in.Dimension.Valid() {
			return nil, ErrInvalidDimension
		}
		r.Tasks = append(r.Tasks, &RoutineTask{
			ID:         uuid.NewString(),
			Name:       taskName,
			Dimension:  in.Dimension,
			Duration:   in.Duration,
			StepNumber: i + 1,
		})
	}

	return r, nil
}

// AppliesTo reports whether this routine is scheduled on the given day.
func (r *Routine) AppliesTo(t time.Time) bool {
	if IsWeekend(t) {
		return r.Weekends
	}
	return r.Weekdays
}

// FindTask returns the task with the given id, or nil.
func (r *Routine) FindTask(taskID string) *RoutineTask {
	for _, task := range r.Tasks {
		if task.ID == taskID {
			return task
		}
	}
	return nil
}

// RoutineCompletion maps task ids to done flags for one (routine, day) pair.
// Each day has its own record, so a routine always starts a new day untouched.
type RoutineCompletion map[string]bool

// CompletedCount counts tasks of the routine marked done in this record.
// Stale ids from removed tasks are ignored.
func (c RoutineCompletion) CompletedCount(r *Routine) int {
	n := 0
	for _, task := range r.Tasks {
		if c[task.ID] {
			n++
		}
	}
	return n
}
