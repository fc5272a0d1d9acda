package services

import (
	"context"
	"strings"
	"sync"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
)

// RoutineService manages the global routine list and per-day task completion.
type RoutineService struct {
	repo domain.RoutineRepository

	mu sync.Mutex
}

func NewRoutineService(repo domain.RoutineRepository) *RoutineService {
	return &RoutineService{repo: repo}
}

type CreateRoutineInput struct {
	Name     string
	Icon     string
	Weekdays bool
	Weekends bool
	Tasks    []domain.RoutineTaskInput
}

func (s *RoutineService) Create(ctx context.Context, input CreateRoutineInput) (*domain.Routine, error) {
	routine, err := domain.NewRoutine(input.Name, input.Icon, input.Weekdays, input.Weekends, input.Tasks)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	routines, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	routines = append(routines, routine)
	if err := s.repo.SaveAll(ctx, routines); err != nil {
		return nil, err
	}
	return routine, nil
}

func (s *RoutineService) List(ctx context.Context) ([]*domain.Routine, error) {
	return s.repo.List(ctx)
}

func (s *RoutineService) Get(ctx context.Context, id string) (*domain.Routine, error) {
	routines, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range routines {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrRoutineNotFound
}

type UpdateRoutineInput struct {
	Name     string
	Icon     string
	Weekdays *bool
	Weekends *bool
	Tasks    []domain.RoutineTaskInput
}

// Update rebuilds a routine in place. Tasks, when provided, replace the whole
// list and get fresh ids, which also orphans their old completion entries.
func (s *RoutineService) Update(ctx context.Context, id string, input UpdateRoutineInput) (*domain.Routine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	routines, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var routine *domain.Routine
	for _, r := range routines {
		if r.ID == id {
			routine = r
			break
		}
	}
	if routine == nil {
		return nil, domain.ErrRoutineNotFound
	}

	name := routine.Name
	if strings.TrimSpace(input.Name) != "" {
		name = input.Name
	}
	icon := routine.Icon
	if input.Icon != "" {
		icon = input.Icon
	}
	weekdays := routine.Weekdays
	if input.Weekdays != nil {
		weekdays = *input.Weekdays
	}
	weekends := routine.Weekends
	if input.Weekends != nil {
		weekends = *input.Weekends
	}
	tasks := input.Tasks
	if tasks == nil {
		tasks = make([]domain.RoutineTaskInput, 0, len(routine.Tasks))
		for _, t := range routine.Tasks {
			tasks = append(tasks, domain.RoutineTaskInput{Name: t.Name, Dimension: t.Dimension, Duration: t.Duration})
		}
	}

	rebuilt, err := domain.NewRoutine(name, icon, weekdays, weekends, tasks)
	if err != nil {
		return nil, err
	}
	rebuilt.ID = routine.ID

	*routine = *rebuilt

	if err := s.repo.SaveAll(ctx, routines); err != nil {
		return nil, err
	}
	return routine, nil
}

func (s *RoutineService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	routines, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	kept := routines[:0]
	found := false
	for _, r := range routines {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return domain.ErrRoutineNotFound
	}

	return s.repo.SaveAll(ctx, kept)
}

// RoutineDayView pairs an applicable routine with its completion state for
// one day.
type RoutineDayView struct {
	Routine    *domain.Routine          `json:"routine"`
	Completion domain.RoutineCompletion `json:"completion"`
}

// ForDay returns the routines applicable to the given day with each one's
// completion record. A routine never touched that day reads as all-false.
func (s *RoutineService) ForDay(ctx context.Context, day string) ([]RoutineDayView, error) {
	t, err := domain.ParseDayKey(day)
	if err != nil {
		return nil, err
	}

	routines, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]RoutineDayView, 0, len(routines))
	for _, r := range routines {
		if !r.AppliesTo(t) {
			continue
		}
		completion, err := s.repo.GetCompletion(ctx, r.ID, day)
		if err != nil {
			return nil, err
		}
		views = append(views, RoutineDayView{Routine: r, Completion: completion})
	}
	return views, nil
}

// SetTaskDone marks one task of a routine done or not done for a day. The
// first touch on a new day starts from an empty record, which is what resets
// routines at the day boundary.
func (s *RoutineService) SetTaskDone(ctx context.Context, routineID, day, taskID string, done bool) (domain.RoutineCompletion, error) {
	routine, err := s.Get(ctx, routineID)
	if err != nil {
		return nil, err
	}
	if routine.FindTask(taskID) == nil {
		return nil, domain.ErrRoutineTaskNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	completion, err := s.repo.GetCompletion(ctx, routineID, day)
	if err != nil {
		return nil, err
	}

	completion[taskID] = done
	if err := s.repo.SaveCompletion(ctx, routineID, day, completion); err != nil {
		return nil, err
	}
	return completion, nil
}
