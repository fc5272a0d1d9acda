package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
)

// GoalService schedules goals across days and mutates single-day instances.
// Read-modify-write sections are serialized under mu: the store has no
// transactions, and without the lock two rapid mutations against the same day
// list could drop each other's writes.
type GoalService struct {
	repo domain.GoalRepository

	mu sync.Mutex
}

func NewGoalService(repo domain.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

type ScheduleGoalInput struct {
	// GoalID, when set, re-runs the expansion for an existing goal instead
	// of minting a new one. Used to retry a partially failed schedule or to
	// extend a goal's range.
	GoalID string

	Name         string
	Dimension    domain.Dimension
	Quantifiable bool
	Target       int
	StartDate    time.Time
	EndDate      time.Time
	Recurrence   domain.RecurrencePeriod
}

// ScheduleResult reports what one scheduling run did.
type ScheduleResult struct {
	Goal         *domain.GoalInstance `json:"goal"`
	ScheduledOn  []string             `json:"scheduled_on"`
	SkippedDays  []string             `json:"skipped_days,omitempty"`
	ExpandedDays int                  `json:"expanded_days"`
}

// Schedule expands the recurrence range into day keys and inserts an
// independent instance copy into each day's list. Insertion is idempotent per
// (goal id, day): re-posting with the GoalID of an earlier run skips the days
// that already hold it and reports them in SkippedDays, so retries and range
// extensions never duplicate a goal.
func (s *GoalService) Schedule(ctx context.Context, input ScheduleGoalInput) (*ScheduleResult, error) {
	proto, err := domain.NewGoalInstance(input.Name, input.Dimension, input.Quantifiable, input.Target)
	if err != nil {
		return nil, err
	}
	if input.GoalID != "" {
		proto.ID = input.GoalID
	}

	days, err := domain.ExpandSchedule(input.StartDate, input.EndDate, input.Recurrence)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := &ScheduleResult{Goal: proto, ExpandedDays: len(days)}

	for _, day := range days {
		list, err := s.repo.GetDay(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("goal service: reading day %s: %w", day, err)
		}

		if containsGoalID(list, proto.ID) {
			result.SkippedDays = append(result.SkippedDays, day)
			continue
		}

		list = append(list, proto.Clone())
		if err := s.repo.SaveDay(ctx, day, list); err != nil {
			return nil, fmt.Errorf("goal service: saving day %s: %w", day, err)
		}
		result.ScheduledOn = append(result.ScheduledOn, day)
	}

	return result, nil
}

// ListDay returns the true goal instances for a day, filtering out
// habit-shaped entries that share the same day lists.
func (s *GoalService) ListDay(ctx context.Context, day string) ([]*domain.GoalInstance, error) {
	list, err := s.repo.GetDay(ctx, day)
	if err != nil {
		return nil, err
	}

	goals := make([]*domain.GoalInstance, 0, len(list))
	for _, g := range list {
		if !g.IsHabitEntry() {
			goals = append(goals, g)
		}
	}
	return goals, nil
}

// Toggle flips a non-quantifiable goal's completed flag for one day. For
// quantifiable goals the counter is authoritative, so toggling sets the count
// to the target (complete) or zero (incomplete) to keep the two consistent.
func (s *GoalService) Toggle(ctx context.Context, day, goalID string) (*domain.GoalInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, day, goalID, func(g *domain.GoalInstance) error {
		if g.Quantifiable {
			if g.IsComplete() {
				g.SetCount(0)
			} else {
				g.SetCount(g.Target)
			}
			return s.repo.SetCount(ctx, g.ID, day, g.Count)
		}
		g.Completed = !g.Completed
		return nil
	})
}

// SetCount updates a quantifiable goal's counter for one day, keeping the
// stored completed flag and the counter side key in sync.
func (s *GoalService) SetCount(ctx context.Context, day, goalID string, count int) (*domain.GoalInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, day, goalID, func(g *domain.GoalInstance) error {
		g.SetCount(count)
		return s.repo.SetCount(ctx, g.ID, day, g.Count)
	})
}

// Remove deletes a goal instance from one day only, together with its counter
// and note side keys for that day. Other days' copies are untouched.
func (s *GoalService) Remove(ctx context.Context, day, goalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.repo.GetDay(ctx, day)
	if err != nil {
		return err
	}

	kept := list[:0]
	found := false
	for _, g := range list {
		if g.ID == goalID && !g.IsHabitEntry() {
			found = true
			continue
		}
		kept = append(kept, g)
	}
	if !found {
		return domain.ErrGoalNotFound
	}

	if err := s.repo.SaveDay(ctx, day, kept); err != nil {
		return err
	}

	if err := s.repo.DeleteCount(ctx, goalID, day); err != nil {
		return err
	}
	return s.repo.DeleteNote(ctx, goalID, day)
}

func (s *GoalService) GetNote(ctx context.Context, day, goalID string) (string, error) {
	return s.repo.GetNote(ctx, goalID, day)
}

func (s *GoalService) SetNote(ctx context.Context, day, goalID, note string) error {
	if note == "" {
		return s.repo.DeleteNote(ctx, goalID, day)
	}
	return s.repo.SetNote(ctx, goalID, day, note)
}

// mutate applies fn to the named instance within a single read-modify-write
// cycle. Callers must hold mu.
func (s *GoalService) mutate(ctx context.Context, day, goalID string, fn func(*domain.GoalInstance) error) (*domain.GoalInstance, error) {
	list, err := s.repo.GetDay(ctx, day)
	if err != nil {
		return nil, err
	}

	var target *domain.GoalInstance
	for _, g := range list {
		if g.ID == goalID && !g.IsHabitEntry() {
			target = g
			break
		}
	}
	if target == nil {
		return nil, domain.ErrGoalNotFound
	}

	if err := fn(target); err != nil {
		return nil, err
	}

	if err := s.repo.SaveDay(ctx, day, list); err != nil {
		return nil, err
	}
	return target, nil
}

func containsGoalID(list []*domain.GoalInstance, id string) bool {
	for _, g := range list {
		if g.ID == id {
			return true
		}
	}
	return false
}
