package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
)

// HabitService owns the day-keyed habit log: carry-forward materialization of
// today's record, habit creation/deletion, and per-day counts. The whole log
// lives under one store key, so every mutation is a full read-modify-write
// guarded by mu.
type HabitService struct {
	repo domain.HabitRepository
	now  func() time.Time

	mu sync.Mutex
}

func NewHabitService(repo domain.HabitRepository) *HabitService {
	return &HabitService{
		repo: repo,
		now:  time.Now,
	}
}

// ForDay returns the habit record for a day. Reading today materializes it
// first (carry-forward); reading any other day never writes and treats
// absence as an empty record.
func (s *HabitService) ForDay(ctx context.Context, day string) (*domain.HabitDay, error) {
	today := domain.DayKey(s.now())
	if day == today {
		return s.EnsureToday(ctx)
	}

	log, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if record, ok := log[day]; ok {
		return record, nil
	}
	return domain.NewHabitDay(), nil
}

// EnsureToday materializes today's habit record if it does not exist yet,
// cloning the habit list from the most recent prior day with fresh day-scoped
// ids and zeroed counts.
func (s *HabitService) EnsureToday(ctx context.Context) (*domain.HabitDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := domain.DayKey(s.now())

	log, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if record, ok := log[today]; ok {
		return record, nil
	}

	record := domain.NewHabitDay()
	if prev := log.LatestBefore(today); prev != "" {
		record = log[prev].CloneForDay(today)
	}

	log[today] = record
	if err := s.repo.Save(ctx, log); err != nil {
		return nil, fmt.Errorf("habit service: saving carried-forward day %s: %w", today, err)
	}
	return record, nil
}

type CreateHabitInput struct {
	Name      string
	Dimension domain.Dimension
	Target    int
}

// Create adds a habit to today's record. It becomes part of every later day
// through carry-forward.
func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	if _, err := s.EnsureToday(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := domain.DayKey(s.now())

	habit, err := domain.NewHabit(input.Name, input.Dimension, input.Target, today)
	if err != nil {
		return nil, err
	}

	log, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	record := log[today]
	if record == nil {
		record = domain.NewHabitDay()
		log[today] = record
	}
	if record.Find(habit.ID) != nil {
		return nil, fmt.Errorf("habit service: %q already tracked today", input.Name)
	}

	record.Habits = append(record.Habits, habit)
	record.Counts[habit.ID] = 0

	if err := s.repo.Save(ctx, log); err != nil {
		return nil, err
	}
	return habit, nil
}

// SetCount writes a habit's count for one day. Counts are free to exceed the
// target; aggregation clamps.
func (s *HabitService) SetCount(ctx context.Context, day, habitID string, count int) (*domain.HabitDay, error) {
	return s.mutateDay(ctx, day, func(record *domain.HabitDay) error {
		if record.Find(habitID) == nil {
			return domain.ErrHabitNotFound
		}
		if count < 0 {
			count = 0
		}
		record.Counts[habitID] = count
		return nil
	})
}

// Increment adjusts a habit's count for one day by delta (floored at zero).
func (s *HabitService) Increment(ctx context.Context, day, habitID string, delta int) (*domain.HabitDay, error) {
	return s.mutateDay(ctx, day, func(record *domain.HabitDay) error {
		if record.Find(habitID) == nil {
			return domain.ErrHabitNotFound
		}
		next := record.Counts[habitID] + delta
		if next < 0 {
			next = 0
		}
		record.Counts[habitID] = next
		return nil
	})
}

// Delete removes a habit from one day's record and tombstones it there, so
// the deletion survives in the record even though carry-forward clones only
// the habit list.
func (s *HabitService) Delete(ctx context.Context, day, habitID string) error {
	_, err := s.mutateDay(ctx, day, func(record *domain.HabitDay) error {
		kept := record.Habits[:0]
		found := false
		for _, h := range record.Habits {
			if h.ID == habitID {
				found = true
				continue
			}
			kept = append(kept, h)
		}
		if !found {
			return domain.ErrHabitNotFound
		}

		record.Habits = kept
		delete(record.Counts, habitID)
		record.DeletedHabits = append(record.DeletedHabits, habitID)
		return nil
	})
	return err
}

func (s *HabitService) mutateDay(ctx context.Context, day string, fn func(*domain.HabitDay) error) (*domain.HabitDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	record, ok := log[day]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}

	if err := fn(record); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, log); err != nil {
		return nil, err
	}
	return record, nil
}
