package services

import (
	"context"
	"fmt"
	"time"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
)

// NotificationDispatcher is the fire-and-forget outlet for ring-closure
// notifications. Satisfied by workers.NotifierWorker.
type NotificationDispatcher interface {
	Enqueue(n domain.Notification)
}

// RingsService aggregates a day's three record families into ring stats and
// detects closure transitions against the previously stored snapshot.
type RingsService struct {
	goals      domain.GoalRepository
	habits     domain.HabitRepository
	routines   domain.RoutineRepository
	snapshots  domain.SnapshotRepository
	dispatcher NotificationDispatcher
}

func NewRingsService(
	goals domain.GoalRepository,
	habits domain.HabitRepository,
	routines domain.RoutineRepository,
	snapshots domain.SnapshotRepository,
	dispatcher NotificationDispatcher,
) *RingsService {
	return &RingsService{
		goals:      goals,
		habits:     habits,
		routines:   routines,
		snapshots:  snapshots,
		dispatcher: dispatcher,
	}
}

// ComputeDay aggregates the day's scheduled goals, habits, and applicable
// routines into ring stats. It only reads: absent records count as nothing
// scheduled.
func (s *RingsService) ComputeDay(ctx context.Context, day string) (*domain.RingSnapshot, error) {
	dayTime, err := domain.ParseDayKey(day)
	if err != nil {
		return nil, err
	}

	goals, err := s.computeGoals(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("rings: aggregating goals for %s: %w", day, err)
	}

	habits, err := s.computeHabits(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("rings: aggregating habits for %s: %w", day, err)
	}

	routines, err := s.computeRoutines(ctx, day, dayTime)
	if err != nil {
		return nil, fmt.Errorf("rings: aggregating routines for %s: %w", day, err)
	}

	return &domain.RingSnapshot{
		Date:           day,
		Goals:          goals,
		Habits:         habits,
		Routines:       routines,
		AllRingsClosed: domain.AllClosed(goals, habits, routines),
	}, nil
}

// Snapshot returns the stored snapshot for a day, recomputing when none was
// saved yet. The recomputed value is not persisted; only Refresh writes.
func (s *RingsService) Snapshot(ctx context.Context, day string) (*domain.RingSnapshot, error) {
	stored, err := s.snapshots.Get(ctx, day)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		return stored, nil
	}
	return s.ComputeDay(ctx, day)
}

// Refresh recomputes a day's rings, compares against the stored snapshot,
// persists the new one, and dispatches a notification for every ring that
// just closed. Returns the new snapshot and the detected transitions.
func (s *RingsService) Refresh(ctx context.Context, day string) (*domain.RingSnapshot, domain.RingTransitions, error) {
	current, err := s.ComputeDay(ctx, day)
	if err != nil {
		return nil, domain.RingTransitions{}, err
	}

	previous, err := s.snapshots.Get(ctx, day)
	if err != nil {
		return nil, domain.RingTransitions{}, err
	}

	transitions := domain.DetectTransitions(current, previous)

	if err := s.snapshots.Save(ctx, current); err != nil {
		return nil, domain.RingTransitions{}, err
	}

	if s.dispatcher != nil {
		s.dispatch(transitions)
	}

	return current, transitions, nil
}

func (s *RingsService) dispatch(t domain.RingTransitions) {
	if t.Goals {
		s.dispatcher.Enqueue(domain.Notification{
			Title: "Goals ring closed",
			Body:  "Every goal for today is done. Nice work.",
		})
	}
	if t.Habits {
		s.dispatcher.Enqueue(domain.Notification{
			Title: "Habits ring closed",
			Body:  "All habit targets hit for today.",
		})
	}
	if t.Routines {
		s.dispatcher.Enqueue(domain.Notification{
			Title: "Routines ring closed",
			Body:  "Every routine step for today is checked off.",
		})
	}
	if t.All {
		s.dispatcher.Enqueue(domain.Notification{
			Title: "All rings closed",
			Body:  "Goals, habits, and routines: a full day.",
		})
	}
}

// computeGoals counts true goal instances only; habit-shaped entries in the
// same day list are excluded. Quantifiable goals complete off the counter.
func (s *RingsService) computeGoals(ctx context.Context, day string) (domain.RingStat, error) {
	list, err := s.goals.GetDay(ctx, day)
	if err != nil {
		return domain.RingStat{}, err
	}

	var stat domain.RingStat
	for _, g := range list {
		if g.IsHabitEntry() {
			continue
		}
		stat.Total++
		if g.IsComplete() {
			stat.Completed++
		}
	}
	if stat.Total > 0 {
		stat.Percentage = float64(stat.Completed) / float64(stat.Total)
	}
	return stat, nil
}

// computeHabits counts habits for Completed/Total but weights Percentage by
// units: a habit contributes min(count,target) of target units, so a
// target-30 habit at 10 adds (10,30), not (0,1).
func (s *RingsService) computeHabits(ctx context.Context, day string) (domain.RingStat, error) {
	log, err := s.habits.Load(ctx)
	if err != nil {
		return domain.RingStat{}, err
	}

	record, ok := log[day]
	if !ok {
		return domain.RingStat{}, nil
	}

	var stat domain.RingStat
	completedUnits, totalUnits := 0, 0

	for _, h := range record.Habits {
		count := record.Counts[h.ID]

		stat.Total++
		if count >= h.Target {
			stat.Completed++
		}

		done := count
		if done > h.Target {
			done = h.Target
		}
		completedUnits += done
		totalUnits += h.Target
	}

	if totalUnits > 0 {
		stat.Percentage = float64(completedUnits) / float64(totalUnits)
	}
	return stat, nil
}

// computeRoutines sums task counts across routines applicable to the day's
// weekday/weekend status. Routines never touched that day contribute zero
// completed tasks.
func (s *RingsService) computeRoutines(ctx context.Context, day string, dayTime time.Time) (domain.RingStat, error) {
	routines, err := s.routines.List(ctx)
	if err != nil {
		return domain.RingStat{}, err
	}

	var stat domain.RingStat
	for _, r := range routines {
		if !r.AppliesTo(dayTime) {
			continue
		}

		stat.Total += len(r.Tasks)

		completion, err := s.routines.GetCompletion(ctx, r.ID, day)
		if err != nil {
			return domain.RingStat{}, err
		}
		stat.Completed += completion.CompletedCount(r)
	}

	if stat.Total > 0 {
		stat.Percentage = float64(stat.Completed) / float64(stat.Total)
	}
	return stat, nil
}
