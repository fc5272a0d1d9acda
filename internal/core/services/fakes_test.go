package services

import (
	"context"
	"fmt"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
)

// In-memory fakes mirroring the store-backed repositories' absence-is-empty
// behavior, so service tests exercise real read-modify-write cycles.

type fakeGoalRepo struct {
	days   map[string][]*domain.GoalInstance
	counts map[string]int
	notes  map[string]string
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{
		days:   make(map[string][]*domain.GoalInstance),
		counts: make(map[string]int),
		notes:  make(map[string]string),
	}
}

func sideKey(goalID, day string) string {
	return fmt.Sprintf("%s-%s", goalID, day)
}

func (r *fakeGoalRepo) GetDay(ctx context.Context, day string) ([]*domain.GoalInstance, error) {
	return r.days[day], nil
}

func (r *fakeGoalRepo) SaveDay(ctx context.Context, day string, goals []*domain.GoalInstance) error {
	r.days[day] = goals
	return nil
}

func (r *fakeGoalRepo) GetCount(ctx context.Context, goalID, day string) (int, error) {
	return r.counts[sideKey(goalID, day)], nil
}

func (r *fakeGoalRepo) SetCount(ctx context.Context, goalID string, day string, count int) error {
	r.counts[sideKey(goalID, day)] = count
	return nil
}

func (r *fakeGoalRepo) DeleteCount(ctx context.Context, goalID, day string) error {
	delete(r.counts, sideKey(goalID, day))
	return nil
}

func (r *fakeGoalRepo) GetNote(ctx context.Context, goalID, day string) (string, error) {
	return r.notes[sideKey(goalID, day)], nil
}

func (r *fakeGoalRepo) SetNote(ctx context.Context, goalID, day, note string) error {
	r.notes[sideKey(goalID, day)] = note
	return nil
}

func (r *fakeGoalRepo) DeleteNote(ctx context.Context, goalID, day string) error {
	delete(r.notes, sideKey(goalID, day))
	return nil
}

type fakeHabitRepo struct {
	log domain.HabitLog
}

func newFakeHabitRepo() *fakeHabitRepo {
	return &fakeHabitRepo{log: domain.HabitLog{}}
}

func (r *fakeHabitRepo) Load(ctx context.Context) (domain.HabitLog, error) {
	return r.log, nil
}

func (r *fakeHabitRepo) Save(ctx context.Context, log domain.HabitLog) error {
	r.log = log
	return nil
}

type fakeRoutineRepo struct {
	routines    []*domain.Routine
	completions map[string]domain.RoutineCompletion
}

func newFakeRoutineRepo() *fakeRoutineRepo {
	return &fakeRoutineRepo{completions: make(map[string]domain.RoutineCompletion)}
}

func (r *fakeRoutineRepo) List(ctx context.Context) ([]*domain.Routine, error) {
	return r.routines, nil
}

func (r *fakeRoutineRepo) SaveAll(ctx context.Context, routines []*domain.Routine) error {
	r.routines = routines
	return nil
}

func (r *fakeRoutineRepo) GetCompletion(ctx context.Context, routineID, day string) (domain.RoutineCompletion, error) {
	if c, ok := r.completions[sideKey(routineID, day)]; ok {
		return c, nil
	}
	return domain.RoutineCompletion{}, nil
}

func (r *fakeRoutineRepo) SaveCompletion(ctx context.Context, routineID, day string, completion domain.RoutineCompletion) error {
	r.completions[sideKey(routineID, day)] = completion
	return nil
}

type fakeSnapshotRepo struct {
	snapshots map[string]*domain.RingSnapshot
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{snapshots: make(map[string]*domain.RingSnapshot)}
}

func (r *fakeSnapshotRepo) Get(ctx context.Context, day string) (*domain.RingSnapshot, error) {
	return r.snapshots[day], nil
}

func (r *fakeSnapshotRepo) Save(ctx context.Context, snapshot *domain.RingSnapshot) error {
	r.snapshots[snapshot.Date] = snapshot
	return nil
}

type fakeDispatcher struct {
	sent []domain.Notification
}

func (d *fakeDispatcher) Enqueue(n domain.Notification) {
	d.sent = append(d.sent, n)
}
