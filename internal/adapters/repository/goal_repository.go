package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
)

// StoreGoalRepository keeps each day's goal list under the bare day key, with
// counters and notes under side keys. All key construction lives here; absent
// keys read as empty values.
type StoreGoalRepository struct {
	store domain.Store
}

var _ domain.GoalRepository = (*StoreGoalRepository)(nil)

func NewStoreGoalRepository(store domain.Store) *StoreGoalRepository {
	return &StoreGoalRepository{store: store}
}

func dayListKey(day string) string {
	return day
}

func countKey(goalID, day string) string {
	return fmt.Sprintf("count-%s-%s", goalID, day)
}

func noteKey(goalID, day string) string {
	return fmt.Sprintf("note-%s-%s", goalID, day)
}

func (r *StoreGoalRepository) GetDay(ctx context.Context, day string) ([]*domain.GoalInstance, error) {
	raw, err := r.store.Get(ctx, dayListKey(day))
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return []*domain.GoalInstance{}, nil
		}
		return nil, err
	}

	var list []*domain.GoalInstance
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("goal repository: corrupt day list %s: %w", day, err)
	}
	return list, nil
}

func (r *StoreGoalRepository) SaveDay(ctx context.Context, day string, goals []*domain.GoalInstance) error {
	if len(goals) == 0 {
		return r.store.Delete(ctx, dayListKey(day))
	}

	data, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("goal repository: marshal day list %s: %w", day, err)
	}
	return r.store.Set(ctx, dayListKey(day), string(data))
}

func (r *StoreGoalRepository) GetCount(ctx context.Context, goalID, day string) (int, error) {
	raw, err := r.store.Get(ctx, countKey(goalID, day))
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, err
	}

	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("goal repository: corrupt counter for %s on %s: %w", goalID, day, err)
	}
	return count, nil
}

func (r *StoreGoalRepository) SetCount(ctx context.Context, goalID, day string, count int) error {
	return r.store.Set(ctx, countKey(goalID, day), strconv.Itoa(count))
}

func (r *StoreGoalRepository) DeleteCount(ctx context.Context, goalID, day string) error {
	return r.store.Delete(ctx, countKey(goalID, day))
}

func (r *StoreGoalRepository) GetNote(ctx context.Context, goalID, day string) (string, error) {
	raw, err := r.store.Get(ctx, noteKey(goalID, day))
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	return raw, nil
}

func (r *StoreGoalRepository) SetNote(ctx context.Context, goalID, day, note string) error {
	return r.store.Set(ctx, noteKey(goalID, day), note)
}

func (r *StoreGoalRepository) DeleteNote(ctx context.Context, goalID, day string) error {
	return r.store.Delete(ctx, noteKey(goalID, day))
}
