package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
)

const routinesKey = "routines"

// StoreRoutineRepository persists the global routine list under one key and
// each (routine, day) completion record under its own composite key.
type StoreRoutineRepository struct {
	store domain.Store
}

var _ domain.RoutineRepository = (*StoreRoutineRepository)(nil)

func NewStoreRoutineRepository(store domain.Store) *StoreRoutineRepository {
	return &StoreRoutineRepository{store: store}
}

func completionKey(routineID, day string) string {
	return fmt.Sprintf("completion-%s-%s", routineID, day)
}

func (r *StoreRoutineRepository) List(ctx context.Context) ([]*domain.Routine, error) {
	raw, err := r.store.Get(ctx, routinesKey)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return []*domain.Routine{}, nil
		}
		return nil, err
	}

	var routines []*domain.Routine
	if err := json.Unmarshal([]byte(raw), &routines); err != nil {
		return nil, fmt.Errorf("routine repository: corrupt routine list: %w", err)
	}
	return routines, nil
}

func (r *StoreRoutineRepository) SaveAll(ctx context.Context, routines []*domain.Routine) error {
	data, err := json.Marshal(routines)
	if err != nil {
		return fmt.Errorf("routine repository: marshal routine list: %w", err)
	}
	return r.store.Set(ctx, routinesKey, string(data))
}

func (r *StoreRoutineRepository) GetCompletion(ctx context.Context, routineID, day string) (domain.RoutineCompletion, error) {
	raw, err := r.store.Get(ctx, completionKey(routineID, day))
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return domain.RoutineCompletion{}, nil
		}
		return nil, err
	}

	var completion domain.RoutineCompletion
	if err := json.Unmarshal([]byte(raw), &completion); err != nil {
		return nil, fmt.Errorf("routine repository: corrupt completion for %s on %s: %w", routineID, day, err)
	}
	return completion, nil
}

func (r *StoreRoutineRepository) SaveCompletion(ctx context.Context, routineID, day string, completion domain.RoutineCompletion) error {
	data, err := json.Marshal(completion)
	if err != nil {
		return fmt.Errorf("routine repository: marshal completion for %s on %s: %w", routineID, day, err)
	}
	return r.store.Set(ctx, completionKey(routineID, day), string(data))
}
