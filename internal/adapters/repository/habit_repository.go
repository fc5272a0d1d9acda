package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
)

const allHabitsKey = "allHabits"

// StoreHabitRepository persists the complete day-keyed habit log as one JSON
// document under a single key.
type StoreHabitRepository struct {
	store domain.Store
}

var _ domain.HabitRepository = (*StoreHabitRepository)(nil)

func NewStoreHabitRepository(store domain.Store) *StoreHabitRepository {
	return &StoreHabitRepository{store: store}
}

func (r *StoreHabitRepository) Load(ctx context.Context) (domain.HabitLog, error) {
	raw, err := r.store.Get(ctx, allHabitsKey)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return domain.HabitLog{}, nil
		}
		return nil, err
	}

	var log domain.HabitLog
	if err := json.Unmarshal([]byte(raw), &log); err != nil {
		return nil, fmt.Errorf("habit repository: corrupt habit log: %w", err)
	}
	return log, nil
}

func (r *StoreHabitRepository) Save(ctx context.Context, log domain.HabitLog) error {
	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("habit repository: marshal habit log: %w", err)
	}
	return r.store.Set(ctx, allHabitsKey, string(data))
}
