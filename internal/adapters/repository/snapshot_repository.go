package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
)

// StoreSnapshotRepository persists per-day ring snapshots. Get returns nil
// (not an error) when no snapshot was saved for the day: "never computed" is
// meaningful to the transition evaluator and must stay distinct from a zeroed
// snapshot.
type StoreSnapshotRepository struct {
	store domain.Store
}

var _ domain.SnapshotRepository = (*StoreSnapshotRepository)(nil)

func NewStoreSnapshotRepository(store domain.Store) *StoreSnapshotRepository {
	return &StoreSnapshotRepository{store: store}
}

func snapshotKey(day string) string {
	return fmt.Sprintf("activityRings_%s", day)
}

func (r *StoreSnapshotRepository) Get(ctx context.Context, day string) (*domain.RingSnapshot, error) {
	raw, err := r.store.Get(ctx, snapshotKey(day))
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var snapshot domain.RingSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, fmt.Errorf("snapshot repository: corrupt snapshot for %s: %w", day, err)
	}
	return &snapshot, nil
}

func (r *StoreSnapshotRepository) Save(ctx context.Context, snapshot *domain.RingSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("snapshot repository: marshal snapshot for %s: %w", snapshot.Date, err)
	}
	return r.store.Set(ctx, snapshotKey(snapshot.Date), string(data))
}
