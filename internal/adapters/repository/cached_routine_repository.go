package repository

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
)

const routineCacheKey = "cache:routines"

var _ domain.RoutineRepository = (*CachedRoutineRepository)(nil)

// CachedRoutineRepository is a cache-aside decorator over any routine
// repository. The routine list is read on nearly every request (day views,
// ring aggregation) and rarely written, so it caches well; per-day completion
// records change constantly and pass straight through.
type CachedRoutineRepository struct {
	next  domain.RoutineRepository
	cache *redis.Client
}

func NewCachedRoutineRepository(next domain.RoutineRepository, cache *redis.Client) *CachedRoutineRepository {
	return &CachedRoutineRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedRoutineRepository) invalidate(ctx context.Context) {
	if err := r.cache.Del(ctx, routineCacheKey).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate routine list: %v", err)
	}
}

func (r *CachedRoutineRepository) List(ctx context.Context) ([]*domain.Routine, error) {
	val, err := r.cache.Get(ctx, routineCacheKey).Result()
	if err == nil {
		var routines []*domain.Routine
		if err := json.Unmarshal([]byte(val), &routines); err == nil {
			return routines, nil
		}

		log.Printf("[CACHE] Corrupted routine list, cleaning up key")
		r.cache.Del(ctx, routineCacheKey)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	routines, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(routines); err == nil {
		if setErr := r.cache.Set(ctx, routineCacheKey, data, 30*time.Minute).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return routines, nil
}

func (r *CachedRoutineRepository) SaveAll(ctx context.Context, routines []*domain.Routine) error {
	if err := r.next.SaveAll(ctx, routines); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedRoutineRepository) GetCompletion(ctx context.Context, routineID, day string) (domain.RoutineCompletion, error) {
	return r.next.GetCompletion(ctx, routineID, day)
}

func (r *CachedRoutineRepository) SaveCompletion(ctx context.Context, routineID, day string, completion domain.RoutineCompletion) error {
	return r.next.SaveCompletion(ctx, routineID, day, completion)
}
