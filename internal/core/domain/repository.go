package domain

import (
	"context"
	"time"
)

// GoalRepository persists per-day goal instance lists plus their counter and
// note side keys. Absent days read as empty lists.
type GoalRepository interface {
	// GetDay retrieves the ordered goal instance list for a day key.
	GetDay(ctx context.Context, day string) ([]*GoalInstance, error)

	// SaveDay replaces the goal instance list for a day key.
	SaveDay(ctx context.Context, day string, goals []*GoalInstance) error

	// GetCount reads a quantifiable goal's counter for a day (0 when unset).
	GetCount(ctx context.Context, goalID, day string) (int, error)

	// SetCount writes a quantifiable goal's counter for a day.
	SetCount(ctx context.Context, goalID string, day string, count int) error

	// DeleteCount removes a goal's counter key for a day.
	DeleteCount(ctx context.Context, goalID, day string) error

	// GetNote reads the free-text note for a goal on a day ("" when unset).
	GetNote(ctx context.Context, goalID, day string) (string, error)

	// SetNote writes the free-text note for a goal on a day.
	SetNote(ctx context.Context, goalID, day, note string) error

	// DeleteNote removes a goal's note key for a day.
	DeleteNote(ctx context.Context, goalID, day string) error
}

// HabitRepository persists the full day-keyed habit log as one document.
type HabitRepository interface {
	// Load retrieves the complete habit log (empty when absent).
	Load(ctx context.Context) (HabitLog, error)

	// Save replaces the complete habit log.
	Save(ctx context.Context, log HabitLog) error
}

// RoutineRepository persists the global routine list and per-(routine, day)
// completion records.
type RoutineRepository interface {
	// List retrieves all routines (empty when absent).
	List(ctx context.Context) ([]*Routine, error)

	// SaveAll replaces the routine list.
	SaveAll(ctx context.Context, routines []*Routine) error

	// GetCompletion reads one routine's completion record for a day
	// (empty when never touched that day).
	GetCompletion(ctx context.Context, routineID, day string) (RoutineCompletion, error)

	// SaveCompletion writes one routine's completion record for a day.
	SaveCompletion(ctx context.Context, routineID, day string, completion RoutineCompletion) error
}

// SnapshotRepository persists per-day ring snapshots.
type SnapshotRepository interface {
	// Get retrieves the snapshot for a day, or nil when none was saved.
	Get(ctx context.Context, day string) (*RingSnapshot, error)

	// Save writes the snapshot for a day.
	Save(ctx context.Context, snapshot *RingSnapshot) error
}

// UserRepository persists owner accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Count(ctx context.Context) (int, error)
	UpdateLastSeen(ctx context.Context, id string, at time.Time) error
}
