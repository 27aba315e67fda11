package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Lookups by ID return (nil, nil) when nothing matches. List methods return
// records in insertion order.

// MealRepository persists meals.
type MealRepository interface {
	Save(ctx context.Context, meal *Meal) error
	FindByID(ctx context.Context, id uuid.UUID) (*Meal, error)
	// FindSince returns meals eaten at or after since, oldest first.
	FindSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*Meal, error)
}

// SupplementRepository persists supplements.
type SupplementRepository interface {
	Save(ctx context.Context, supplement *Supplement) error
	FindByID(ctx context.Context, id uuid.UUID) (*Supplement, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Supplement, error)
	// FindAll returns every user's supplements. Scheduled resets use it.
	FindAll(ctx context.Context) ([]*Supplement, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AddictionRepository persists addiction trackers.
type AddictionRepository interface {
	Save(ctx context.Context, tracker *AddictionTracker) error
	FindByID(ctx context.Context, id uuid.UUID) (*AddictionTracker, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*AddictionTracker, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// JournalRepository persists journal entries.
type JournalRepository interface {
	Save(ctx context.Context, entry *JournalEntry) error
	FindSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*JournalEntry, error)
}

// GoalRepository persists goals.
type GoalRepository interface {
	Save(ctx context.Context, goal *Goal) error
	FindByID(ctx context.Context, id uuid.UUID) (*Goal, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Goal, error)
}

// RoutineRepository persists routine completions.
type RoutineRepository interface {
	Save(ctx context.Context, completion *RoutineCompletion) error
	FindSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*RoutineCompletion, error)
}

// PointsRepository is the append-only Phoenix Points ledger.
type PointsRepository interface {
	// Add stores award unless one exists for its source event. It reports
	// whether the award was stored.
	Add(ctx context.Context, award *Award) (bool, error)
	Total(ctx context.Context, userID uuid.UUID) (int, error)
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*Award, error)
}
