package domain

import (
	"errors"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/google/uuid"
)

var ErrInvalidPercentage = errors.New("completion percentage must be between 0 and 100")

// DefaultRoutineName is used when a completion is logged without a name.
const DefaultRoutineName = "daily"

// RoutineCompletion records how much of a routine was done on a day.
type RoutineCompletion struct {
	sharedDomain.BaseAggregateRoot
	userID     uuid.UUID
	name       string
	date       time.Time
	percentage int
}

// NewRoutineCompletion logs percentage (0..100) of routine name for date.
func NewRoutineCompletion(userID uuid.UUID, name string, date time.Time, percentage int, now time.Time) (*RoutineCompletion, error) {
	if percentage < 0 || percentage > 100 {
		return nil, ErrInvalidPercentage
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultRoutineName
	}

	r := &RoutineCompletion{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(sharedDomain.NewBaseEntity(now)),
		userID:            userID,
		name:              name,
		date:              date,
		percentage:        percentage,
	}
	r.AddDomainEvent(NewRoutineLogged(r))
	return r, nil
}

// Getters
func (r *RoutineCompletion) UserID() uuid.UUID { return r.userID }
func (r *RoutineCompletion) Name() string      { return r.name }
func (r *RoutineCompletion) Date() time.Time   { return r.date }
func (r *RoutineCompletion) Percentage() int   { return r.percentage }

// IsComplete reports a fully completed routine.
func (r *RoutineCompletion) IsComplete() bool { return r.percentage >= 100 }

// RehydrateRoutineCompletion recreates a completion from persisted state without generating events.
func RehydrateRoutineCompletion(id, userID uuid.UUID, name string, date time.Time, percentage int, createdAt time.Time) *RoutineCompletion {
	return &RoutineCompletion{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(sharedDomain.RehydrateBaseEntity(id, createdAt, createdAt)),
		userID:            userID,
		name:              name,
		date:              date,
		percentage:        percentage,
	}
}
