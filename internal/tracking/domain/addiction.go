package domain

import (
	"errors"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrAddictionNotFound  = errors.New("addiction tracker not found")
	ErrAddictionEmptyName = errors.New("addiction tracker name cannot be empty")
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
)

// AddictionTracker counts clean days since the last reset.
type AddictionTracker struct {
	sharedDomain.BaseAggregateRoot
	userID      uuid.UUID
	name        string
	lastReset   time.Time
	lastCheckIn *time.Time
}

// NewAddictionTracker starts tracking from startedAt, which may lie in the
// past when the user quit before installing.
func NewAddictionTracker(userID uuid.UUID, name string, startedAt, now time.Time) (*AddictionTracker, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrAddictionEmptyName
	}

	t := &AddictionTracker{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(sharedDomain.NewBaseEntity(now)),
		userID:            userID,
		name:              name,
		lastReset:         startedAt,
	}
	t.AddDomainEvent(NewAddictionStarted(t))
	return t, nil
}

// Getters
func (t *AddictionTracker) UserID() uuid.UUID       { return t.userID }
func (t *AddictionTracker) Name() string            { return t.name }
func (t *AddictionTracker) LastReset() time.Time    { return t.lastReset }
func (t *AddictionTracker) LastCheckIn() *time.Time { return t.lastCheckIn }

// Reset restarts the streak at now. The previous streak is not retained.
func (t *AddictionTracker) Reset(now time.Time) {
	previous := t.lastReset
	t.lastReset = now
	t.lastCheckIn = nil
	t.Touch(now)
	t.AddDomainEvent(NewAddictionReset(t, previous))
}

// CheckIn confirms another clean day. One check-in per calendar day.
func (t *AddictionTracker) CheckIn(now time.Time) error {
	if t.lastCheckIn != nil && sharedDomain.SameDay(now, *t.lastCheckIn) {
		return ErrAlreadyCheckedIn
	}
	checkedIn := now
	t.lastCheckIn = &checkedIn
	t.Touch(now)
	t.AddDomainEvent(NewStreakCheckedIn(t, now))
	return nil
}

// MarkDeleted records the removal of the tracker.
func (t *AddictionTracker) MarkDeleted(now time.Time) {
	t.Touch(now)
	t.AddDomainEvent(NewAddictionDeleted(t, now))
}

// RehydrateAddictionTracker recreates a tracker from persisted state without generating events.
func RehydrateAddictionTracker(
	id uuid.UUID,
	userID uuid.UUID,
	name string,
	lastReset time.Time,
	lastCheckIn *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) *AddictionTracker {
	return &AddictionTracker{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		userID:            userID,
		name:              name,
		lastReset:         lastReset,
		lastCheckIn:       lastCheckIn,
	}
}
