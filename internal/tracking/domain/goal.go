package domain

import (
	"errors"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrGoalNotFound         = errors.New("goal not found")
	ErrGoalEmptyTitle       = errors.New("goal title cannot be empty")
	ErrGoalAlreadyCompleted = errors.New("goal already completed")
)

// Goal is a personal goal that can be completed once.
type Goal struct {
	sharedDomain.BaseAggregateRoot
	userID      uuid.UUID
	title       string
	completed   bool
	startedAt   *time.Time
	completedAt *time.Time
}

// NewGoal creates a goal. startedAt is optional; goals without it are left
// out of time-of-day analysis.
func NewGoal(userID uuid.UUID, title string, startedAt *time.Time, now time.Time) (*Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrGoalEmptyTitle
	}

	g := &Goal{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(sharedDomain.NewBaseEntity(now)),
		userID:            userID,
		title:             title,
		startedAt:         startedAt,
	}
	g.AddDomainEvent(NewGoalCreated(g))
	return g, nil
}

// Getters
func (g *Goal) UserID() uuid.UUID       { return g.userID }
func (g *Goal) Title() string           { return g.title }
func (g *Goal) IsCompleted() bool       { return g.completed }
func (g *Goal) StartedAt() *time.Time   { return g.startedAt }
func (g *Goal) CompletedAt() *time.Time { return g.completedAt }

// Complete marks the goal as done at now.
func (g *Goal) Complete(now time.Time) error {
	if g.completed {
		return ErrGoalAlreadyCompleted
	}
	done := now
	g.completed = true
	g.completedAt = &done
	g.Touch(now)
	g.AddDomainEvent(NewGoalCompleted(g))
	return nil
}

// RehydrateGoal recreates a goal from persisted state without generating events.
func RehydrateGoal(
	id uuid.UUID,
	userID uuid.UUID,
	title string,
	completed bool,
	startedAt *time.Time,
	completedAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) *Goal {
	return &Goal{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		userID:            userID,
		title:             title,
		completed:         completed,
		startedAt:         startedAt,
		completedAt:       completedAt,
	}
}
