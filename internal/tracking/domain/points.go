package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrUnknownPointsReason = errors.New("unknown points reason")

// PointsReason names the action a Phoenix Points award is for.
type PointsReason string

const (
	ReasonMealLogged       PointsReason = "meal_logged"
	ReasonSupplementTaken  PointsReason = "supplement_taken"
	ReasonStreakDay        PointsReason = "streak_day"
	ReasonJournalWritten   PointsReason = "journal_written"
	ReasonGoalCompleted    PointsReason = "goal_completed"
	ReasonRoutineCompleted PointsReason = "routine_completed"
)

var pointsTable = map[PointsReason]int{
	ReasonMealLogged:       5,
	ReasonSupplementTaken:  2,
	ReasonStreakDay:        10,
	ReasonJournalWritten:   15,
	ReasonGoalCompleted:    20,
	ReasonRoutineCompleted: 10,
}

// PointsFor returns the fixed award for reason.
func PointsFor(reason PointsReason) (int, bool) {
	amount, ok := pointsTable[reason]
	return amount, ok
}

// Award is one entry of the Phoenix Points ledger. Awards are only ever
// added, and at most one exists per source event.
type Award struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Reason        PointsReason
	Amount        int
	SourceEventID uuid.UUID
	AwardedAt     time.Time
}

// NewAward prices reason from the points table.
func NewAward(userID uuid.UUID, reason PointsReason, sourceEventID uuid.UUID, now time.Time) (*Award, error) {
	amount, ok := PointsFor(reason)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPointsReason, reason)
	}
	return &Award{
		ID:            uuid.New(),
		UserID:        userID,
		Reason:        reason,
		Amount:        amount,
		SourceEventID: sourceEventID,
		AwardedAt:     now,
	}, nil
}

// Ledger is a user's points balance with its most recent awards.
type Ledger struct {
	Total  int
	Recent []*Award
}
