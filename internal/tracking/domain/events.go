package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/google/uuid"
)

// Aggregate types.
const (
	AggregateMeal       = "Meal"
	AggregateSupplement = "Supplement"
	AggregateAddiction  = "AddictionTracker"
	AggregateJournal    = "JournalEntry"
	AggregateGoal       = "Goal"
	AggregateRoutine    = "RoutineCompletion"
)

// Routing keys.
const (
	RoutingMealLogged        = "tracking.meal.logged"
	RoutingSupplementAdded   = "tracking.supplement.added"
	RoutingSupplementTaken   = "tracking.supplement.taken"
	RoutingSupplementDeleted = "tracking.supplement.deleted"
	RoutingAddictionStarted  = "tracking.addiction.started"
	RoutingAddictionReset    = "tracking.addiction.reset"
	RoutingStreakCheckedIn   = "tracking.addiction.checked_in"
	RoutingAddictionDeleted  = "tracking.addiction.deleted"
	RoutingJournalWritten    = "tracking.journal.written"
	RoutingGoalCreated       = "tracking.goal.created"
	RoutingGoalCompleted     = "tracking.goal.completed"
	RoutingRoutineLogged     = "tracking.routine.logged"
)

// MealLogged is emitted when a meal is logged.
type MealLogged struct {
	sharedDomain.BaseEvent
	MealID   uuid.UUID `json:"meal_id"`
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	MealType string    `json:"meal_type"`
	Calories int       `json:"calories"`
	EatenAt  time.Time `json:"eaten_at"`
}

// NewMealLogged creates a MealLogged event.
func NewMealLogged(m *Meal) *MealLogged {
	return &MealLogged{
		BaseEvent: sharedDomain.NewBaseEvent(m.ID(), AggregateMeal, RoutingMealLogged, m.CreatedAt()),
		MealID:    m.ID(),
		UserID:    m.UserID(),
		Name:      m.Name(),
		MealType:  string(m.Type()),
		Calories:  m.Nutrition().Calories,
		EatenAt:   m.EatenAt(),
	}
}

// SupplementAdded is emitted when a supplement is scheduled.
type SupplementAdded struct {
	sharedDomain.BaseEvent
	SupplementID uuid.UUID `json:"supplement_id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	TimeOfDay    string    `json:"time_of_day"`
}

// NewSupplementAdded creates a SupplementAdded event.
func NewSupplementAdded(s *Supplement) *SupplementAdded {
	return &SupplementAdded{
		BaseEvent:    sharedDomain.NewBaseEvent(s.ID(), AggregateSupplement, RoutingSupplementAdded, s.CreatedAt()),
		SupplementID: s.ID(),
		UserID:       s.UserID(),
		Name:         s.Name(),
		TimeOfDay:    string(s.TimeOfDay()),
	}
}

// SupplementTaken is emitted when a supplement is taken.
type SupplementTaken struct {
	sharedDomain.BaseEvent
	SupplementID uuid.UUID `json:"supplement_id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	TakenAt      time.Time `json:"taken_at"`
	Weekday      int       `json:"weekday"`
}

// NewSupplementTaken creates a SupplementTaken event.
func NewSupplementTaken(s *Supplement, takenAt time.Time) *SupplementTaken {
	return &SupplementTaken{
		BaseEvent:    sharedDomain.NewBaseEvent(s.ID(), AggregateSupplement, RoutingSupplementTaken, takenAt),
		SupplementID: s.ID(),
		UserID:       s.UserID(),
		Name:         s.Name(),
		TakenAt:      takenAt,
		Weekday:      int(takenAt.Weekday()),
	}
}

// SupplementDeleted is emitted when a supplement is removed.
type SupplementDeleted struct {
	sharedDomain.BaseEvent
	SupplementID uuid.UUID `json:"supplement_id"`
	UserID       uuid.UUID `json:"user_id"`
}

// NewSupplementDeleted creates a SupplementDeleted event.
func NewSupplementDeleted(s *Supplement, at time.Time) *SupplementDeleted {
	return &SupplementDeleted{
		BaseEvent:    sharedDomain.NewBaseEvent(s.ID(), AggregateSupplement, RoutingSupplementDeleted, at),
		SupplementID: s.ID(),
		UserID:       s.UserID(),
	}
}

// AddictionStarted is emitted when a tracker is created.
type AddictionStarted struct {
	sharedDomain.BaseEvent
	TrackerID uuid.UUID `json:"tracker_id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	StartedAt time.Time `json:"started_at"`
}

// NewAddictionStarted creates an AddictionStarted event.
func NewAddictionStarted(t *AddictionTracker) *AddictionStarted {
	return &AddictionStarted{
		BaseEvent: sharedDomain.NewBaseEvent(t.ID(), AggregateAddiction, RoutingAddictionStarted, t.CreatedAt()),
		TrackerID: t.ID(),
		UserID:    t.UserID(),
		Name:      t.Name(),
		StartedAt: t.LastReset(),
	}
}

// AddictionReset is emitted when a streak is restarted.
type AddictionReset struct {
	sharedDomain.BaseEvent
	TrackerID     uuid.UUID `json:"tracker_id"`
	UserID        uuid.UUID `json:"user_id"`
	Name          string    `json:"name"`
	PreviousReset time.Time `json:"previous_reset"`
	ResetAt       time.Time `json:"reset_at"`
}

// NewAddictionReset creates an AddictionReset event.
func NewAddictionReset(t *AddictionTracker, previous time.Time) *AddictionReset {
	return &AddictionReset{
		BaseEvent:     sharedDomain.NewBaseEvent(t.ID(), AggregateAddiction, RoutingAddictionReset, t.LastReset()),
		TrackerID:     t.ID(),
		UserID:        t.UserID(),
		Name:          t.Name(),
		PreviousReset: previous,
		ResetAt:       t.LastReset(),
	}
}

// StreakCheckedIn is emitted on a daily clean-day confirmation.
type StreakCheckedIn struct {
	sharedDomain.BaseEvent
	TrackerID   uuid.UUID `json:"tracker_id"`
	UserID      uuid.UUID `json:"user_id"`
	LastReset   time.Time `json:"last_reset"`
	CheckedInAt time.Time `json:"checked_in_at"`
}

// NewStreakCheckedIn creates a StreakCheckedIn event.
func NewStreakCheckedIn(t *AddictionTracker, at time.Time) *StreakCheckedIn {
	return &StreakCheckedIn{
		BaseEvent:   sharedDomain.NewBaseEvent(t.ID(), AggregateAddiction, RoutingStreakCheckedIn, at),
		TrackerID:   t.ID(),
		UserID:      t.UserID(),
		LastReset:   t.LastReset(),
		CheckedInAt: at,
	}
}

// AddictionDeleted is emitted when a tracker is removed.
type AddictionDeleted struct {
	sharedDomain.BaseEvent
	TrackerID uuid.UUID `json:"tracker_id"`
	UserID    uuid.UUID `json:"user_id"`
}

// NewAddictionDeleted creates an AddictionDeleted event.
func NewAddictionDeleted(t *AddictionTracker, at time.Time) *AddictionDeleted {
	return &AddictionDeleted{
		BaseEvent: sharedDomain.NewBaseEvent(t.ID(), AggregateAddiction, RoutingAddictionDeleted, at),
		TrackerID: t.ID(),
		UserID:    t.UserID(),
	}
}

// JournalWritten is emitted when a journal entry is written.
type JournalWritten struct {
	sharedDomain.BaseEvent
	EntryID uuid.UUID `json:"entry_id"`
	UserID  uuid.UUID `json:"user_id"`
	Mood    string    `json:"mood"`
	Date    time.Time `json:"date"`
}

// NewJournalWritten creates a JournalWritten event.
func NewJournalWritten(j *JournalEntry) *JournalWritten {
	return &JournalWritten{
		BaseEvent: sharedDomain.NewBaseEvent(j.ID(), AggregateJournal, RoutingJournalWritten, j.CreatedAt()),
		EntryID:   j.ID(),
		UserID:    j.UserID(),
		Mood:      string(j.Mood()),
		Date:      j.Date(),
	}
}

// GoalCreated is emitted when a goal is created.
type GoalCreated struct {
	sharedDomain.BaseEvent
	GoalID uuid.UUID `json:"goal_id"`
	UserID uuid.UUID `json:"user_id"`
	Title  string    `json:"title"`
}

// NewGoalCreated creates a GoalCreated event.
func NewGoalCreated(g *Goal) *GoalCreated {
	return &GoalCreated{
		BaseEvent: sharedDomain.NewBaseEvent(g.ID(), AggregateGoal, RoutingGoalCreated, g.CreatedAt()),
		GoalID:    g.ID(),
		UserID:    g.UserID(),
		Title:     g.Title(),
	}
}

// GoalCompleted is emitted when a goal is completed.
type GoalCompleted struct {
	sharedDomain.BaseEvent
	GoalID      uuid.UUID `json:"goal_id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	CompletedAt time.Time `json:"completed_at"`
}

// NewGoalCompleted creates a GoalCompleted event.
func NewGoalCompleted(g *Goal) *GoalCompleted {
	completedAt := g.UpdatedAt()
	if g.CompletedAt() != nil {
		completedAt = *g.CompletedAt()
	}
	return &GoalCompleted{
		BaseEvent:   sharedDomain.NewBaseEvent(g.ID(), AggregateGoal, RoutingGoalCompleted, completedAt),
		GoalID:      g.ID(),
		UserID:      g.UserID(),
		Title:       g.Title(),
		CompletedAt: completedAt,
	}
}

// RoutineLogged is emitted when a routine completion is logged.
type RoutineLogged struct {
	sharedDomain.BaseEvent
	CompletionID uuid.UUID `json:"completion_id"`
	UserID       uuid.UUID `json:"user_id"`
	Routine      string    `json:"routine"`
	Percentage   int       `json:"percentage"`
	Date         time.Time `json:"date"`
}

// NewRoutineLogged creates a RoutineLogged event.
func NewRoutineLogged(r *RoutineCompletion) *RoutineLogged {
	return &RoutineLogged{
		BaseEvent:    sharedDomain.NewBaseEvent(r.ID(), AggregateRoutine, RoutingRoutineLogged, r.CreatedAt()),
		CompletionID: r.ID(),
		UserID:       r.UserID(),
		Routine:      r.Name(),
		Percentage:   r.Percentage(),
		Date:         r.Date(),
	}
}
