// Package memory provides an in-process implementation of the tracking
// repositories. It backs tests and ephemeral sessions.
package memory

import (
	"sync"
	"time"

	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
)

// Store holds every tracking collection in insertion order. Records are kept
// as plain rows and rehydrated on read, so callers never share state with the
// store.
type Store struct {
	mu          sync.RWMutex
	meals       []mealRow
	supplements []supplementRow
	trackers    []trackerRow
	journal     []journalRow
	goals       []goalRow
	routines    []routineRow
	awards      []domain.Award
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Meals returns the store's meal repository.
func (s *Store) Meals() domain.MealRepository { return &MealRepository{store: s} }

// Supplements returns the store's supplement repository.
func (s *Store) Supplements() domain.SupplementRepository {
	return &SupplementRepository{store: s}
}

// Addictions returns the store's addiction tracker repository.
func (s *Store) Addictions() domain.AddictionRepository {
	return &AddictionRepository{store: s}
}

// Journal returns the store's journal repository.
func (s *Store) Journal() domain.JournalRepository { return &JournalRepository{store: s} }

// Goals returns the store's goal repository.
func (s *Store) Goals() domain.GoalRepository { return &GoalRepository{store: s} }

// Routines returns the store's routine repository.
func (s *Store) Routines() domain.RoutineRepository { return &RoutineRepository{store: s} }

// Points returns the store's points ledger.
func (s *Store) Points() domain.PointsRepository { return &PointsRepository{store: s} }

type mealRow struct {
	id          uuid.UUID
	userID      uuid.UUID
	name        string
	mealType    domain.MealType
	nutrition   domain.Nutrition
	ingredients string
	eatenAt     time.Time
	completed   bool
	createdAt   time.Time
	updatedAt   time.Time
}

func mealRowOf(m *domain.Meal) mealRow {
	return mealRow{
		id:          m.ID(),
		userID:      m.UserID(),
		name:        m.Name(),
		mealType:    m.Type(),
		nutrition:   m.Nutrition(),
		ingredients: m.IngredientsText(),
		eatenAt:     m.EatenAt(),
		completed:   m.IsCompleted(),
		createdAt:   m.CreatedAt(),
		updatedAt:   m.UpdatedAt(),
	}
}

func (r mealRow) toDomain() *domain.Meal {
	return domain.RehydrateMeal(r.id, r.userID, r.name, r.mealType, r.nutrition, r.ingredients, r.eatenAt, r.completed, r.createdAt, r.updatedAt)
}

type supplementRow struct {
	id          uuid.UUID
	userID      uuid.UUID
	name        string
	dosage      string
	timeOfDay   domain.TimeOfDay
	takenToday  bool
	lastTakenAt *time.Time
	history     domain.WeeklyHistory
	createdAt   time.Time
	updatedAt   time.Time
}

func supplementRowOf(s *domain.Supplement) supplementRow {
	return supplementRow{
		id:          s.ID(),
		userID:      s.UserID(),
		name:        s.Name(),
		dosage:      s.Dosage(),
		timeOfDay:   s.TimeOfDay(),
		takenToday:  s.TakenToday(),
		lastTakenAt: copyTime(s.LastTakenAt()),
		history:     s.History(),
		createdAt:   s.CreatedAt(),
		updatedAt:   s.UpdatedAt(),
	}
}

func (r supplementRow) toDomain() *domain.Supplement {
	return domain.RehydrateSupplement(r.id, r.userID, r.name, r.dosage, r.timeOfDay, r.takenToday, copyTime(r.lastTakenAt), r.history, r.createdAt, r.updatedAt)
}

type trackerRow struct {
	id          uuid.UUID
	userID      uuid.UUID
	name        string
	lastReset   time.Time
	lastCheckIn *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func trackerRowOf(t *domain.AddictionTracker) trackerRow {
	return trackerRow{
		id:          t.ID(),
		userID:      t.UserID(),
		name:        t.Name(),
		lastReset:   t.LastReset(),
		lastCheckIn: copyTime(t.LastCheckIn()),
		createdAt:   t.CreatedAt(),
		updatedAt:   t.UpdatedAt(),
	}
}

func (r trackerRow) toDomain() *domain.AddictionTracker {
	return domain.RehydrateAddictionTracker(r.id, r.userID, r.name, r.lastReset, copyTime(r.lastCheckIn), r.createdAt, r.updatedAt)
}

type journalRow struct {
	id         uuid.UUID
	userID     uuid.UUID
	date       time.Time
	mood       domain.Mood
	reflection string
	triggers   string
	createdAt  time.Time
	updatedAt  time.Time
}

func journalRowOf(j *domain.JournalEntry) journalRow {
	return journalRow{
		id:         j.ID(),
		userID:     j.UserID(),
		date:       j.Date(),
		mood:       j.Mood(),
		reflection: j.Reflection(),
		triggers:   j.Triggers(),
		createdAt:  j.CreatedAt(),
		updatedAt:  j.UpdatedAt(),
	}
}

func (r journalRow) toDomain() *domain.JournalEntry {
	return domain.RehydrateJournalEntry(r.id, r.userID, r.date, r.mood, r.reflection, r.triggers, r.createdAt, r.updatedAt)
}

type goalRow struct {
	id          uuid.UUID
	userID      uuid.UUID
	title       string
	completed   bool
	startedAt   *time.Time
	completedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func goalRowOf(g *domain.Goal) goalRow {
	return goalRow{
		id:          g.ID(),
		userID:      g.UserID(),
		title:       g.Title(),
		completed:   g.IsCompleted(),
		startedAt:   copyTime(g.StartedAt()),
		completedAt: copyTime(g.CompletedAt()),
		createdAt:   g.CreatedAt(),
		updatedAt:   g.UpdatedAt(),
	}
}

func (r goalRow) toDomain() *domain.Goal {
	return domain.RehydrateGoal(r.id, r.userID, r.title, r.completed, copyTime(r.startedAt), copyTime(r.completedAt), r.createdAt, r.updatedAt)
}

type routineRow struct {
	id         uuid.UUID
	userID     uuid.UUID
	name       string
	date       time.Time
	percentage int
	createdAt  time.Time
}

func routineRowOf(r *domain.RoutineCompletion) routineRow {
	return routineRow{
		id:         r.ID(),
		userID:     r.UserID(),
		name:       r.Name(),
		date:       r.Date(),
		percentage: r.Percentage(),
		createdAt:  r.CreatedAt(),
	}
}

func (r routineRow) toDomain() *domain.RoutineCompletion {
	return domain.RehydrateRoutineCompletion(r.id, r.userID, r.name, r.date, r.percentage, r.createdAt)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
