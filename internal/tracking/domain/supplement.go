package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrSupplementNotFound     = errors.New("supplement not found")
	ErrSupplementEmptyName    = errors.New("supplement name cannot be empty")
	ErrSupplementInvalidTime  = errors.New("invalid supplement time of day")
	ErrSupplementAlreadyTaken = errors.New("supplement already taken today")
	ErrInvalidWeeklyHistory   = errors.New("weekly history must be 7 characters of 0 or 1")
)

// TimeOfDay is when a supplement is scheduled.
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
)

// IsValid checks if the time of day is known.
func (t TimeOfDay) IsValid() bool {
	switch t {
	case TimeMorning, TimeAfternoon, TimeEvening:
		return true
	default:
		return false
	}
}

// WeeklyHistory records which weekdays a supplement was taken, indexed by
// time.Weekday (Sunday = 0).
type WeeklyHistory [7]bool

func validWeekday(d time.Weekday) bool {
	return d >= time.Sunday && d <= time.Saturday
}

// Taken reports whether d is marked. Out-of-range weekdays read as false.
func (h WeeklyHistory) Taken(d time.Weekday) bool {
	if !validWeekday(d) {
		return false
	}
	return h[d]
}

// Mark sets d. Out-of-range weekdays are ignored.
func (h *WeeklyHistory) Mark(d time.Weekday) {
	if !validWeekday(d) {
		return
	}
	h[d] = true
}

// Count returns the number of marked weekdays.
func (h WeeklyHistory) Count() int {
	n := 0
	for _, taken := range h {
		if taken {
			n++
		}
	}
	return n
}

// String encodes the history as seven 0/1 characters starting on Sunday.
func (h WeeklyHistory) String() string {
	var b strings.Builder
	for _, taken := range h {
		if taken {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// ParseWeeklyHistory decodes the String form.
func ParseWeeklyHistory(s string) (WeeklyHistory, error) {
	var h WeeklyHistory
	if len(s) != len(h) {
		return h, fmt.Errorf("%w: %q", ErrInvalidWeeklyHistory, s)
	}
	for i := range h {
		switch s[i] {
		case '1':
			h[i] = true
		case '0':
		default:
			return WeeklyHistory{}, fmt.Errorf("%w: %q", ErrInvalidWeeklyHistory, s)
		}
	}
	return h, nil
}

// Supplement is a scheduled supplement with its current week of intake.
type Supplement struct {
	sharedDomain.BaseAggregateRoot
	userID      uuid.UUID
	name        string
	dosage      string
	timeOfDay   TimeOfDay
	takenToday  bool
	lastTakenAt *time.Time
	history     WeeklyHistory
}

// NewSupplement adds a supplement to the user's schedule.
func NewSupplement(userID uuid.UUID, name, dosage string, timeOfDay TimeOfDay, now time.Time) (*Supplement, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrSupplementEmptyName
	}
	if !timeOfDay.IsValid() {
		return nil, ErrSupplementInvalidTime
	}

	s := &Supplement{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(sharedDomain.NewBaseEntity(now)),
		userID:            userID,
		name:              name,
		dosage:            strings.TrimSpace(dosage),
		timeOfDay:         timeOfDay,
	}
	s.AddDomainEvent(NewSupplementAdded(s))
	return s, nil
}

// Getters
func (s *Supplement) UserID() uuid.UUID       { return s.userID }
func (s *Supplement) Name() string            { return s.name }
func (s *Supplement) Dosage() string          { return s.dosage }
func (s *Supplement) TimeOfDay() TimeOfDay    { return s.timeOfDay }
func (s *Supplement) TakenToday() bool        { return s.takenToday }
func (s *Supplement) LastTakenAt() *time.Time { return s.lastTakenAt }
func (s *Supplement) History() WeeklyHistory  { return s.history }

// IsTakenOn reports whether the taken-today flag belongs to now's day. A
// flag left over from an earlier day is stale.
func (s *Supplement) IsTakenOn(now time.Time) bool {
	return s.takenToday && s.lastTakenAt != nil && sharedDomain.SameDay(now, *s.lastTakenAt)
}

// MarkTaken records today's intake and marks the weekday in the history.
func (s *Supplement) MarkTaken(now time.Time) error {
	if s.IsTakenOn(now) {
		return ErrSupplementAlreadyTaken
	}

	taken := now
	s.takenToday = true
	s.lastTakenAt = &taken
	s.history.Mark(now.Weekday())
	s.Touch(now)
	s.AddDomainEvent(NewSupplementTaken(s, now))
	return nil
}

// ResetDay clears the taken-today flag. The weekly history is kept.
func (s *Supplement) ResetDay(now time.Time) {
	if !s.takenToday {
		return
	}
	s.takenToday = false
	s.Touch(now)
}

// ResetWeek clears the weekly history.
func (s *Supplement) ResetWeek(now time.Time) {
	if s.history == (WeeklyHistory{}) {
		return
	}
	s.history = WeeklyHistory{}
	s.Touch(now)
}

// MarkDeleted records the removal of the supplement.
func (s *Supplement) MarkDeleted(now time.Time) {
	s.Touch(now)
	s.AddDomainEvent(NewSupplementDeleted(s, now))
}

// RehydrateSupplement recreates a supplement from persisted state without generating events.
func RehydrateSupplement(
	id uuid.UUID,
	userID uuid.UUID,
	name string,
	dosage string,
	timeOfDay TimeOfDay,
	takenToday bool,
	lastTakenAt *time.Time,
	history WeeklyHistory,
	createdAt time.Time,
	updatedAt time.Time,
) *Supplement {
	return &Supplement{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		userID:            userID,
		name:              name,
		dosage:            dosage,
		timeOfDay:         timeOfDay,
		takenToday:        takenToday,
		lastTakenAt:       lastTakenAt,
		history:           history,
	}
}
