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
	ErrJournalNotFound = errors.New("journal entry not found")
	ErrInvalidMood     = errors.New("invalid mood")
)

// Mood is the ordinal mood recorded with a journal entry.
type Mood string

const (
	MoodAwful Mood = "awful"
	MoodLow   Mood = "low"
	MoodOkay  Mood = "okay"
	MoodGood  Mood = "good"
	MoodGreat Mood = "great"
)

var moodValues = map[Mood]int{
	MoodAwful: 1,
	MoodLow:   2,
	MoodOkay:  3,
	MoodGood:  4,
	MoodGreat: 5,
}

// Moods lists every mood from worst to best.
func Moods() []Mood {
	return []Mood{MoodAwful, MoodLow, MoodOkay, MoodGood, MoodGreat}
}

// Value maps the mood onto 1..5. Unknown moods report false.
func (m Mood) Value() (int, bool) {
	v, ok := moodValues[m]
	return v, ok
}

// ParseMood accepts a mood name (any case) or its numeric value.
func ParseMood(s string) (Mood, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if _, ok := moodValues[Mood(s)]; ok {
		return Mood(s), nil
	}
	for mood, v := range moodValues {
		if s == fmt.Sprint(v) {
			return mood, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMood, s)
}

// JournalEntry is a dated reflection with a mood.
type JournalEntry struct {
	sharedDomain.BaseAggregateRoot
	userID     uuid.UUID
	date       time.Time
	mood       Mood
	reflection string
	triggers   string
}

// NewJournalEntry writes an entry for date.
func NewJournalEntry(userID uuid.UUID, date time.Time, mood Mood, reflection, triggers string, now time.Time) (*JournalEntry, error) {
	if _, ok := mood.Value(); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMood, mood)
	}

	entry := &JournalEntry{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(sharedDomain.NewBaseEntity(now)),
		userID:            userID,
		date:              date,
		mood:              mood,
		reflection:        strings.TrimSpace(reflection),
		triggers:          strings.TrimSpace(triggers),
	}
	entry.AddDomainEvent(NewJournalWritten(entry))
	return entry, nil
}

// Getters
func (j *JournalEntry) UserID() uuid.UUID  { return j.userID }
func (j *JournalEntry) Date() time.Time    { return j.date }
func (j *JournalEntry) Mood() Mood         { return j.mood }
func (j *JournalEntry) Reflection() string { return j.reflection }
func (j *JournalEntry) Triggers() string   { return j.triggers }

// RehydrateJournalEntry recreates an entry from persisted state without generating events.
func RehydrateJournalEntry(
	id uuid.UUID,
	userID uuid.UUID,
	date time.Time,
	mood Mood,
	reflection string,
	triggers string,
	createdAt time.Time,
	updatedAt time.Time,
) *JournalEntry {
	return &JournalEntry{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		userID:            userID,
		date:              date,
		mood:              mood,
		reflection:        reflection,
		triggers:          triggers,
	}
}
