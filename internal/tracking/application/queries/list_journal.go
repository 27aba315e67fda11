package queries

import (
	"context"
	"time"

	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
)

// JournalEntryDTO is a data transfer object for journal entries.
type JournalEntryDTO struct {
	ID         uuid.UUID
	Date       time.Time
	Mood       string
	MoodValue  int
	Reflection string
	Triggers   string
}

// ListJournalQuery lists entries from the last Days days, newest first.
type ListJournalQuery struct {
	UserID uuid.UUID
	Days   int
}

// ListJournalHandler handles the ListJournalQuery.
type ListJournalHandler struct {
	journalRepo domain.JournalRepository
	clock       sharedDomain.Clock
}

// NewListJournalHandler creates a new ListJournalHandler.
func NewListJournalHandler(journalRepo domain.JournalRepository, clock sharedDomain.Clock) *ListJournalHandler {
	return &ListJournalHandler{journalRepo: journalRepo, clock: clock}
}

// Handle executes the ListJournalQuery.
func (h *ListJournalHandler) Handle(ctx context.Context, query ListJournalQuery) ([]JournalEntryDTO, error) {
	days := query.Days
	if days == 0 {
		days = 7
	}

	entries, err := h.journalRepo.FindSince(ctx, query.UserID, windowStart(h.clock.Now(), days))
	if err != nil {
		return nil, err
	}

	dtos := make([]JournalEntryDTO, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		value, _ := e.Mood().Value()
		dtos = append(dtos, JournalEntryDTO{
			ID:         e.ID(),
			Date:       e.Date(),
			Mood:       string(e.Mood()),
			MoodValue:  value,
			Reflection: e.Reflection(),
			Triggers:   e.Triggers(),
		})
	}
	return dtos, nil
}
