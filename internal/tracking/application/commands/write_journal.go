package commands

import (
	"context"
	"time"

	sharedApplication "github.com/felixgeelhaar/phoenix/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
)

// WriteJournalCommand contains a day's journal entry.
type WriteJournalCommand struct {
	UserID     uuid.UUID
	Date       *time.Time // defaults to today
	Mood       domain.Mood
	Reflection string
	Triggers   string
}

// WriteJournalResult contains the id of the new entry.
type WriteJournalResult struct {
	EntryID uuid.UUID
}

// WriteJournalHandler handles the WriteJournalCommand.
type WriteJournalHandler struct {
	journalRepo domain.JournalRepository
	outboxRepo  outbox.Repository
	uow         sharedApplication.UnitOfWork
	clock       sharedDomain.Clock
}

// NewWriteJournalHandler creates a new WriteJournalHandler.
func NewWriteJournalHandler(journalRepo domain.JournalRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, clock sharedDomain.Clock) *WriteJournalHandler {
	return &WriteJournalHandler{
		journalRepo: journalRepo,
		outboxRepo:  outboxRepo,
		uow:         uow,
		clock:       clock,
	}
}

// Handle executes the WriteJournalCommand.
func (h *WriteJournalHandler) Handle(ctx context.Context, cmd WriteJournalCommand) (*WriteJournalResult, error) {
	now := h.clock.Now()

	entry, err := domain.NewJournalEntry(cmd.UserID, orNow(cmd.Date, now), cmd.Mood, cmd.Reflection, cmd.Triggers, now)
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.journalRepo.Save(txCtx, entry); err != nil {
			return err
		}
		return saveEvents(txCtx, h.outboxRepo, cmd.UserID, entry)
	})
	if err != nil {
		return nil, err
	}

	return &WriteJournalResult{EntryID: entry.ID()}, nil
}
