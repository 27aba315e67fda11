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

// StartAddictionCommand begins tracking clean days for a habit.
type StartAddictionCommand struct {
	UserID    uuid.UUID
	Name      string
	StartedAt *time.Time // defaults to now
}

// StartAddictionResult contains the id of the new tracker.
type StartAddictionResult struct {
	TrackerID uuid.UUID
}

// StartAddictionHandler handles the StartAddictionCommand.
type StartAddictionHandler struct {
	addictionRepo domain.AddictionRepository
	outboxRepo    outbox.Repository
	uow           sharedApplication.UnitOfWork
	clock         sharedDomain.Clock
}

// NewStartAddictionHandler creates a new StartAddictionHandler.
func NewStartAddictionHandler(addictionRepo domain.AddictionRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, clock sharedDomain.Clock) *StartAddictionHandler {
	return &StartAddictionHandler{
		addictionRepo: addictionRepo,
		outboxRepo:    outboxRepo,
		uow:           uow,
		clock:         clock,
	}
}

// Handle executes the StartAddictionCommand.
func (h *StartAddictionHandler) Handle(ctx context.Context, cmd StartAddictionCommand) (*StartAddictionResult, error) {
	now := h.clock.Now()

	tracker, err := domain.NewAddictionTracker(cmd.UserID, cmd.Name, orNow(cmd.StartedAt, now), now)
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.addictionRepo.Save(txCtx, tracker); err != nil {
			return err
		}
		return saveEvents(txCtx, h.outboxRepo, cmd.UserID, tracker)
	})
	if err != nil {
		return nil, err
	}

	return &StartAddictionResult{TrackerID: tracker.ID()}, nil
}
