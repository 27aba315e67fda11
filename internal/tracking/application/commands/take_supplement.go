package commands

import (
	"context"

	sharedApplication "github.com/felixgeelhaar/phoenix/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
)

// TakeSupplementCommand records today's intake of a supplement.
type TakeSupplementCommand struct {
	SupplementID uuid.UUID
	UserID       uuid.UUID
}

// TakeSupplementResult reports the supplement's week so far.
type TakeSupplementResult struct {
	Name      string
	DaysTaken int
}

// TakeSupplementHandler handles the TakeSupplementCommand.
type TakeSupplementHandler struct {
	supplementRepo domain.SupplementRepository
	outboxRepo     outbox.Repository
	uow            sharedApplication.UnitOfWork
	clock          sharedDomain.Clock
}

// NewTakeSupplementHandler creates a new TakeSupplementHandler.
func NewTakeSupplementHandler(supplementRepo domain.SupplementRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, clock sharedDomain.Clock) *TakeSupplementHandler {
	return &TakeSupplementHandler{
		supplementRepo: supplementRepo,
		outboxRepo:     outboxRepo,
		uow:            uow,
		clock:          clock,
	}
}

// Handle executes the TakeSupplementCommand.
func (h *TakeSupplementHandler) Handle(ctx context.Context, cmd TakeSupplementCommand) (*TakeSupplementResult, error) {
	var result *TakeSupplementResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		supplement, err := h.supplementRepo.FindByID(txCtx, cmd.SupplementID)
		if err != nil {
			return err
		}
		if supplement == nil {
			return domain.ErrSupplementNotFound
		}
		if supplement.UserID() != cmd.UserID {
			return ErrNotOwner
		}

		if err := supplement.MarkTaken(h.clock.Now()); err != nil {
			return err
		}
		if err := h.supplementRepo.Save(txCtx, supplement); err != nil {
			return err
		}
		if err := saveEvents(txCtx, h.outboxRepo, cmd.UserID, supplement); err != nil {
			return err
		}

		result = &TakeSupplementResult{
			Name:      supplement.Name(),
			DaysTaken: supplement.History().Count(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
