package commands

import (
	"context"

	sharedApplication "github.com/felixgeelhaar/phoenix/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
)

// DeleteSupplementCommand removes a supplement from the schedule.
type DeleteSupplementCommand struct {
	SupplementID uuid.UUID
	UserID       uuid.UUID
}

// DeleteSupplementHandler handles the DeleteSupplementCommand.
type DeleteSupplementHandler struct {
	supplementRepo domain.SupplementRepository
	outboxRepo     outbox.Repository
	uow            sharedApplication.UnitOfWork
	clock          sharedDomain.Clock
}

// NewDeleteSupplementHandler creates a new DeleteSupplementHandler.
func NewDeleteSupplementHandler(supplementRepo domain.SupplementRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, clock sharedDomain.Clock) *DeleteSupplementHandler {
	return &DeleteSupplementHandler{
		supplementRepo: supplementRepo,
		outboxRepo:     outboxRepo,
		uow:            uow,
		clock:          clock,
	}
}

// Handle executes the DeleteSupplementCommand.
func (h *DeleteSupplementHandler) Handle(ctx context.Context, cmd DeleteSupplementCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
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

		supplement.MarkDeleted(h.clock.Now())
		if err := h.supplementRepo.Delete(txCtx, supplement.ID()); err != nil {
			return err
		}
		return saveEvents(txCtx, h.outboxRepo, cmd.UserID, supplement)
	})
}
