package commands

import (
	"context"

	sharedApplication "github.com/felixgeelhaar/phoenix/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
)

// AddSupplementCommand schedules a new supplement.
type AddSupplementCommand struct {
	UserID    uuid.UUID
	Name      string
	Dosage    string
	TimeOfDay domain.TimeOfDay
}

// AddSupplementResult contains the id of the new supplement.
type AddSupplementResult struct {
	SupplementID uuid.UUID
}

// AddSupplementHandler handles the AddSupplementCommand.
type AddSupplementHandler struct {
	supplementRepo domain.SupplementRepository
	outboxRepo     outbox.Repository
	uow            sharedApplication.UnitOfWork
	clock          sharedDomain.Clock
}

// NewAddSupplementHandler creates a new AddSupplementHandler.
func NewAddSupplementHandler(supplementRepo domain.SupplementRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, clock sharedDomain.Clock) *AddSupplementHandler {
	return &AddSupplementHandler{
		supplementRepo: supplementRepo,
		outboxRepo:     outboxRepo,
		uow:            uow,
		clock:          clock,
	}
}

// Handle executes the AddSupplementCommand.
func (h *AddSupplementHandler) Handle(ctx context.Context, cmd AddSupplementCommand) (*AddSupplementResult, error) {
	supplement, err := domain.NewSupplement(cmd.UserID, cmd.Name, cmd.Dosage, cmd.TimeOfDay, h.clock.Now())
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.supplementRepo.Save(txCtx, supplement); err != nil {
			return err
		}
		return saveEvents(txCtx, h.outboxRepo, cmd.UserID, supplement)
	})
	if err != nil {
		return nil, err
	}

	return &AddSupplementResult{SupplementID: supplement.ID()}, nil
}
