package commands

import (
	"context"

	sharedApplication "github.com/felixgeelhaar/phoenix/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
)

// CompleteMealCommand marks a planned meal as eaten.
type CompleteMealCommand struct {
	MealID uuid.UUID
	UserID uuid.UUID
}

// CompleteMealHandler handles the CompleteMealCommand.
type CompleteMealHandler struct {
	mealRepo domain.MealRepository
	uow      sharedApplication.UnitOfWork
	clock    sharedDomain.Clock
}

// NewCompleteMealHandler creates a new CompleteMealHandler.
func NewCompleteMealHandler(mealRepo domain.MealRepository, uow sharedApplication.UnitOfWork, clock sharedDomain.Clock) *CompleteMealHandler {
	return &CompleteMealHandler{mealRepo: mealRepo, uow: uow, clock: clock}
}

// Handle executes the CompleteMealCommand.
func (h *CompleteMealHandler) Handle(ctx context.Context, cmd CompleteMealCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		meal, err := h.mealRepo.FindByID(txCtx, cmd.MealID)
		if err != nil {
			return err
		}
		if meal == nil {
			return domain.ErrMealNotFound
		}
		if meal.UserID() != cmd.UserID {
			return ErrNotOwner
		}

		if err := meal.Complete(h.clock.Now()); err != nil {
			return err
		}
		return h.mealRepo.Save(txCtx, meal)
	})
}
