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

// LogMealCommand contains the data needed to log a meal.
type LogMealCommand struct {
	UserID      uuid.UUID
	Name        string
	Type        domain.MealType
	Nutrition   domain.Nutrition
	Ingredients string
	EatenAt     *time.Time // defaults to now
	Completed   bool
}

// LogMealResult contains the result of logging a meal.
type LogMealResult struct {
	MealID uuid.UUID
}

// LogMealHandler handles the LogMealCommand.
type LogMealHandler struct {
	mealRepo   domain.MealRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	clock      sharedDomain.Clock
}

// NewLogMealHandler creates a new LogMealHandler.
func NewLogMealHandler(mealRepo domain.MealRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, clock sharedDomain.Clock) *LogMealHandler {
	return &LogMealHandler{
		mealRepo:   mealRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		clock:      clock,
	}
}

// Handle executes the LogMealCommand.
func (h *LogMealHandler) Handle(ctx context.Context, cmd LogMealCommand) (*LogMealResult, error) {
	now := h.clock.Now()

	meal, err := domain.NewMeal(cmd.UserID, cmd.Name, cmd.Type, cmd.Nutrition, cmd.Ingredients, orNow(cmd.EatenAt, now), now)
	if err != nil {
		return nil, err
	}
	if cmd.Completed {
		if err := meal.Complete(now); err != nil {
			return nil, err
		}
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.mealRepo.Save(txCtx, meal); err != nil {
			return err
		}
		return saveEvents(txCtx, h.outboxRepo, cmd.UserID, meal)
	})
	if err != nil {
		return nil, err
	}

	return &LogMealResult{MealID: meal.ID()}, nil
}
