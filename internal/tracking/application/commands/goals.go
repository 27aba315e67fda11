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

// CreateGoalCommand contains the data needed to create a goal.
type CreateGoalCommand struct {
	UserID    uuid.UUID
	Title     string
	StartedAt *time.Time
}

// CreateGoalResult contains the id of the new goal.
type CreateGoalResult struct {
	GoalID uuid.UUID
}

// CreateGoalHandler handles the CreateGoalCommand.
type CreateGoalHandler struct {
	goalRepo   domain.GoalRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	clock      sharedDomain.Clock
}

// NewCreateGoalHandler creates a new CreateGoalHandler.
func NewCreateGoalHandler(goalRepo domain.GoalRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, clock sharedDomain.Clock) *CreateGoalHandler {
	return &CreateGoalHandler{
		goalRepo:   goalRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		clock:      clock,
	}
}

// Handle executes the CreateGoalCommand.
func (h *CreateGoalHandler) Handle(ctx context.Context, cmd CreateGoalCommand) (*CreateGoalResult, error) {
	goal, err := domain.NewGoal(cmd.UserID, cmd.Title, cmd.StartedAt, h.clock.Now())
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.goalRepo.Save(txCtx, goal); err != nil {
			return err
		}
		return saveEvents(txCtx, h.outboxRepo, cmd.UserID, goal)
	})
	if err != nil {
		return nil, err
	}

	return &CreateGoalResult{GoalID: goal.ID()}, nil
}

// CompleteGoalCommand marks a goal as achieved.
type CompleteGoalCommand struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// CompleteGoalHandler handles the CompleteGoalCommand.
type CompleteGoalHandler struct {
	goalRepo   domain.GoalRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	clock      sharedDomain.Clock
}

// NewCompleteGoalHandler creates a new CompleteGoalHandler.
func NewCompleteGoalHandler(goalRepo domain.GoalRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, clock sharedDomain.Clock) *CompleteGoalHandler {
	return &CompleteGoalHandler{
		goalRepo:   goalRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		clock:      clock,
	}
}

// Handle executes the CompleteGoalCommand.
func (h *CompleteGoalHandler) Handle(ctx context.Context, cmd CompleteGoalCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		goal, err := h.goalRepo.FindByID(txCtx, cmd.GoalID)
		if err != nil {
			return err
		}
		if goal == nil {
			return domain.ErrGoalNotFound
		}
		if goal.UserID() != cmd.UserID {
			return ErrNotOwner
		}

		if err := goal.Complete(h.clock.Now()); err != nil {
			return err
		}
		if err := h.goalRepo.Save(txCtx, goal); err != nil {
			return err
		}
		return saveEvents(txCtx, h.outboxRepo, cmd.UserID, goal)
	})
}
