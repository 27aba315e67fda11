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

// LogRoutineCommand records how much of a routine was done on a day.
type LogRoutineCommand struct {
	UserID     uuid.UUID
	Name       string // defaults to domain.DefaultRoutineName
	Date       *time.Time
	Percentage int
}

// LogRoutineResult contains the stored completion.
type LogRoutineResult struct {
	CompletionID uuid.UUID
	Complete     bool
}

// LogRoutineHandler handles the LogRoutineCommand.
type LogRoutineHandler struct {
	routineRepo domain.RoutineRepository
	outboxRepo  outbox.Repository
	uow         sharedApplication.UnitOfWork
	clock       sharedDomain.Clock
}

// NewLogRoutineHandler creates a new LogRoutineHandler.
func NewLogRoutineHandler(routineRepo domain.RoutineRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, clock sharedDomain.Clock) *LogRoutineHandler {
	return &LogRoutineHandler{
		routineRepo: routineRepo,
		outboxRepo:  outboxRepo,
		uow:         uow,
		clock:       clock,
	}
}

// Handle executes the LogRoutineCommand.
func (h *LogRoutineHandler) Handle(ctx context.Context, cmd LogRoutineCommand) (*LogRoutineResult, error) {
	now := h.clock.Now()

	completion, err := domain.NewRoutineCompletion(cmd.UserID, cmd.Name, orNow(cmd.Date, now), cmd.Percentage, now)
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.routineRepo.Save(txCtx, completion); err != nil {
			return err
		}
		return saveEvents(txCtx, h.outboxRepo, cmd.UserID, completion)
	})
	if err != nil {
		return nil, err
	}

	return &LogRoutineResult{CompletionID: completion.ID(), Complete: completion.IsComplete()}, nil
}
