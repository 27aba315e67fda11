package commands

import (
	"context"
	"fmt"

	sharedApplication "github.com/felixgeelhaar/phoenix/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
)

// TrackerAction names a change to an existing addiction tracker.
type TrackerAction string

const (
	// TrackerReset restarts the streak after a relapse.
	TrackerReset TrackerAction = "reset"
	// TrackerCheckIn confirms another clean day.
	TrackerCheckIn TrackerAction = "check_in"
	// TrackerDelete stops tracking.
	TrackerDelete TrackerAction = "delete"
)

// TrackerActionCommand applies an action to one tracker.
type TrackerActionCommand struct {
	TrackerID uuid.UUID
	UserID    uuid.UUID
	Action    TrackerAction
}

// TrackerActionHandler handles reset, check-in and delete for addiction
// trackers.
type TrackerActionHandler struct {
	addictionRepo domain.AddictionRepository
	outboxRepo    outbox.Repository
	uow           sharedApplication.UnitOfWork
	clock         sharedDomain.Clock
}

// NewTrackerActionHandler creates a new TrackerActionHandler.
func NewTrackerActionHandler(addictionRepo domain.AddictionRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, clock sharedDomain.Clock) *TrackerActionHandler {
	return &TrackerActionHandler{
		addictionRepo: addictionRepo,
		outboxRepo:    outboxRepo,
		uow:           uow,
		clock:         clock,
	}
}

// Handle executes the TrackerActionCommand.
func (h *TrackerActionHandler) Handle(ctx context.Context, cmd TrackerActionCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		tracker, err := h.addictionRepo.FindByID(txCtx, cmd.TrackerID)
		if err != nil {
			return err
		}
		if tracker == nil {
			return domain.ErrAddictionNotFound
		}
		if tracker.UserID() != cmd.UserID {
			return ErrNotOwner
		}

		now := h.clock.Now()
		switch cmd.Action {
		case TrackerReset:
			tracker.Reset(now)
			err = h.addictionRepo.Save(txCtx, tracker)
		case TrackerCheckIn:
			if err := tracker.CheckIn(now); err != nil {
				return err
			}
			err = h.addictionRepo.Save(txCtx, tracker)
		case TrackerDelete:
			tracker.MarkDeleted(now)
			err = h.addictionRepo.Delete(txCtx, tracker.ID())
		default:
			return fmt.Errorf("unknown tracker action %q", cmd.Action)
		}
		if err != nil {
			return err
		}

		return saveEvents(txCtx, h.outboxRepo, cmd.UserID, tracker)
	})
}
