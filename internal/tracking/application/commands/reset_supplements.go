package commands

import (
	"context"

	sharedApplication "github.com/felixgeelhaar/phoenix/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
)

// ResetScope selects what a supplement reset clears.
type ResetScope string

const (
	// ResetDay clears every taken-today flag.
	ResetDay ResetScope = "day"
	// ResetWeek clears every weekly history.
	ResetWeek ResetScope = "week"
)

// ResetSupplementsCommand rolls supplements over to a new day or week. It
// applies to all users; the worker schedules it.
type ResetSupplementsCommand struct {
	Scope ResetScope
}

// ResetSupplementsResult reports how many supplements changed.
type ResetSupplementsResult struct {
	Reset int
}

// ResetSupplementsHandler handles the ResetSupplementsCommand.
type ResetSupplementsHandler struct {
	supplementRepo domain.SupplementRepository
	uow            sharedApplication.UnitOfWork
	clock          sharedDomain.Clock
}

// NewResetSupplementsHandler creates a new ResetSupplementsHandler.
func NewResetSupplementsHandler(supplementRepo domain.SupplementRepository, uow sharedApplication.UnitOfWork, clock sharedDomain.Clock) *ResetSupplementsHandler {
	return &ResetSupplementsHandler{supplementRepo: supplementRepo, uow: uow, clock: clock}
}

// Handle executes the ResetSupplementsCommand.
func (h *ResetSupplementsHandler) Handle(ctx context.Context, cmd ResetSupplementsCommand) (*ResetSupplementsResult, error) {
	result := &ResetSupplementsResult{}
	now := h.clock.Now()

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		supplements, err := h.supplementRepo.FindAll(txCtx)
		if err != nil {
			return err
		}

		for _, s := range supplements {
			switch cmd.Scope {
			case ResetWeek:
				if s.History() == (domain.WeeklyHistory{}) {
					continue
				}
				s.ResetWeek(now)
			default:
				if !s.TakenToday() {
					continue
				}
				s.ResetDay(now)
			}
			if err := h.supplementRepo.Save(txCtx, s); err != nil {
				return err
			}
			result.Reset++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
