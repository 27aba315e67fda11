package queries

import (
	"context"
	"time"

	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
)

// RoutineDTO is a data transfer object for routine completions.
type RoutineDTO struct {
	ID         uuid.UUID
	Name       string
	Date       time.Time
	Percentage int
}

// ListRoutinesQuery lists completions from the last Days days.
type ListRoutinesQuery struct {
	UserID uuid.UUID
	Days   int
}

// ListRoutinesHandler handles the ListRoutinesQuery.
type ListRoutinesHandler struct {
	routineRepo domain.RoutineRepository
	clock       sharedDomain.Clock
}

// NewListRoutinesHandler creates a new ListRoutinesHandler.
func NewListRoutinesHandler(routineRepo domain.RoutineRepository, clock sharedDomain.Clock) *ListRoutinesHandler {
	return &ListRoutinesHandler{routineRepo: routineRepo, clock: clock}
}

// Handle executes the ListRoutinesQuery.
func (h *ListRoutinesHandler) Handle(ctx context.Context, query ListRoutinesQuery) ([]RoutineDTO, error) {
	days := query.Days
	if days == 0 {
		days = 7
	}

	completions, err := h.routineRepo.FindSince(ctx, query.UserID, windowStart(h.clock.Now(), days))
	if err != nil {
		return nil, err
	}

	dtos := make([]RoutineDTO, 0, len(completions))
	for _, c := range completions {
		dtos = append(dtos, RoutineDTO{
			ID:         c.ID(),
			Name:       c.Name(),
			Date:       c.Date(),
			Percentage: c.Percentage(),
		})
	}
	return dtos, nil
}
