package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
)

// GoalDTO is a data transfer object for goals.
type GoalDTO struct {
	ID          uuid.UUID
	Title       string
	Completed   bool
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// ListGoalsQuery lists a user's goals.
type ListGoalsQuery struct {
	UserID           uuid.UUID
	IncludeCompleted bool
}

// ListGoalsHandler handles the ListGoalsQuery.
type ListGoalsHandler struct {
	goalRepo domain.GoalRepository
}

// NewListGoalsHandler creates a new ListGoalsHandler.
func NewListGoalsHandler(goalRepo domain.GoalRepository) *ListGoalsHandler {
	return &ListGoalsHandler{goalRepo: goalRepo}
}

// Handle executes the ListGoalsQuery.
func (h *ListGoalsHandler) Handle(ctx context.Context, query ListGoalsQuery) ([]GoalDTO, error) {
	goals, err := h.goalRepo.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	dtos := make([]GoalDTO, 0, len(goals))
	for _, g := range goals {
		if g.IsCompleted() && !query.IncludeCompleted {
			continue
		}
		dtos = append(dtos, GoalDTO{
			ID:          g.ID(),
			Title:       g.Title(),
			Completed:   g.IsCompleted(),
			StartedAt:   g.StartedAt(),
			CompletedAt: g.CompletedAt(),
		})
	}
	return dtos, nil
}
