package queries

import (
	"context"

	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
)

// GetPointsQuery reads a user's Phoenix Points ledger.
type GetPointsQuery struct {
	UserID uuid.UUID
	Recent int
}

// GetPointsHandler handles the GetPointsQuery.
type GetPointsHandler struct {
	pointsRepo domain.PointsRepository
}

// NewGetPointsHandler creates a new GetPointsHandler.
func NewGetPointsHandler(pointsRepo domain.PointsRepository) *GetPointsHandler {
	return &GetPointsHandler{pointsRepo: pointsRepo}
}

// Handle executes the GetPointsQuery.
func (h *GetPointsHandler) Handle(ctx context.Context, query GetPointsQuery) (*domain.Ledger, error) {
	total, err := h.pointsRepo.Total(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	limit := query.Recent
	if limit <= 0 {
		limit = 10
	}
	recent, err := h.pointsRepo.Recent(ctx, query.UserID, limit)
	if err != nil {
		return nil, err
	}

	return &domain.Ledger{Total: total, Recent: recent}, nil
}
