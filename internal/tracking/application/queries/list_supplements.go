package queries

import (
	"context"

	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
)

// SupplementDTO is a data transfer object for supplements.
type SupplementDTO struct {
	ID         uuid.UUID
	Name       string
	Dosage     string
	TimeOfDay  string
	TakenToday bool
	History    string // one digit per weekday, Sunday first
	DaysTaken  int
}

// ListSupplementsQuery lists a user's supplements.
type ListSupplementsQuery struct {
	UserID      uuid.UUID
	OnlyPending bool // only supplements not yet taken today
}

// ListSupplementsHandler handles the ListSupplementsQuery.
type ListSupplementsHandler struct {
	supplementRepo domain.SupplementRepository
	clock          sharedDomain.Clock
}

// NewListSupplementsHandler creates a new ListSupplementsHandler.
func NewListSupplementsHandler(supplementRepo domain.SupplementRepository, clock sharedDomain.Clock) *ListSupplementsHandler {
	return &ListSupplementsHandler{supplementRepo: supplementRepo, clock: clock}
}

// Handle executes the ListSupplementsQuery.
func (h *ListSupplementsHandler) Handle(ctx context.Context, query ListSupplementsQuery) ([]SupplementDTO, error) {
	supplements, err := h.supplementRepo.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	dtos := make([]SupplementDTO, 0, len(supplements))
	for _, s := range supplements {
		taken := s.IsTakenOn(now)
		if query.OnlyPending && taken {
			continue
		}
		dtos = append(dtos, SupplementDTO{
			ID:         s.ID(),
			Name:       s.Name(),
			Dosage:     s.Dosage(),
			TimeOfDay:  string(s.TimeOfDay()),
			TakenToday: taken,
			History:    s.History().String(),
			DaysTaken:  s.History().Count(),
		})
	}
	return dtos, nil
}
