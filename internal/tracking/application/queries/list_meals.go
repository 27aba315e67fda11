package queries

import (
	"context"
	"time"

	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
)

// MealDTO is a data transfer object for meals.
type MealDTO struct {
	ID          uuid.UUID
	Name        string
	Type        string
	Calories    int
	Protein     int
	Carbs       int
	Fats        int
	Ingredients []string
	EatenAt     time.Time
	Completed   bool
}

// ListMealsQuery lists meals eaten in the last Days days, today included.
// Zero Days lists today only.
type ListMealsQuery struct {
	UserID uuid.UUID
	Days   int
	Type   string // optional filter
}

// ListMealsHandler handles the ListMealsQuery.
type ListMealsHandler struct {
	mealRepo domain.MealRepository
	clock    sharedDomain.Clock
}

// NewListMealsHandler creates a new ListMealsHandler.
func NewListMealsHandler(mealRepo domain.MealRepository, clock sharedDomain.Clock) *ListMealsHandler {
	return &ListMealsHandler{mealRepo: mealRepo, clock: clock}
}

// Handle executes the ListMealsQuery.
func (h *ListMealsHandler) Handle(ctx context.Context, query ListMealsQuery) ([]MealDTO, error) {
	meals, err := h.mealRepo.FindSince(ctx, query.UserID, windowStart(h.clock.Now(), query.Days))
	if err != nil {
		return nil, err
	}

	dtos := make([]MealDTO, 0, len(meals))
	for _, m := range meals {
		if query.Type != "" && string(m.Type()) != query.Type {
			continue
		}
		n := m.Nutrition()
		dtos = append(dtos, MealDTO{
			ID:          m.ID(),
			Name:        m.Name(),
			Type:        string(m.Type()),
			Calories:    n.Calories,
			Protein:     n.Protein,
			Carbs:       n.Carbs,
			Fats:        n.Fats,
			Ingredients: m.Ingredients(),
			EatenAt:     m.EatenAt(),
			Completed:   m.IsCompleted(),
		})
	}
	return dtos, nil
}

// windowStart returns the start of the day days-1 days before now, so a
// window of 7 covers today and the six days before it.
func windowStart(now time.Time, days int) time.Time {
	if days < 1 {
		days = 1
	}
	return sharedDomain.AddDays(sharedDomain.StartOfDay(now), -(days - 1))
}
