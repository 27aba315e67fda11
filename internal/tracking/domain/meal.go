package domain

import (
	"errors"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrMealNotFound          = errors.New("meal not found")
	ErrMealEmptyName         = errors.New("meal name cannot be empty")
	ErrMealInvalidType       = errors.New("invalid meal type")
	ErrMealNegativeNutrition = errors.New("nutrition values cannot be negative")
	ErrMealAlreadyCompleted  = errors.New("meal already completed")
)

// MealType is the slot of the day a meal belongs to.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// IsValid checks if the meal type is one of the known slots.
func (t MealType) IsValid() bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	default:
		return false
	}
}

// Nutrition holds macro values of a meal. Calories are kcal, the rest grams.
type Nutrition struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
}

func (n Nutrition) validate() error {
	if n.Calories < 0 || n.Protein < 0 || n.Carbs < 0 || n.Fats < 0 {
		return ErrMealNegativeNutrition
	}
	return nil
}

// Meal is a logged or planned meal.
type Meal struct {
	sharedDomain.BaseAggregateRoot
	userID      uuid.UUID
	name        string
	mealType    MealType
	nutrition   Nutrition
	ingredients string
	eatenAt     time.Time
	completed   bool
}

// NewMeal logs a meal eaten at eatenAt.
func NewMeal(userID uuid.UUID, name string, mealType MealType, nutrition Nutrition, ingredients string, eatenAt, now time.Time) (*Meal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMealEmptyName
	}
	if !mealType.IsValid() {
		return nil, ErrMealInvalidType
	}
	if err := nutrition.validate(); err != nil {
		return nil, err
	}

	meal := &Meal{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(sharedDomain.NewBaseEntity(now)),
		userID:            userID,
		name:              name,
		mealType:          mealType,
		nutrition:         nutrition,
		ingredients:       strings.TrimSpace(ingredients),
		eatenAt:           eatenAt,
	}
	meal.AddDomainEvent(NewMealLogged(meal))
	return meal, nil
}

// Getters
func (m *Meal) UserID() uuid.UUID       { return m.userID }
func (m *Meal) Name() string            { return m.name }
func (m *Meal) Type() MealType          { return m.mealType }
func (m *Meal) Nutrition() Nutrition    { return m.nutrition }
func (m *Meal) IngredientsText() string { return m.ingredients }
func (m *Meal) EatenAt() time.Time      { return m.eatenAt }
func (m *Meal) IsCompleted() bool       { return m.completed }

// Ingredients splits the comma-delimited ingredient text, dropping blanks.
func (m *Meal) Ingredients() []string {
	return SplitIngredients(m.ingredients)
}

// SplitIngredients parses a comma-delimited ingredient list.
func SplitIngredients(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Complete marks a planned meal as eaten.
func (m *Meal) Complete(now time.Time) error {
	if m.completed {
		return ErrMealAlreadyCompleted
	}
	m.completed = true
	m.Touch(now)
	return nil
}

// RehydrateMeal recreates a meal from persisted state without generating events.
func RehydrateMeal(
	id uuid.UUID,
	userID uuid.UUID,
	name string,
	mealType MealType,
	nutrition Nutrition,
	ingredients string,
	eatenAt time.Time,
	completed bool,
	createdAt time.Time,
	updatedAt time.Time,
) *Meal {
	return &Meal{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		userID:            userID,
		name:              name,
		mealType:          mealType,
		nutrition:         nutrition,
		ingredients:       ingredients,
		eatenAt:           eatenAt,
		completed:         completed,
	}
}
