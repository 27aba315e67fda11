// Package persistence implements the tracking repositories over a
// database.Connection. The same SQL runs on SQLite and PostgreSQL.
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
)

// MealRepository implements domain.MealRepository.
type MealRepository struct {
	conn database.Connection
}

// NewMealRepository creates a meal repository over conn.
func NewMealRepository(conn database.Connection) *MealRepository {
	return &MealRepository{conn: conn}
}

const mealColumns = `id, user_id, name, meal_type, calories, protein, carbs, fats, ingredients, eaten_at, completed, created_at, updated_at`

// Save inserts the meal or updates it in place.
func (r *MealRepository) Save(ctx context.Context, meal *domain.Meal) error {
	n := meal.Nutrition()
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, `
INSERT INTO meals (`+mealColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    name = excluded.name,
    meal_type = excluded.meal_type,
    calories = excluded.calories,
    protein = excluded.protein,
    carbs = excluded.carbs,
    fats = excluded.fats,
    ingredients = excluded.ingredients,
    eaten_at = excluded.eaten_at,
    completed = excluded.completed,
    updated_at = excluded.updated_at`,
		meal.ID().String(),
		meal.UserID().String(),
		meal.Name(),
		string(meal.Type()),
		n.Calories,
		n.Protein,
		n.Carbs,
		n.Fats,
		meal.IngredientsText(),
		database.FormatTime(meal.EatenAt()),
		database.BoolToInt(meal.IsCompleted()),
		database.FormatTime(meal.CreatedAt()),
		database.FormatTime(meal.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("save meal %s: %w", meal.ID(), err)
	}
	return nil
}

// FindByID retrieves a meal by its ID.
func (r *MealRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Meal, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT `+mealColumns+` FROM meals WHERE id = ?`, id.String())

	meal, err := scanMeal(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return meal, nil
}

// FindSince returns the user's meals eaten at or after since.
func (r *MealRepository) FindSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*domain.Meal, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx,
		`SELECT `+mealColumns+` FROM meals WHERE user_id = ? AND eaten_at >= ? ORDER BY eaten_at, created_at`,
		userID.String(), database.FormatTime(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meals []*domain.Meal
	for rows.Next() {
		meal, err := scanMeal(rows)
		if err != nil {
			return nil, err
		}
		meals = append(meals, meal)
	}
	return meals, rows.Err()
}

func scanMeal(row database.Row) (*domain.Meal, error) {
	var (
		id, userID, name, mealType, ingredients string
		eatenAt, createdAt, updatedAt           string
		n                                       domain.Nutrition
		completed                               int
	)
	if err := row.Scan(&id, &userID, &name, &mealType, &n.Calories, &n.Protein, &n.Carbs, &n.Fats,
		&ingredients, &eatenAt, &completed, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	ids, err := parseIDs(id, userID)
	if err != nil {
		return nil, err
	}
	times, err := parseTimes(eatenAt, createdAt, updatedAt)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateMeal(ids[0], ids[1], name, domain.MealType(mealType), n, ingredients,
		times[0], completed != 0, times[1], times[2]), nil
}

func parseIDs(values ...string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(values))
	for i, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", v, err)
		}
		ids[i] = id
	}
	return ids, nil
}

func parseTimes(values ...string) ([]time.Time, error) {
	times := make([]time.Time, len(values))
	for i, v := range values {
		t, err := database.ParseTime(v)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp %q: %w", v, err)
		}
		times[i] = t
	}
	return times, nil
}
