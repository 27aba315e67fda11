package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
)

// GoalRepository implements domain.GoalRepository.
type GoalRepository struct {
	conn database.Connection
}

// NewGoalRepository creates a goal repository over conn.
func NewGoalRepository(conn database.Connection) *GoalRepository {
	return &GoalRepository{conn: conn}
}

const goalColumns = `id, user_id, title, completed, started_at, completed_at, created_at, updated_at`

// Save inserts the goal or updates it in place.
func (r *GoalRepository) Save(ctx context.Context, goal *domain.Goal) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, `
INSERT INTO goals (`+goalColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    title = excluded.title,
    completed = excluded.completed,
    started_at = excluded.started_at,
    completed_at = excluded.completed_at,
    updated_at = excluded.updated_at`,
		goal.ID().String(),
		goal.UserID().String(),
		goal.Title(),
		database.BoolToInt(goal.IsCompleted()),
		database.FormatNullTime(goal.StartedAt()),
		database.FormatNullTime(goal.CompletedAt()),
		database.FormatTime(goal.CreatedAt()),
		database.FormatTime(goal.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("save goal %s: %w", goal.ID(), err)
	}
	return nil
}

// FindByID retrieves a goal by its ID.
func (r *GoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE id = ?`, id.String())

	goal, err := scanGoal(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return goal, nil
}

// FindByUserID returns the user's goals in the order they were created.
func (r *GoalRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE user_id = ? ORDER BY created_at, id`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

func scanGoal(row database.Row) (*domain.Goal, error) {
	var (
		id, userID, title, createdAt, updatedAt string
		completed                               int
		startedAt, completedAt                  sql.NullString
	)
	if err := row.Scan(&id, &userID, &title, &completed, &startedAt, &completedAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	ids, err := parseIDs(id, userID)
	if err != nil {
		return nil, err
	}
	times, err := parseTimes(createdAt, updatedAt)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateGoal(ids[0], ids[1], title, completed != 0,
		database.ParseNullTime(startedAt), database.ParseNullTime(completedAt), times[0], times[1]), nil
}
