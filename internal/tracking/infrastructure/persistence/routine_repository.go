package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
)

// RoutineRepository implements domain.RoutineRepository.
type RoutineRepository struct {
	conn database.Connection
}

// NewRoutineRepository creates a routine repository over conn.
func NewRoutineRepository(conn database.Connection) *RoutineRepository {
	return &RoutineRepository{conn: conn}
}

const routineColumns = `id, user_id, routine_name, completed_on, percentage, created_at`

// Save stores a routine completion. Completions are immutable once logged.
func (r *RoutineRepository) Save(ctx context.Context, c *domain.RoutineCompletion) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, `
INSERT INTO routine_completions (`+routineColumns+`)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO NOTHING`,
		c.ID().String(),
		c.UserID().String(),
		c.Name(),
		database.FormatTime(c.Date()),
		c.Percentage(),
		database.FormatTime(c.CreatedAt()),
	)
	if err != nil {
		return fmt.Errorf("save routine completion %s: %w", c.ID(), err)
	}
	return nil
}

// FindSince returns the user's completions dated at or after since.
func (r *RoutineRepository) FindSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*domain.RoutineCompletion, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx,
		`SELECT `+routineColumns+` FROM routine_completions WHERE user_id = ? AND completed_on >= ? ORDER BY completed_on, created_at`,
		userID.String(), database.FormatTime(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []*domain.RoutineCompletion
	for rows.Next() {
		var (
			id, uid, name, date, createdAt string
			percentage                     int
		)
		if err := rows.Scan(&id, &uid, &name, &date, &percentage, &createdAt); err != nil {
			return nil, err
		}

		ids, err := parseIDs(id, uid)
		if err != nil {
			return nil, err
		}
		times, err := parseTimes(date, createdAt)
		if err != nil {
			return nil, err
		}

		completions = append(completions, domain.RehydrateRoutineCompletion(ids[0], ids[1], name, times[0], percentage, times[1]))
	}
	return completions, rows.Err()
}
