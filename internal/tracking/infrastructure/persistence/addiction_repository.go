package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
)

// AddictionRepository implements domain.AddictionRepository.
type AddictionRepository struct {
	conn database.Connection
}

// NewAddictionRepository creates a tracker repository over conn.
func NewAddictionRepository(conn database.Connection) *AddictionRepository {
	return &AddictionRepository{conn: conn}
}

const trackerColumns = `id, user_id, name, last_reset, last_check_in, created_at, updated_at`

// Save inserts the tracker or updates it in place.
func (r *AddictionRepository) Save(ctx context.Context, t *domain.AddictionTracker) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, `
INSERT INTO addiction_trackers (`+trackerColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    name = excluded.name,
    last_reset = excluded.last_reset,
    last_check_in = excluded.last_check_in,
    updated_at = excluded.updated_at`,
		t.ID().String(),
		t.UserID().String(),
		t.Name(),
		database.FormatTime(t.LastReset()),
		database.FormatNullTime(t.LastCheckIn()),
		database.FormatTime(t.CreatedAt()),
		database.FormatTime(t.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("save addiction tracker %s: %w", t.ID(), err)
	}
	return nil
}

// FindByID retrieves a tracker by its ID.
func (r *AddictionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.AddictionTracker, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT `+trackerColumns+` FROM addiction_trackers WHERE id = ?`, id.String())

	t, err := scanTracker(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// FindByUserID returns the user's trackers in the order they were started.
func (r *AddictionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.AddictionTracker, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx,
		`SELECT `+trackerColumns+` FROM addiction_trackers WHERE user_id = ? ORDER BY created_at, id`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trackers []*domain.AddictionTracker
	for rows.Next() {
		t, err := scanTracker(rows)
		if err != nil {
			return nil, err
		}
		trackers = append(trackers, t)
	}
	return trackers, rows.Err()
}

// Delete removes a tracker. Deleting a missing row is not an error.
func (r *AddictionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, `DELETE FROM addiction_trackers WHERE id = ?`, id.String())
	return err
}

func scanTracker(row database.Row) (*domain.AddictionTracker, error) {
	var (
		id, userID, name, lastReset, createdAt, updatedAt string
		lastCheckIn                                       sql.NullString
	)
	if err := row.Scan(&id, &userID, &name, &lastReset, &lastCheckIn, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	ids, err := parseIDs(id, userID)
	if err != nil {
		return nil, err
	}
	times, err := parseTimes(lastReset, createdAt, updatedAt)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateAddictionTracker(ids[0], ids[1], name, times[0],
		database.ParseNullTime(lastCheckIn), times[1], times[2]), nil
}
