package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
)

// SupplementRepository implements domain.SupplementRepository.
type SupplementRepository struct {
	conn database.Connection
}

// NewSupplementRepository creates a supplement repository over conn.
func NewSupplementRepository(conn database.Connection) *SupplementRepository {
	return &SupplementRepository{conn: conn}
}

const supplementColumns = `id, user_id, name, dosage, time_of_day, taken_today, last_taken_at, weekly_history, created_at, updated_at`

// Save inserts the supplement or updates it in place.
func (r *SupplementRepository) Save(ctx context.Context, s *domain.Supplement) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, `
INSERT INTO supplements (`+supplementColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    name = excluded.name,
    dosage = excluded.dosage,
    time_of_day = excluded.time_of_day,
    taken_today = excluded.taken_today,
    last_taken_at = excluded.last_taken_at,
    weekly_history = excluded.weekly_history,
    updated_at = excluded.updated_at`,
		s.ID().String(),
		s.UserID().String(),
		s.Name(),
		s.Dosage(),
		string(s.TimeOfDay()),
		database.BoolToInt(s.TakenToday()),
		database.FormatNullTime(s.LastTakenAt()),
		s.History().String(),
		database.FormatTime(s.CreatedAt()),
		database.FormatTime(s.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("save supplement %s: %w", s.ID(), err)
	}
	return nil
}

// FindByID retrieves a supplement by its ID.
func (r *SupplementRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Supplement, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT `+supplementColumns+` FROM supplements WHERE id = ?`, id.String())

	s, err := scanSupplement(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// FindByUserID returns the user's supplements in the order they were added.
func (r *SupplementRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Supplement, error) {
	return r.query(ctx, `SELECT `+supplementColumns+` FROM supplements WHERE user_id = ? ORDER BY created_at, id`, userID.String())
}

// FindAll returns every supplement.
func (r *SupplementRepository) FindAll(ctx context.Context) ([]*domain.Supplement, error) {
	return r.query(ctx, `SELECT `+supplementColumns+` FROM supplements ORDER BY created_at, id`)
}

// Delete removes a supplement. Deleting a missing row is not an error.
func (r *SupplementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, `DELETE FROM supplements WHERE id = ?`, id.String())
	return err
}

func (r *SupplementRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Supplement, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var supplements []*domain.Supplement
	for rows.Next() {
		s, err := scanSupplement(rows)
		if err != nil {
			return nil, err
		}
		supplements = append(supplements, s)
	}
	return supplements, rows.Err()
}

func scanSupplement(row database.Row) (*domain.Supplement, error) {
	var (
		id, userID, name, dosage, timeOfDay, history, createdAt, updatedAt string
		takenToday                                                         int
		lastTakenAt                                                        sql.NullString
	)
	if err := row.Scan(&id, &userID, &name, &dosage, &timeOfDay, &takenToday, &lastTakenAt,
		&history, &createdAt, &updatedAt); err != nil {
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
	weekly, err := domain.ParseWeeklyHistory(history)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateSupplement(ids[0], ids[1], name, dosage, domain.TimeOfDay(timeOfDay),
		takenToday != 0, database.ParseNullTime(lastTakenAt), weekly, times[0], times[1]), nil
}
