package persistence

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
)

// PointsRepository implements domain.PointsRepository.
type PointsRepository struct {
	conn database.Connection
}

// NewPointsRepository creates a points ledger over conn.
func NewPointsRepository(conn database.Connection) *PointsRepository {
	return &PointsRepository{conn: conn}
}

// Add stores award unless the ledger already holds one for its source event.
func (r *PointsRepository) Add(ctx context.Context, award *domain.Award) (bool, error) {
	res, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, `
INSERT INTO point_awards (id, user_id, reason, amount, source_event_id, awarded_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (source_event_id) DO NOTHING`,
		award.ID.String(),
		award.UserID.String(),
		string(award.Reason),
		award.Amount,
		award.SourceEventID.String(),
		database.FormatTime(award.AwardedAt),
	)
	if err != nil {
		return false, fmt.Errorf("add points for event %s: %w", award.SourceEventID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Total returns the user's balance.
func (r *PointsRepository) Total(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	err := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT CAST(COALESCE(SUM(amount), 0) AS INTEGER) FROM point_awards WHERE user_id = ?`, userID.String()).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Recent returns the newest awards first.
func (r *PointsRepository) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Award, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, `
SELECT id, user_id, reason, amount, source_event_id, awarded_at
FROM point_awards
WHERE user_id = ?
ORDER BY awarded_at DESC, id
LIMIT ?`, userID.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var awards []*domain.Award
	for rows.Next() {
		var (
			id, uid, reason, source, awardedAt string
			amount                             int
		)
		if err := rows.Scan(&id, &uid, &reason, &amount, &source, &awardedAt); err != nil {
			return nil, err
		}

		ids, err := parseIDs(id, uid, source)
		if err != nil {
			return nil, err
		}
		times, err := parseTimes(awardedAt)
		if err != nil {
			return nil, err
		}

		awards = append(awards, &domain.Award{
			ID:            ids[0],
			UserID:        ids[1],
			Reason:        domain.PointsReason(reason),
			Amount:        amount,
			SourceEventID: ids[2],
			AwardedAt:     times[0],
		})
	}
	return awards, rows.Err()
}
