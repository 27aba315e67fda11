package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// SQLRepository implements Repository for both database backends.
type SQLRepository struct {
	conn database.Connection
	now  func() time.Time
}

// NewSQLRepository creates an outbox repository over conn.
func NewSQLRepository(conn database.Connection) *SQLRepository {
	return &SQLRepository{conn: conn, now: time.Now}
}

const insertMessage = `
INSERT INTO outbox_messages (
    event_id, aggregate_type, aggregate_id, event_type, routing_key,
    payload, metadata, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id`

const messageColumns = `
id, event_id, aggregate_type, aggregate_id, event_type, routing_key,
payload, metadata, created_at, published_at, next_retry_at, retry_count,
last_error, dead_lettered_at, dead_letter_reason`

// Save stores a new outbox message.
func (r *SQLRepository) Save(ctx context.Context, msg *Message) error {
	return r.insert(ctx, database.ExecutorFromContext(ctx, r.conn), msg)
}

// SaveBatch stores msgs in the caller's transaction, or in a new one.
func (r *SQLRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	if len(msgs) == 0 {
		return nil
	}

	uow := database.NewUnitOfWork(r.conn)
	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}

	exec := database.ExecutorFromContext(txCtx, r.conn)
	for _, msg := range msgs {
		if err := r.insert(txCtx, exec, msg); err != nil {
			_ = uow.Rollback(txCtx)
			return err
		}
	}
	return uow.Commit(txCtx)
}

func (r *SQLRepository) insert(ctx context.Context, exec database.Executor, msg *Message) error {
	metadata := sql.NullString{String: string(msg.Metadata), Valid: len(msg.Metadata) > 0}
	err := exec.QueryRow(ctx, insertMessage,
		msg.EventID.String(),
		msg.AggregateType,
		msg.AggregateID.String(),
		msg.EventType,
		msg.RoutingKey,
		string(msg.Payload),
		metadata,
		database.FormatTime(msg.CreatedAt),
	).Scan(&msg.ID)
	if err != nil {
		return fmt.Errorf("insert outbox message %s: %w", msg.EventID, err)
	}
	return nil
}

// GetUnpublished returns pending messages that are due, oldest first.
func (r *SQLRepository) GetUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, `
SELECT `+messageColumns+`
FROM outbox_messages
WHERE published_at IS NULL
  AND dead_lettered_at IS NULL
  AND (next_retry_at IS NULL OR next_retry_at <= ?)
ORDER BY id
LIMIT ?`, database.FormatTime(r.now()), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// MarkPublished marks a message as successfully published.
func (r *SQLRepository) MarkPublished(ctx context.Context, id int64) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx,
		`UPDATE outbox_messages SET published_at = ? WHERE id = ?`,
		database.FormatTime(r.now()), id)
	return err
}

// MarkFailed records a publish failure and schedules the next attempt.
func (r *SQLRepository) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, `
UPDATE outbox_messages
SET retry_count = retry_count + 1, last_error = ?, next_retry_at = ?
WHERE id = ?`, errMsg, database.FormatTime(nextRetryAt), id)
	return err
}

// MarkDead marks a message as dead-lettered.
func (r *SQLRepository) MarkDead(ctx context.Context, id int64, reason string) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, `
UPDATE outbox_messages
SET dead_lettered_at = ?, dead_letter_reason = ?
WHERE id = ?`, database.FormatTime(r.now()), reason, id)
	return err
}

// DeleteOld removes published messages created before the cutoff.
func (r *SQLRepository) DeleteOld(ctx context.Context, before time.Time) (int64, error) {
	res, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, `
DELETE FROM outbox_messages
WHERE published_at IS NOT NULL AND created_at < ?`, database.FormatTime(before))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanMessage(row database.Row) (*Message, error) {
	var (
		msg                                                               Message
		eventID, aggregateID, payload, createdAt                          string
		metadata, publishedAt, nextRetryAt, lastError, deadAt, deadReason sql.NullString
	)
	err := row.Scan(
		&msg.ID, &eventID, &msg.AggregateType, &aggregateID, &msg.EventType, &msg.RoutingKey,
		&payload, &metadata, &createdAt, &publishedAt, &nextRetryAt, &msg.RetryCount,
		&lastError, &deadAt, &deadReason,
	)
	if err != nil {
		return nil, err
	}

	msg.EventID, _ = uuid.Parse(eventID)
	msg.AggregateID, _ = uuid.Parse(aggregateID)
	msg.Payload = json.RawMessage(payload)
	if metadata.Valid {
		msg.Metadata = json.RawMessage(metadata.String)
	}
	msg.CreatedAt, _ = database.ParseTime(createdAt)
	msg.PublishedAt = database.ParseNullTime(publishedAt)
	msg.NextRetryAt = database.ParseNullTime(nextRetryAt)
	msg.DeadLetteredAt = database.ParseNullTime(deadAt)
	if lastError.Valid {
		msg.LastError = &lastError.String
	}
	if deadReason.Valid {
		msg.DeadLetterReason = &deadReason.String
	}
	return &msg, nil
}
