package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/google/uuid"
)

// JournalRepository implements domain.JournalRepository.
type JournalRepository struct {
	conn database.Connection
}

// NewJournalRepository creates a journal repository over conn.
func NewJournalRepository(conn database.Connection) *JournalRepository {
	return &JournalRepository{conn: conn}
}

const journalColumns = `id, user_id, entry_date, mood, reflection, triggers, created_at, updated_at`

// Save inserts the entry or updates it in place.
func (r *JournalRepository) Save(ctx context.Context, entry *domain.JournalEntry) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, `
INSERT INTO journal_entries (`+journalColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    entry_date = excluded.entry_date,
    mood = excluded.mood,
    reflection = excluded.reflection,
    triggers = excluded.triggers,
    updated_at = excluded.updated_at`,
		entry.ID().String(),
		entry.UserID().String(),
		database.FormatTime(entry.Date()),
		string(entry.Mood()),
		entry.Reflection(),
		entry.Triggers(),
		database.FormatTime(entry.CreatedAt()),
		database.FormatTime(entry.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("save journal entry %s: %w", entry.ID(), err)
	}
	return nil
}

// FindSince returns the user's entries dated at or after since.
func (r *JournalRepository) FindSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*domain.JournalEntry, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx,
		`SELECT `+journalColumns+` FROM journal_entries WHERE user_id = ? AND entry_date >= ? ORDER BY entry_date, created_at`,
		userID.String(), database.FormatTime(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.JournalEntry
	for rows.Next() {
		var id, uid, date, mood, reflection, triggers, createdAt, updatedAt string
		if err := rows.Scan(&id, &uid, &date, &mood, &reflection, &triggers, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		ids, err := parseIDs(id, uid)
		if err != nil {
			return nil, err
		}
		times, err := parseTimes(date, createdAt, updatedAt)
		if err != nil {
			return nil, err
		}

		entries = append(entries, domain.RehydrateJournalEntry(ids[0], ids[1], times[0],
			domain.Mood(mood), reflection, triggers, times[1], times[2]))
	}
	return entries, rows.Err()
}
