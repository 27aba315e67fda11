package commands

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/phoenix/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// ErrNotOwner is returned when a command targets another user's record.
var ErrNotOwner = errors.New("user does not own this record")

// saveEvents stamps the aggregate's pending events and stores them in the
// outbox within the caller's transaction.
func saveEvents(ctx context.Context, outboxRepo outbox.Repository, userID uuid.UUID, aggregate sharedDomain.AggregateRoot) error {
	events := aggregate.DomainEvents()
	if len(events) == 0 {
		return nil
	}

	application.ApplyEventMetadata(events, application.NewEventMetadata(ctx, userID))

	msgs, err := outbox.NewMessages(events)
	if err != nil {
		return err
	}
	if err := outboxRepo.SaveBatch(ctx, msgs); err != nil {
		return err
	}

	aggregate.ClearDomainEvents()
	return nil
}

// orNow returns *at when set, else now.
func orNow(at *time.Time, now time.Time) time.Time {
	if at == nil {
		return now
	}
	return *at
}
