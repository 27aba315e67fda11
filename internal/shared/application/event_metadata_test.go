package application

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/felixgeelhaar/phoenix/pkg/observability"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	domain.BaseEvent
}

func newTestEvent(routingKey string) *testEvent {
	return &testEvent{BaseEvent: domain.NewBaseEvent(uuid.New(), "test", routingKey, time.Now())}
}

func TestNewEventMetadata(t *testing.T) {
	t.Run("generates ids when context has none", func(t *testing.T) {
		userID := uuid.New()

		first := NewEventMetadata(context.Background(), userID)
		second := NewEventMetadata(context.Background(), userID)

		assert.Equal(t, userID, first.UserID)
		assert.NotEqual(t, uuid.Nil, first.CorrelationID)
		assert.NotEqual(t, first.CorrelationID, second.CorrelationID)
		assert.NotEqual(t, first.CausationID, second.CausationID)
	})

	t.Run("reuses correlation id from context", func(t *testing.T) {
		correlationID := uuid.New()
		ctx := observability.WithCorrelationID(context.Background(), correlationID.String())

		metadata := NewEventMetadata(ctx, uuid.New())

		assert.Equal(t, correlationID, metadata.CorrelationID)
	})

	t.Run("ignores malformed correlation id", func(t *testing.T) {
		ctx := observability.WithCorrelationID(context.Background(), "not-a-uuid")

		metadata := NewEventMetadata(ctx, uuid.New())

		assert.NotEqual(t, uuid.Nil, metadata.CorrelationID)
	})
}

func TestApplyEventMetadata(t *testing.T) {
	userID := uuid.New()
	metadata := NewEventMetadata(context.Background(), userID)

	event1 := newTestEvent("tracking.meal.logged")
	event2 := newTestEvent("tracking.journal.written")

	ApplyEventMetadata([]domain.DomainEvent{event1, event2}, metadata)

	assert.Equal(t, metadata, event1.Metadata())
	assert.Equal(t, metadata, event2.Metadata())

	require.NotPanics(t, func() {
		ApplyEventMetadata(nil, metadata)
	})
}
