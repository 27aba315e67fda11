package eventbus_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/phoenix/pkg/observability"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mealLogged struct {
	domain.BaseEvent
	Calories int `json:"calories"`
}

func newMealLogged(calories int) *mealLogged {
	return &mealLogged{
		BaseEvent: domain.NewBaseEvent(uuid.New(), "Meal", "tracking.meal.logged", time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)),
		Calories:  calories,
	}
}

func TestNewEnvelope(t *testing.T) {
	event := newMealLogged(420)
	userID := uuid.New()
	correlationID := uuid.New()
	event.SetMetadata(domain.EventMetadata{UserID: userID, CorrelationID: correlationID})

	envelope, err := eventbus.NewEnvelope(event)
	require.NoError(t, err)

	assert.Equal(t, event.EventID(), envelope.EventID)
	assert.Equal(t, event.AggregateID(), envelope.AggregateID)
	assert.Equal(t, "Meal", envelope.AggregateType)
	assert.Equal(t, "tracking.meal.logged", envelope.RoutingKey)
	assert.Equal(t, userID, envelope.Metadata.UserID)
	assert.Equal(t, correlationID.String(), envelope.Metadata.CorrelationID)
	assert.Empty(t, envelope.Metadata.CausationID)

	var payload struct {
		Calories int `json:"calories"`
	}
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, 420, payload.Calories)
}

func TestDecodeEnvelope(t *testing.T) {
	body, err := json.Marshal(&eventbus.ConsumedEvent{EventID: uuid.New()})
	require.NoError(t, err)

	event, err := eventbus.DecodeEnvelope("tracking.goal.completed", body)
	require.NoError(t, err)
	assert.Equal(t, "tracking.goal.completed", event.RoutingKey)

	_, err = eventbus.DecodeEnvelope("x", []byte("not json"))
	assert.Error(t, err)
}

func TestInProcessEventBus_Publish(t *testing.T) {
	metrics := observability.NewInMemoryMetrics()
	bus := eventbus.NewInProcessEventBus(observability.NewTestLogger(), metrics)

	consumer := &mockConsumer{eventTypes: []string{"tracking.meal.logged"}}
	bus.RegisterConsumer(consumer)

	envelope, err := eventbus.NewEnvelope(newMealLogged(300))
	require.NoError(t, err)
	payload, err := json.Marshal(envelope)
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), "tracking.meal.logged", payload))

	require.Len(t, consumer.events, 1)
	assert.Equal(t, envelope.EventID, consumer.events[0].EventID)
	assert.Equal(t, int64(1), metrics.GetCounter("phoenix.events.consumed", observability.T("routing_key", "tracking.meal.logged")))
}

func TestInProcessEventBus_PublishSwallowsFailures(t *testing.T) {
	bus := eventbus.NewInProcessEventBus(nil, nil)
	consumer := &mockConsumer{eventTypes: []string{"tracking.meal.logged"}, err: errors.New("boom")}
	bus.RegisterConsumer(consumer)

	payload, err := json.Marshal(&eventbus.ConsumedEvent{RoutingKey: "tracking.meal.logged"})
	require.NoError(t, err)

	assert.NoError(t, bus.Publish(context.Background(), "tracking.meal.logged", payload))
	assert.NoError(t, bus.Publish(context.Background(), "tracking.meal.logged", []byte("{broken")))
	assert.Len(t, consumer.events, 1)
}

func TestInProcessEventBus_PublishConsumedEventReportsFailures(t *testing.T) {
	bus := eventbus.NewInProcessEventBus(nil, nil)
	bus.RegisterConsumer(&mockConsumer{eventTypes: []string{"tracking.meal.logged"}, err: errors.New("boom")})

	err := bus.PublishConsumedEvent(context.Background(), &eventbus.ConsumedEvent{RoutingKey: "tracking.meal.logged"})
	assert.Error(t, err)
	assert.Equal(t, 1, bus.Registry().ConsumerCount())
	assert.NoError(t, bus.Close())
}

func TestNoopPublisher(t *testing.T) {
	p := eventbus.NewNoopPublisher(nil)
	assert.NoError(t, p.Publish(context.Background(), "tracking.meal.logged", []byte("{}")))
	assert.NoError(t, p.Close())
}
