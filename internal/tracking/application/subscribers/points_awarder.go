package subscribers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/felixgeelhaar/phoenix/pkg/observability"
	"github.com/google/uuid"
)

// reasons maps the routing keys that earn points to their ledger reason.
var reasons = map[string]domain.PointsReason{
	domain.RoutingMealLogged:      domain.ReasonMealLogged,
	domain.RoutingSupplementTaken: domain.ReasonSupplementTaken,
	domain.RoutingStreakCheckedIn: domain.ReasonStreakDay,
	domain.RoutingJournalWritten:  domain.ReasonJournalWritten,
	domain.RoutingGoalCompleted:   domain.ReasonGoalCompleted,
	domain.RoutingRoutineLogged:   domain.ReasonRoutineCompleted,
}

// PointsAwarder credits Phoenix Points for logged wellness actions. Each
// event is credited at most once, keyed on its event id, so redelivered
// messages are harmless.
type PointsAwarder struct {
	pointsRepo domain.PointsRepository
	clock      sharedDomain.Clock
	logger     *slog.Logger
	metrics    observability.Metrics
}

// NewPointsAwarder creates a new points awarder.
func NewPointsAwarder(pointsRepo domain.PointsRepository, clock sharedDomain.Clock, logger *slog.Logger) *PointsAwarder {
	if logger == nil {
		logger = slog.Default()
	}
	return &PointsAwarder{
		pointsRepo: pointsRepo,
		clock:      clock,
		logger:     logger,
		metrics:    observability.NoopMetrics{},
	}
}

// WithMetrics records awarded points on m.
func (a *PointsAwarder) WithMetrics(m observability.Metrics) *PointsAwarder {
	if m != nil {
		a.metrics = m
	}
	return a
}

// EventTypes returns the event types this subscriber handles.
func (a *PointsAwarder) EventTypes() []string {
	return []string{
		domain.RoutingMealLogged,
		domain.RoutingSupplementTaken,
		domain.RoutingStreakCheckedIn,
		domain.RoutingJournalWritten,
		domain.RoutingGoalCompleted,
		domain.RoutingRoutineLogged,
	}
}

// eventPayload holds the fields shared by the rewarded events.
type eventPayload struct {
	UserID     uuid.UUID `json:"user_id"`
	Percentage *int      `json:"percentage,omitempty"`
}

// Handle processes an event.
func (a *PointsAwarder) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	reason, ok := reasons[event.RoutingKey]
	if !ok {
		a.logger.Warn("unknown event type", "routing_key", event.RoutingKey)
		return nil
	}

	var payload eventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("decode %s payload: %w", event.RoutingKey, err)
	}

	// Partial routines are logged but not rewarded.
	if reason == domain.ReasonRoutineCompleted && (payload.Percentage == nil || *payload.Percentage < 100) {
		return nil
	}

	userID := payload.UserID
	if userID == uuid.Nil {
		userID = event.Metadata.UserID
	}
	if userID == uuid.Nil {
		a.logger.Warn("event without user, not awarding points",
			"routing_key", event.RoutingKey,
			"event_id", event.EventID,
		)
		return nil
	}

	award, err := domain.NewAward(userID, reason, event.EventID, a.clock.Now())
	if err != nil {
		return err
	}

	added, err := a.pointsRepo.Add(ctx, award)
	if err != nil {
		return err
	}
	if !added {
		a.logger.Debug("points already awarded", "event_id", event.EventID)
		return nil
	}

	a.metrics.Counter(observability.MetricPointsAwarded, int64(award.Amount), observability.T("reason", string(reason)))
	a.logger.Info("points awarded",
		"user_id", userID,
		"reason", string(reason),
		"amount", award.Amount,
	)
	return nil
}
