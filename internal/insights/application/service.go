// Package application serves derived wellness metrics. It loads a Snapshot
// of a user's tracked data and memoizes the pure computations of the
// insights domain.
package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/phoenix/internal/insights/domain"
	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	tracking "github.com/felixgeelhaar/phoenix/internal/tracking/domain"
	"github.com/felixgeelhaar/phoenix/pkg/observability"
)

// DefaultCacheTTL is how long a memoized metric is kept.
const DefaultCacheTTL = 5 * time.Minute

// GroceryDays is the number of days of meals the grocery list covers.
const GroceryDays = 7

// Cache memoizes encoded metric values.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Repositories are the tracking stores a snapshot is read from.
type Repositories struct {
	Meals       tracking.MealRepository
	Supplements tracking.SupplementRepository
	Addictions  tracking.AddictionRepository
	Journal     tracking.JournalRepository
	Goals       tracking.GoalRepository
	Routines    tracking.RoutineRepository
}

// Service computes derived metrics for a user.
type Service struct {
	repos   Repositories
	cache   Cache
	ttl     time.Duration
	clock   sharedDomain.Clock
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewService creates a new insights service. cache may be nil.
func NewService(
	repos Repositories,
	cache Cache,
	ttl time.Duration,
	clock sharedDomain.Clock,
	logger *slog.Logger,
	metrics observability.Metrics,
) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &Service{
		repos:   repos,
		cache:   cache,
		ttl:     ttl,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// LoadSnapshot reads everything the metrics look at, as of now.
func (s *Service) LoadSnapshot(ctx context.Context, userID uuid.UUID, now time.Time) (domain.Snapshot, error) {
	// Patterns look back 30 days, the weekly report 14.
	since := sharedDomain.AddDays(sharedDomain.StartOfDay(now), -domain.PatternWindowDays)
	var snap domain.Snapshot

	meals, err := s.repos.Meals.FindSince(ctx, userID, since)
	if err != nil {
		return snap, fmt.Errorf("load meals: %w", err)
	}
	for _, m := range meals {
		n := m.Nutrition()
		snap.Meals = append(snap.Meals, domain.MealRecord{
			Type:        m.Type(),
			Name:        m.Name(),
			Calories:    n.Calories,
			Protein:     n.Protein,
			Ingredients: m.IngredientsText(),
			At:          m.EatenAt(),
			Completed:   m.IsCompleted(),
		})
	}

	supplements, err := s.repos.Supplements.FindByUserID(ctx, userID)
	if err != nil {
		return snap, fmt.Errorf("load supplements: %w", err)
	}
	for _, sp := range supplements {
		snap.Supplements = append(snap.Supplements, domain.SupplementRecord{
			Name:       sp.Name(),
			TakenToday: sp.IsTakenOn(now),
			History:    sp.History(),
		})
	}

	trackers, err := s.repos.Addictions.FindByUserID(ctx, userID)
	if err != nil {
		return snap, fmt.Errorf("load trackers: %w", err)
	}
	for _, t := range trackers {
		snap.Trackers = append(snap.Trackers, domain.TrackerRecord{
			ID:        t.ID(),
			Name:      t.Name(),
			LastReset: t.LastReset(),
		})
	}

	entries, err := s.repos.Journal.FindSince(ctx, userID, since)
	if err != nil {
		return snap, fmt.Errorf("load journal: %w", err)
	}
	for _, j := range entries {
		snap.Journal = append(snap.Journal, domain.JournalRecord{Date: j.Date(), Mood: j.Mood()})
	}

	goals, err := s.repos.Goals.FindByUserID(ctx, userID)
	if err != nil {
		return snap, fmt.Errorf("load goals: %w", err)
	}
	for _, g := range goals {
		snap.Goals = append(snap.Goals, domain.GoalRecord{
			Title:       g.Title(),
			Completed:   g.IsCompleted(),
			StartedAt:   g.StartedAt(),
			CompletedAt: g.CompletedAt(),
		})
	}

	routines, err := s.repos.Routines.FindSince(ctx, userID, since)
	if err != nil {
		return snap, fmt.Errorf("load routines: %w", err)
	}
	for _, r := range routines {
		snap.Routines = append(snap.Routines, domain.RoutineRecord{Date: r.Date(), Percentage: r.Percentage()})
	}

	return snap, nil
}

// Score returns today's Rebirth Score.
func (s *Service) Score(ctx context.Context, userID uuid.UUID) (domain.RebirthScore, error) {
	score, err := derive(ctx, s, "score", userID, domain.ComputeScore)
	if err == nil {
		s.metrics.Gauge(observability.MetricRebirthScore, float64(score.Total))
	}
	return score, err
}

// Patterns returns the triggered heuristics over the trailing 30 days.
func (s *Service) Patterns(ctx context.Context, userID uuid.UUID) ([]domain.Insight, error) {
	insights, err := derive(ctx, s, "patterns", userID, domain.DetectPatterns)
	if err == nil {
		s.metrics.Counter(observability.MetricInsightsEmitted, int64(len(insights)))
	}
	return insights, err
}

// Predictions returns the naive predictions for today and tomorrow.
func (s *Service) Predictions(ctx context.Context, userID uuid.UUID) ([]domain.Prediction, error) {
	return derive(ctx, s, "predictions", userID, domain.Predict)
}

// WeeklyReport summarizes the last seven days.
func (s *Service) WeeklyReport(ctx context.Context, userID uuid.UUID) (domain.WeeklyReport, error) {
	report, err := derive(ctx, s, "weekly_report", userID, domain.BuildWeeklyReport)
	if err != nil {
		return report, err
	}
	// A cached report may be up to an hour old; End is the time of this read.
	report.End = s.clock.Now()
	return report, nil
}

// Streaks returns the state of every addiction tracker.
func (s *Service) Streaks(ctx context.Context, userID uuid.UUID) ([]domain.Streak, error) {
	return derive(ctx, s, "streaks", userID, func(now time.Time, snap domain.Snapshot) []domain.Streak {
		return domain.Streaks(now, snap.Trackers)
	})
}

// Compliance returns each supplement's weekly compliance.
func (s *Service) Compliance(ctx context.Context, userID uuid.UUID) ([]domain.SupplementCompliance, error) {
	return derive(ctx, s, "compliance", userID, func(_ time.Time, snap domain.Snapshot) []domain.SupplementCompliance {
		return domain.Compliance(snap)
	})
}

// GroceryList aggregates the ingredients of the last week's meals.
func (s *Service) GroceryList(ctx context.Context, userID uuid.UUID) ([]domain.GroceryItem, error) {
	return derive(ctx, s, "grocery", userID, func(now time.Time, snap domain.Snapshot) []domain.GroceryItem {
		since := sharedDomain.AddDays(sharedDomain.StartOfDay(now), -(GroceryDays - 1))
		var meals []domain.MealRecord
		for _, m := range snap.Meals {
			if !m.At.Before(since) {
				meals = append(meals, m)
			}
		}
		return domain.GroceryList(meals)
	})
}

// derive loads a snapshot and returns compute's result, memoized when a
// cache is configured. Cache failures are logged and never returned.
func derive[T any](ctx context.Context, s *Service, metric string, userID uuid.UUID, compute func(time.Time, domain.Snapshot) T) (T, error) {
	var zero T
	now := s.clock.Now()

	snap, err := observability.TimeOperationResult(ctx, s.logger, s.metrics, "insights.load_snapshot",
		func() (domain.Snapshot, error) { return s.LoadSnapshot(ctx, userID, now) })
	if err != nil {
		return zero, err
	}
	if s.cache == nil {
		return compute(now, snap), nil
	}

	key := cacheKey(metric, userID, now, snap)
	if raw, found, err := s.cache.Get(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "cache read failed", "metric", metric, "error", err)
	} else if found {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		s.logger.WarnContext(ctx, "discarding undecodable cache entry", "metric", metric)
	}

	result := compute(now, snap)
	if raw, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
			s.logger.WarnContext(ctx, "cache write failed", "metric", metric, "error", err)
		}
	}
	return result, nil
}

// cacheKey covers every input of a metric: the snapshot content, the hour
// of now, and each tracker's day count, which can change at any minute.
// Values that carry now itself are only accurate to the hour and must be
// restamped by the caller.
func cacheKey(metric string, userID uuid.UUID, now time.Time, snap domain.Snapshot) string {
	days := make([]string, 0, len(snap.Trackers))
	for _, t := range snap.Trackers {
		days = append(days, strconv.Itoa(domain.DaysSince(now, t.LastReset)))
	}
	return fmt.Sprintf("insights:%s:%s:%s:%016x:%s",
		metric, userID, now.Format("2006-01-02T15Z0700"), snap.Fingerprint(), strings.Join(days, ","))
}
