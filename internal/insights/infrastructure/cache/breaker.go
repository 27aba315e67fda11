package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/felixgeelhaar/phoenix/pkg/observability"
)

// Store is the contract shared by every cache back-end.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// BreakerConfig configures the circuit breaker guarding the primary store.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens the
	// circuit.
	FailureThreshold uint32
	// MaxRequests is the number of trial requests allowed half-open.
	MaxRequests uint32
	// Timeout is how long the circuit stays open.
	Timeout time.Duration
}

// DefaultBreakerConfig returns the settings used when none are configured.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 3,
		MaxRequests:      1,
		Timeout:          30 * time.Second,
	}
}

type lookup struct {
	value []byte
	found bool
}

// BreakerCache routes calls to a primary store through a circuit breaker.
// Failures and open-circuit rejections fall through to the fallback store,
// so callers never see a primary outage.
type BreakerCache struct {
	primary  Store
	fallback Store
	breaker  *gobreaker.CircuitBreaker[any]
	logger   *slog.Logger
	metrics  observability.Metrics
}

// NewBreakerCache wraps primary. fallback may be nil, in which case a
// failing primary behaves like a miss.
func NewBreakerCache(primary, fallback Store, cfg BreakerConfig, logger *slog.Logger, metrics observability.Metrics) *BreakerCache {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultBreakerConfig().FailureThreshold
	}

	settings := gobreaker.Settings{
		Name:        "cache",
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("cache circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &BreakerCache{
		primary:  primary,
		fallback: fallback,
		breaker:  gobreaker.NewCircuitBreaker[any](settings),
		logger:   logger,
		metrics:  metrics,
	}
}

// State reports the breaker state.
func (c *BreakerCache) State() gobreaker.State {
	return c.breaker.State()
}

func (c *BreakerCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		value, found, err := c.primary.Get(ctx, key)
		return lookup{value: value, found: found}, err
	})
	if err == nil {
		l := result.(lookup)
		c.count(l.found)
		return l.value, l.found, nil
	}

	c.failed("get", err)
	if c.fallback == nil {
		c.count(false)
		return nil, false, nil
	}
	value, found, err := c.fallback.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	c.count(found)
	return value, found, nil
}

func (c *BreakerCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.primary.Set(ctx, key, value, ttl)
	})
	if err == nil {
		return nil
	}

	c.failed("set", err)
	if c.fallback == nil {
		return nil
	}
	return c.fallback.Set(ctx, key, value, ttl)
}

func (c *BreakerCache) failed(op string, err error) {
	c.metrics.Counter(observability.MetricCacheErrors, 1, observability.T("op", op))
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.Debug("cache circuit open, using fallback", "op", op)
		return
	}
	c.logger.Warn("cache primary failed, using fallback", "op", op, "error", err)
}

func (c *BreakerCache) count(found bool) {
	if found {
		c.metrics.Counter(observability.MetricCacheHits, 1)
	} else {
		c.metrics.Counter(observability.MetricCacheMisses, 1)
	}
}
