package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	insightsApp "github.com/felixgeelhaar/phoenix/internal/insights/application"
	"github.com/felixgeelhaar/phoenix/internal/insights/infrastructure/cache"
	sharedApplication "github.com/felixgeelhaar/phoenix/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/commands"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/queries"
	"github.com/felixgeelhaar/phoenix/internal/tracking/application/subscribers"
	"github.com/felixgeelhaar/phoenix/internal/tracking/infrastructure/memory"
	"github.com/felixgeelhaar/phoenix/pkg/config"
	"github.com/felixgeelhaar/phoenix/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics observability.Metrics
	Clock   sharedDomain.Clock
	Health  *observability.HealthRegistry

	// UserID is the user every CLI and MCP call acts for.
	UserID uuid.UUID

	// Prometheus is set in server mode, where the worker serves /metrics.
	Prometheus *observability.PrometheusMetrics

	// Database
	DBConn   database.Connection
	DBDriver database.Driver

	// Redis
	RedisClient *redis.Client

	// Repositories
	Repos      Repositories
	OutboxRepo outbox.Repository
	UnitOfWork sharedApplication.UnitOfWork

	// Events
	EventPublisher    eventbus.Publisher
	InProcessEventBus *eventbus.InProcessEventBus
	OutboxProcessor   *outbox.Processor
	PointsAwarder     *subscribers.PointsAwarder

	// Meal handlers
	LogMealHandler      *commands.LogMealHandler
	CompleteMealHandler *commands.CompleteMealHandler
	ListMealsHandler    *queries.ListMealsHandler

	// Supplement handlers
	AddSupplementHandler    *commands.AddSupplementHandler
	TakeSupplementHandler   *commands.TakeSupplementHandler
	DeleteSupplementHandler *commands.DeleteSupplementHandler
	ResetSupplementsHandler *commands.ResetSupplementsHandler
	ListSupplementsHandler  *queries.ListSupplementsHandler

	// Addiction tracker handlers
	StartAddictionHandler *commands.StartAddictionHandler
	TrackerActionHandler  *commands.TrackerActionHandler

	// Journal, goal and routine handlers
	WriteJournalHandler *commands.WriteJournalHandler
	ListJournalHandler  *queries.ListJournalHandler
	CreateGoalHandler   *commands.CreateGoalHandler
	CompleteGoalHandler *commands.CompleteGoalHandler
	ListGoalsHandler    *queries.ListGoalsHandler
	LogRoutineHandler   *commands.LogRoutineHandler
	ListRoutinesHandler *queries.ListRoutinesHandler
	GetPointsHandler    *queries.GetPointsHandler

	// Insights
	MetricsCache    insightsApp.Cache
	InsightsService *insightsApp.Service
}

// NewContainer creates the server-mode container: PostgreSQL, an optional
// Redis metrics cache and RabbitMQ for event delivery.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	userID, err := parseUserID(cfg.UserID)
	if err != nil {
		return nil, err
	}

	prom := observability.NewPrometheusMetrics()
	c := &Container{
		Config:     cfg,
		Logger:     logger,
		Metrics:    prom,
		Prometheus: prom,
		Clock:      sharedDomain.NewSystemClock(cfg.Location()),
		Health:     observability.NewHealthRegistry(),
		UserID:     userID,
	}

	conn, err := database.NewConnection(ctx, database.Config{
		Driver:     database.Driver(cfg.DatabaseDriver),
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DBConn = conn
	c.DBDriver = conn.Driver()
	logger.Info("connected to database", "driver", c.DBDriver)

	if err := migrations.Run(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	factory := NewRepositoryFactory(conn)
	c.Repos = factory.Repositories()
	c.UnitOfWork = factory.UnitOfWork()
	c.Health.Register("database", observability.DatabaseHealthChecker(conn.Ping))

	// Connect to Redis (optional)
	memoryCache := cache.NewMemoryCache(c.Clock)
	c.MetricsCache = memoryCache
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			if !cfg.IsDevelopment() {
				conn.Close()
				return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
			}
			logger.Warn("invalid Redis URL, metrics cache will stay in memory", "error", err)
		} else {
			redisClient := redis.NewClient(opt)
			if err := redisClient.Ping(ctx).Err(); err != nil {
				logger.Warn("Redis not available, the breaker will serve from memory", "error", err)
			} else {
				logger.Info("connected to Redis")
			}
			c.RedisClient = redisClient
			c.MetricsCache = cache.NewBreakerCache(
				cache.NewRedisCache(redisClient),
				memoryCache,
				cache.BreakerConfig{
					FailureThreshold: uint32(max(cfg.CacheBreakerFailures, 1)),
					MaxRequests:      uint32(max(cfg.CacheBreakerMaxRequest, 1)),
					Timeout:          cfg.CacheBreakerTimeout,
				},
				logger,
				c.Metrics,
			)
			c.Health.Register("redis", observability.RedisHealthChecker(func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			}))
		}
	}

	// Create event publisher
	switch {
	case cfg.RabbitMQURL == "":
		logger.Info("no RabbitMQ configured, dispatching events in process")
		c.EventPublisher = c.newInProcessBus()
	default:
		publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger, c.Metrics)
		if err != nil {
			// Fall back to noop publisher in development
			if !cfg.IsDevelopment() {
				c.Close()
				return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
			}
			logger.Warn("RabbitMQ not available, using noop publisher", "error", err)
			c.EventPublisher = eventbus.NewNoopPublisher(logger)
		} else {
			c.EventPublisher = publisher
			c.Health.Register("rabbitmq", observability.RabbitMQHealthChecker(publisher.Check))
		}
	}

	c.wire()
	return c, nil
}

// NewLocalContainer creates a container for local mode with SQLite.
// This provides zero-config operation without requiring PostgreSQL, Redis, or RabbitMQ.
func NewLocalContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	userID, err := parseUserID(cfg.UserID)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NoopMetrics{},
		Clock:   sharedDomain.NewSystemClock(cfg.Location()),
		Health:  observability.NewHealthRegistry(),
		UserID:  userID,
	}

	conn, err := database.NewConnection(ctx, database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite: %w", err)
	}
	c.DBConn = conn
	c.DBDriver = database.DriverSQLite

	logger.Debug("running SQLite migrations")
	if err := migrations.Run(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	factory := NewRepositoryFactory(conn)
	c.Repos = factory.Repositories()
	c.UnitOfWork = factory.UnitOfWork()
	c.Health.Register("database", observability.DatabaseHealthChecker(conn.Ping))

	c.MetricsCache = cache.NewMemoryCache(c.Clock)
	c.EventPublisher = c.newInProcessBus()
	c.wire()

	logger.Debug("local mode container initialized",
		"db_path", cfg.SQLitePath,
		"user_id", c.UserID,
	)
	return c, nil
}

// NewMemoryContainer creates a container over an in-process store. Nothing
// is persisted; tests and demos use it.
func NewMemoryContainer(cfg *config.Config, logger *slog.Logger, clock sharedDomain.Clock) (*Container, error) {
	userID, err := parseUserID(cfg.UserID)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = sharedDomain.NewSystemClock(cfg.Location())
	}

	c := &Container{
		Config:     cfg,
		Logger:     logger,
		Metrics:    observability.NewInMemoryMetrics(),
		Clock:      clock,
		Health:     observability.NewHealthRegistry(),
		UserID:     userID,
		Repos:      MemoryRepositories(memory.NewStore()),
		UnitOfWork: sharedApplication.NoopUnitOfWork{},
	}
	c.MetricsCache = cache.NewMemoryCache(clock)
	c.EventPublisher = c.newInProcessBus()
	c.wire()
	return c, nil
}

// newInProcessBus creates the bus used when events never leave the process.
// Points are awarded synchronously when the outbox is drained.
func (c *Container) newInProcessBus() *eventbus.InProcessEventBus {
	c.InProcessEventBus = eventbus.NewInProcessEventBus(c.Logger, c.Metrics)
	return c.InProcessEventBus
}

// wire creates handlers once repositories, unit of work and publisher exist.
func (c *Container) wire() {
	repos := c.Repos
	uow := c.UnitOfWork
	clock := c.Clock
	c.OutboxRepo = repos.Outbox

	c.PointsAwarder = subscribers.NewPointsAwarder(repos.Points, clock, c.Logger).WithMetrics(c.Metrics)
	if c.InProcessEventBus != nil {
		c.InProcessEventBus.RegisterConsumer(c.PointsAwarder)
	}
	c.OutboxProcessor = outbox.NewProcessor(repos.Outbox, c.EventPublisher, processorConfig(c.Config), c.Logger)

	// Meals
	c.LogMealHandler = commands.NewLogMealHandler(repos.Meals, repos.Outbox, uow, clock)
	c.CompleteMealHandler = commands.NewCompleteMealHandler(repos.Meals, uow, clock)
	c.ListMealsHandler = queries.NewListMealsHandler(repos.Meals, clock)

	// Supplements
	c.AddSupplementHandler = commands.NewAddSupplementHandler(repos.Supplements, repos.Outbox, uow, clock)
	c.TakeSupplementHandler = commands.NewTakeSupplementHandler(repos.Supplements, repos.Outbox, uow, clock)
	c.DeleteSupplementHandler = commands.NewDeleteSupplementHandler(repos.Supplements, repos.Outbox, uow, clock)
	c.ResetSupplementsHandler = commands.NewResetSupplementsHandler(repos.Supplements, uow, clock)
	c.ListSupplementsHandler = queries.NewListSupplementsHandler(repos.Supplements, clock)

	// Addiction trackers
	c.StartAddictionHandler = commands.NewStartAddictionHandler(repos.Addictions, repos.Outbox, uow, clock)
	c.TrackerActionHandler = commands.NewTrackerActionHandler(repos.Addictions, repos.Outbox, uow, clock)

	// Journal, goals, routines, points
	c.WriteJournalHandler = commands.NewWriteJournalHandler(repos.Journal, repos.Outbox, uow, clock)
	c.ListJournalHandler = queries.NewListJournalHandler(repos.Journal, clock)
	c.CreateGoalHandler = commands.NewCreateGoalHandler(repos.Goals, repos.Outbox, uow, clock)
	c.CompleteGoalHandler = commands.NewCompleteGoalHandler(repos.Goals, repos.Outbox, uow, clock)
	c.ListGoalsHandler = queries.NewListGoalsHandler(repos.Goals)
	c.LogRoutineHandler = commands.NewLogRoutineHandler(repos.Routines, repos.Outbox, uow, clock)
	c.ListRoutinesHandler = queries.NewListRoutinesHandler(repos.Routines, clock)
	c.GetPointsHandler = queries.NewGetPointsHandler(repos.Points)

	ttl := c.Config.CacheTTL
	c.InsightsService = insightsApp.NewService(insightsApp.Repositories{
		Meals:       repos.Meals,
		Supplements: repos.Supplements,
		Addictions:  repos.Addictions,
		Journal:     repos.Journal,
		Goals:       repos.Goals,
		Routines:    repos.Routines,
	}, c.MetricsCache, ttl, clock, c.Logger, c.Metrics)
}

// DrainEvents publishes everything pending in the outbox. With the in-process
// bus this is where Phoenix Points are awarded. Failures are logged.
func (c *Container) DrainEvents(ctx context.Context) {
	if c.OutboxProcessor == nil {
		return
	}
	if err := c.OutboxProcessor.Drain(ctx); err != nil {
		c.Logger.Warn("failed to drain outbox", "error", err)
	}
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.OutboxProcessor != nil {
		c.OutboxProcessor.Stop()
	}

	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		} else {
			c.Logger.Debug("Redis connection closed")
		}
	}

	if c.DBConn != nil {
		if err := c.DBConn.Close(); err != nil {
			c.Logger.Warn("error closing database connection", "error", err)
		} else {
			c.Logger.Debug("database connection closed", "driver", c.DBDriver)
		}
	}
}

// processorConfig applies the configured outbox settings over the defaults.
func processorConfig(cfg *config.Config) outbox.ProcessorConfig {
	pc := outbox.DefaultProcessorConfig()
	if cfg == nil {
		return pc
	}
	if cfg.OutboxPollInterval > 0 {
		pc.PollInterval = cfg.OutboxPollInterval
	}
	if cfg.OutboxBatchSize > 0 {
		pc.BatchSize = cfg.OutboxBatchSize
	}
	if cfg.OutboxMaxRetries > 0 {
		pc.MaxRetries = cfg.OutboxMaxRetries
	}
	return pc
}

func parseUserID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid PHOENIX_USER_ID %q: %w", raw, err)
	}
	return id, nil
}
