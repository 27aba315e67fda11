package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string
	UserID   string
	Timezone string

	// Database
	DatabaseURL    string
	DatabaseDriver string
	SQLitePath     string
	LocalMode      bool

	// Redis metrics cache
	RedisURL               string
	CacheTTL               time.Duration
	CacheBreakerFailures   int
	CacheBreakerTimeout    time.Duration
	CacheBreakerMaxRequest int

	// RabbitMQ
	RabbitMQURL string

	// Outbox
	OutboxPollInterval    time.Duration
	OutboxBatchSize       int
	OutboxMaxRetries      int
	OutboxRetentionDays   int
	OutboxCleanupSchedule string
	OutboxStatsInterval   time.Duration

	// Worker
	WorkerHealthAddr           string
	WorkerDailyResetSchedule   string
	WorkerWeeklyResetSchedule  string
	WorkerWeeklyReportSchedule string
	WorkerResetsEnabled        bool

	// MCP
	MCPAddr      string
	MCPAuthToken string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	databaseURL := getEnv("DATABASE_URL", "")

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		UserID:   getEnv("PHOENIX_USER_ID", "00000000-0000-0000-0000-000000000001"),
		Timezone: getEnv("PHOENIX_TIMEZONE", "Local"),

		DatabaseURL:    databaseURL,
		DatabaseDriver: getEnv("DATABASE_DRIVER", defaultDriver(databaseURL)),
		SQLitePath:     getEnv("SQLITE_PATH", defaultSQLitePath()),
		LocalMode:      getBoolEnv("PHOENIX_LOCAL_MODE", databaseURL == ""),

		RedisURL:               getEnv("REDIS_URL", ""),
		CacheTTL:               getDurationEnv("CACHE_TTL", 5*time.Minute),
		CacheBreakerFailures:   getIntEnv("CACHE_BREAKER_FAILURES", 3),
		CacheBreakerTimeout:    getDurationEnv("CACHE_BREAKER_TIMEOUT", 30*time.Second),
		CacheBreakerMaxRequest: getIntEnv("CACHE_BREAKER_MAX_REQUESTS", 1),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		OutboxPollInterval:    getDurationEnv("OUTBOX_POLL_INTERVAL", 500*time.Millisecond),
		OutboxBatchSize:       getIntEnv("OUTBOX_BATCH_SIZE", 100),
		OutboxMaxRetries:      getIntEnv("OUTBOX_MAX_RETRIES", 5),
		OutboxRetentionDays:   getIntEnv("OUTBOX_RETENTION_DAYS", 7),
		OutboxCleanupSchedule: getEnv("OUTBOX_CLEANUP_SCHEDULE", "@hourly"),
		OutboxStatsInterval:   getDurationEnv("OUTBOX_STATS_INTERVAL", time.Minute),

		WorkerHealthAddr:           getEnv("WORKER_HEALTH_ADDR", "0.0.0.0:8081"),
		WorkerDailyResetSchedule:   getEnv("WORKER_DAILY_RESET_SCHEDULE", "0 0 * * *"),
		WorkerWeeklyResetSchedule:  getEnv("WORKER_WEEKLY_RESET_SCHEDULE", "0 0 * * 0"),
		WorkerWeeklyReportSchedule: getEnv("WORKER_WEEKLY_REPORT_SCHEDULE", "0 20 * * 0"),
		WorkerResetsEnabled:        getBoolEnv("WORKER_RESETS_ENABLED", true),

		MCPAddr:      getEnv("MCP_ADDR", "0.0.0.0:8082"),
		MCPAuthToken: getEnv("MCP_AUTH_TOKEN", ""),
	}

	if cfg.LocalMode {
		cfg.DatabaseDriver = "sqlite"
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// IsLocalMode returns true when the app runs against a local SQLite file.
func (c *Config) IsLocalMode() bool {
	return c.LocalMode
}

// IsSQLite returns true if SQLite should be used.
func (c *Config) IsSQLite() bool {
	return c.DatabaseDriver == "sqlite" || (c.DatabaseDriver == "auto" && c.LocalMode)
}

// IsPostgres returns true if PostgreSQL should be used.
func (c *Config) IsPostgres() bool {
	return c.DatabaseDriver == "postgres" || (c.DatabaseDriver == "auto" && !c.LocalMode)
}

// Location resolves the configured timezone, falling back to the host zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func defaultDriver(databaseURL string) string {
	if databaseURL == "" {
		return "sqlite"
	}
	return "auto"
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".phoenix", "phoenix.db")
	}
	return filepath.Join(home, ".phoenix", "phoenix.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
