// Package cache memoizes derived wellness metrics. Entries are opaque byte
// slices keyed by the caller; expiry is best-effort.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	sharedDomain "github.com/felixgeelhaar/phoenix/internal/shared/domain"
)

// KeyPrefix namespaces every Redis key written by Phoenix.
const KeyPrefix = "phoenix:cache:"

// RedisCache stores entries in Redis.
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache creates a Redis-backed cache.
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

// Get returns the entry for key. found is false on a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, KeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

// Set stores value under key. A zero ttl stores without expiration.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, KeyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Ping checks the Redis connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is a process-local cache. It serves local mode and stands in
// for Redis while the breaker is open.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	clock   sharedDomain.Clock
	maxSize int
}

// DefaultMemoryCacheSize bounds the number of entries a MemoryCache keeps.
const DefaultMemoryCacheSize = 1024

// NewMemoryCache creates an in-memory cache reading expiry from clock.
func NewMemoryCache(clock sharedDomain.Clock) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		clock:   clock,
		maxSize: DefaultMemoryCacheSize,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && !c.clock.Now().Before(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return append([]byte(nil), entry.value...), true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: append([]byte(nil), value...)}
	now := c.clock.Now()
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evict(now)
	}
	c.entries[key] = entry
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evict drops expired entries, or an arbitrary one when none has expired.
// Must be called with c.mu held.
func (c *MemoryCache) evict(now time.Time) {
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	if len(c.entries) < c.maxSize {
		return
	}
	for k := range c.entries {
		delete(c.entries, k)
		return
	}
}
