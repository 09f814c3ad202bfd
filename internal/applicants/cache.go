package applicants

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"loan-eligibility-workers/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "applicant:profile:"

// CacheKey is the Redis key holding a cached applicant record.
func CacheKey(id string) string {
	return cacheKeyPrefix + id
}

// CachedFinder serves applicants from Redis and falls back to the wrapped Finder on a
// miss. Cache failures are logged and never fail a lookup.
type CachedFinder struct {
	next   Finder
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewCachedFinder wraps next. A nil client or non-positive ttl disables caching.
func NewCachedFinder(next Finder, client *redis.Client, ttl time.Duration, log logger.Logger) *CachedFinder {
	return &CachedFinder{
		next:   next,
		redis:  client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "applicant-cache"}),
	}
}

func (c *CachedFinder) enabled() bool {
	return c.redis != nil && c.ttl > 0
}

func (c *CachedFinder) FindByID(ctx context.Context, id string) (*Record, error) {
	if !c.enabled() {
		return c.next.FindByID(ctx, id)
	}

	key := CacheKey(id)
	val, err := c.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		var rec Record
		if jsonErr := json.Unmarshal([]byte(val), &rec); jsonErr == nil {
			return &rec, nil
		}
		c.logger.Warn("Discarding unreadable cache entry", map[string]interface{}{"key": key})
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("Cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
	}

	rec, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(rec)
	if err == nil {
		err = c.redis.Set(ctx, key, data, c.ttl).Err()
	}
	if err != nil {
		c.logger.Warn("Cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	return rec, nil
}
