// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"loan-eligibility-workers/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// RedisClient owns the profile cache connection.
type RedisClient struct {
	client *redis.Client
}

func NewRedis(cfg config.RedisConfig) *RedisClient {
	return &RedisClient{client: redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})}
}

// NewRedisFromClient wraps an existing client, e.g. one pointed at miniredis.
func NewRedisFromClient(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

func (c *RedisClient) Client() *redis.Client {
	return c.client
}

func (c *RedisClient) Name() string {
	return "redis"
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *RedisClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
