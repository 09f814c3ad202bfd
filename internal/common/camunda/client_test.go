package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"loan-eligibility-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(n int) *RetryConfig {
	return &RetryConfig{MaxRetries: n, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry(5), "postgres connection", logger.NewTestLogger(t), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry(5), "postgres connection", logger.NewNoOpLogger(), func(context.Context) error {
		calls++
		return errors.New("pq: password authentication failed")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, err.Error(), "password authentication failed")
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry(4), "redis connection", logger.NewNoOpLogger(), func(context.Context) error {
		calls++
		return errors.New("i/o timeout")
	})

	require.Error(t, err)
	assert.Equal(t, 4, calls)
	assert.Contains(t, err.Error(), "redis connection failed")
}

func TestRetry_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := &RetryConfig{MaxRetries: 5, BaseDelay: time.Hour}

	err := Retry(ctx, cfg, "zeebe connection", logger.NewNoOpLogger(), func(context.Context) error {
		cancel()
		return errors.New("unavailable")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(errors.New("rpc error: code = Unavailable desc = connection error")))
	assert.True(t, IsTransient(errors.New("context deadline exceeded")))
	assert.True(t, IsTransient(errors.New("pq: the database system is starting up")))
	assert.False(t, IsTransient(errors.New("permission denied")))
}
