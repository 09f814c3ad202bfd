// internal/common/camunda/client.go
package camunda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"loan-eligibility-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// Client wraps the Zeebe gRPC client.
type Client struct {
	client zbc.Client
	config *ClientConfig
}

type ClientConfig struct {
	GatewayAddress         string
	UsePlaintextConnection bool
	ConnectionTimeout      time.Duration
	RetryConfig            *RetryConfig
}

// RetryConfig defines exponential backoff for transient failures.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

var DefaultRetryConfig = &RetryConfig{
	MaxRetries: 10,
	BaseDelay:  2 * time.Second,
	MaxDelay:   30 * time.Second,
}

// Connect creates a Zeebe client and waits until the gateway answers a topology request,
// retrying transient failures with backoff.
func Connect(ctx context.Context, config *ClientConfig, log logger.Logger) (*Client, error) {
	if config.RetryConfig == nil {
		config.RetryConfig = DefaultRetryConfig
	}
	if config.ConnectionTimeout == 0 {
		config.ConnectionTimeout = 10 * time.Second
	}

	var zeebeClient zbc.Client
	err := Retry(ctx, config.RetryConfig, "Zeebe connection", log, func(ctx context.Context) error {
		c, err := zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         config.GatewayAddress,
			UsePlaintextConnection: config.UsePlaintextConnection,
		})
		if err != nil {
			return fmt.Errorf("failed to create Zeebe client: %w", err)
		}

		checkCtx, cancel := context.WithTimeout(ctx, config.ConnectionTimeout)
		defer cancel()
		if _, err := c.NewTopologyCommand().Send(checkCtx); err != nil {
			_ = c.Close()
			return fmt.Errorf("failed to reach Zeebe gateway at %s: %w", config.GatewayAddress, err)
		}
		zeebeClient = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Client{client: zeebeClient, config: config}, nil
}

// Zeebe returns the raw client for opening job workers.
func (c *Client) Zeebe() zbc.Client {
	return c.client
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) Name() string {
	return "zeebe"
}

// Ping sends a topology request to the gateway.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.ConnectionTimeout)
	defer cancel()

	if _, err := c.client.NewTopologyCommand().Send(ctx); err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}

// Retry runs fn until it succeeds, returns a non-transient error, or the attempts in cfg
// are used up. The delay doubles after each failure up to cfg.MaxDelay.
func Retry(ctx context.Context, cfg *RetryConfig, operation string, log logger.Logger, fn func(context.Context) error) error {
	attempts := cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	delay := cfg.BaseDelay
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if !IsTransient(err) || attempt == attempts {
			break
		}

		log.Warn(operation+" failed, retrying", map[string]interface{}{
			"error":       err.Error(),
			"attempt":     attempt,
			"maxRetries":  attempts,
			"nextRetryIn": delay.String(),
		})

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%s cancelled after %d attempts: %w", operation, attempt, ctx.Err())
		}

		delay *= 2
		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}

var transientPhrases = []string{
	"connection refused",
	"connection reset",
	"timeout",
	"deadline exceeded",
	"unavailable",
	"unreachable",
	"broken pipe",
	"no such host",
	"eof",
	"the database system is starting up",
}

// IsTransient reports whether err looks like a network or startup failure worth retrying.
func IsTransient(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, phrase := range transientPhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
