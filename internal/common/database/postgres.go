// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"loan-eligibility-workers/internal/common/config"

	_ "github.com/lib/pq"
)

// PostgresClient owns the applicant database pool.
type PostgresClient struct {
	db *sql.DB
}

// NewPostgres opens a lib/pq pool sized from cfg. It does not connect; call Ping.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{db: db}, nil
}

// NewPostgresFromDB wraps an existing pool, e.g. one from sqlmock.
func NewPostgresFromDB(db *sql.DB) *PostgresClient {
	return &PostgresClient{db: db}
}

func (c *PostgresClient) DB() *sql.DB {
	return c.db
}

func (c *PostgresClient) Name() string {
	return "postgres"
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	return nil
}

func (c *PostgresClient) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}
