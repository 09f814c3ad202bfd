package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-eligibility-workers/internal/common/config"
	"loan-eligibility-workers/internal/common/logger"
	"loan-eligibility-workers/pkg/registry"
)

type stubPinger struct {
	name string
	err  error
}

func (s stubPinger) Name() string { return s.name }
func (s stubPinger) Ping(ctx context.Context) error { return s.err }

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealth(t *testing.T) {
	rec, body := get(t, newMux(registry.Default()), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestReady(t *testing.T) {
	t.Run("all dependencies up", func(t *testing.T) {
		rec, body := get(t, newMux(registry.Default(), stubPinger{name: "postgres"}, stubPinger{name: "redis"}), "/ready")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ready", body["status"])
	})

	t.Run("dependency down", func(t *testing.T) {
		rec, body := get(t, newMux(registry.Default(),
			stubPinger{name: "postgres"},
			stubPinger{name: "redis", err: errors.New("connection refused")},
		), "/ready")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "not_ready", body["status"])
		checks, ok := body["checks"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, checks, "redis")
	})
}

func TestMetricsEndpoint(t *testing.T) {
	rec, _ := get(t, newMux(registry.Default()), "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestActivitiesEndpoint(t *testing.T) {
	rec, body := get(t, newMux(registry.Default()), "/activities")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, registry.Version, body["version"])
	activities, ok := body["activities"].([]interface{})
	require.True(t, ok)
	assert.Len(t, activities, 3)
}

func TestRegistrations_MatchRegistry(t *testing.T) {
	regs := registrations(context.Background(), &config.Config{}, nil, logger.NewTestLogger(t))

	taskTypes := make([]string, 0, len(regs))
	for _, reg := range regs {
		require.NotNil(t, reg.Handler)
		taskTypes = append(taskTypes, reg.TaskType)
	}
	assert.Equal(t, registry.Default().TaskTypes(), taskTypes)
}
