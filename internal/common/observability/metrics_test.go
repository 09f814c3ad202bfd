package observability

import (
	"context"
	"strings"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrument_RecordsJobs(t *testing.T) {
	reg := prom.NewRegistry()
	obs, err := New("observability-test", reg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = obs.Shutdown(context.Background()) })

	calls := 0
	handler := obs.Instrument("evaluate-eligibility", func(worker.JobClient, entities.Job) {
		calls++
	})

	job := entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 42, ProcessInstanceKey: 7}}
	handler(nil, job)
	handler(nil, job)
	assert.Equal(t, 2, calls)

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	joined := strings.Join(names, ",")
	assert.Contains(t, joined, "jobs_processed")
	assert.Contains(t, joined, "jobs_duration")
}

func TestStartSpan(t *testing.T) {
	obs, err := New("observability-test", prom.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(func() { _ = obs.Shutdown(context.Background()) })

	ctx, span := obs.StartSpan(context.Background(), "evaluate")
	defer span.End()

	assert.True(t, span.SpanContext().IsValid())
	assert.NotNil(t, ctx)
}
