package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	prom "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Observability owns the OpenTelemetry meter and tracer providers for the process.
type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer
	jobCounter     otelmetric.Int64Counter
	jobDuration    otelmetric.Float64Histogram
}

// New installs global meter and tracer providers. Metrics are exported through reg, so
// they appear on the same /metrics endpoint as the promauto collectors.
func New(serviceName string, reg prom.Registerer) (*Observability, error) {
	exporter, err := prometheus.New(prometheus.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	mp := metric.NewMeterProvider(metric.WithReader(exporter))
	tp := sdktrace.NewTracerProvider()
	otel.SetMeterProvider(mp)
	otel.SetTracerProvider(tp)

	meter := mp.Meter(serviceName)

	jobCounter, err := meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"),
	)
	if err != nil {
		return nil, fmt.Errorf("create job counter: %w", err)
	}

	jobDuration, err := meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create job duration histogram: %w", err)
	}

	return &Observability{
		meterProvider:  mp,
		tracerProvider: tp,
		tracer:         tp.Tracer(serviceName),
		jobCounter:     jobCounter,
		jobDuration:    jobDuration,
	}, nil
}

// StartSpan starts a span on the service tracer.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return o.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (o *Observability) RecordJobProcessed(ctx context.Context, taskType string) {
	o.jobCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
	))
}

func (o *Observability) RecordJobDuration(ctx context.Context, taskType string, d time.Duration) {
	o.jobDuration.Record(ctx, float64(d.Microseconds())/1000, otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
	))
}

// Instrument wraps a job handler so every activation is counted and timed.
func (o *Observability) Instrument(taskType string, handler worker.JobHandler) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		ctx, span := o.StartSpan(context.Background(), "job "+taskType,
			attribute.Int64("job.key", job.Key),
			attribute.Int64("process.instance.key", job.ProcessInstanceKey),
		)
		defer func() {
			span.End()
			o.RecordJobProcessed(ctx, taskType)
			o.RecordJobDuration(ctx, taskType, time.Since(start))
		}()
		handler(client, job)
	}
}

func (o *Observability) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := o.tracerProvider.Shutdown(ctx); err != nil {
		return err
	}
	return o.meterProvider.Shutdown(ctx)
}
