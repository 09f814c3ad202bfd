// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	EligibilityEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eligibility_evaluations_total",
			Help: "Applicant evaluations by resulting risk category and profile source",
		},
		[]string{"risk_category", "source"},
	)

	EligibilityApprovalProbability = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eligibility_approval_probability",
			Help:    "Distribution of approval probabilities (10-95)",
			Buckets: prometheus.LinearBuckets(10, 5, 18),
		},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eligibility_notifications_total",
			Help: "Result notifications by channel and outcome",
		},
		[]string{"channel", "status"},
	)
)

// CodeCompletionFailed labels jobs whose result could not be reported to the broker.
const CodeCompletionFailed = "COMPLETE_JOB_FAILED"

// JobTimer tracks one job from start to completion.
type JobTimer struct {
	taskType string
	start    time.Time
}

// StartJob marks a job active and starts its timer.
func StartJob(taskType string) *JobTimer {
	WorkerJobsActive.WithLabelValues(taskType).Inc()
	return &JobTimer{taskType: taskType, start: time.Now()}
}

// Done records duration and outcome. An empty errorCode counts as a completion.
func (t *JobTimer) Done(errorCode string) {
	WorkerJobsActive.WithLabelValues(t.taskType).Dec()
	WorkerJobDuration.WithLabelValues(t.taskType).Observe(time.Since(t.start).Seconds())
	if errorCode == "" {
		WorkerJobsCompleted.WithLabelValues(t.taskType).Inc()
		return
	}
	WorkerJobsFailed.WithLabelValues(t.taskType, errorCode).Inc()
}

// RecordEvaluation counts one scored applicant.
func RecordEvaluation(riskCategory, source string, probability int) {
	EligibilityEvaluations.WithLabelValues(riskCategory, source).Inc()
	EligibilityApprovalProbability.Observe(float64(probability))
}

// RecordNotification counts one delivery attempt on channel.
func RecordNotification(channel, status string) {
	NotificationsSent.WithLabelValues(channel, status).Inc()
}
