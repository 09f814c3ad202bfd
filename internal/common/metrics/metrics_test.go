package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestJobTimer(t *testing.T) {
	const task = "metrics-test-task"

	timer := StartJob(task)
	assert.Equal(t, 1.0, testutil.ToFloat64(WorkerJobsActive.WithLabelValues(task)))
	timer.Done("")

	StartJob(task).Done("PARSE_ERROR")

	assert.Equal(t, 0.0, testutil.ToFloat64(WorkerJobsActive.WithLabelValues(task)))
	assert.Equal(t, 1.0, testutil.ToFloat64(WorkerJobsCompleted.WithLabelValues(task)))
	assert.Equal(t, 1.0, testutil.ToFloat64(WorkerJobsFailed.WithLabelValues(task, "PARSE_ERROR")))
}

func TestRecordEvaluation(t *testing.T) {
	before := testutil.ToFloat64(EligibilityEvaluations.WithLabelValues("Medium", "test"))

	RecordEvaluation("Medium", "test", 48)
	RecordEvaluation("Medium", "test", 52)

	assert.Equal(t, before+2, testutil.ToFloat64(EligibilityEvaluations.WithLabelValues("Medium", "test")))
	assert.Equal(t, 1, testutil.CollectAndCount(EligibilityApprovalProbability))
}

func TestRecordNotification(t *testing.T) {
	before := testutil.ToFloat64(NotificationsSent.WithLabelValues("sms", "failed"))

	RecordNotification("sms", "failed")

	assert.Equal(t, before+1, testutil.ToFloat64(NotificationsSent.WithLabelValues("sms", "failed")))
}
