// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler reports a failed job back to Zeebe, either as a retryable failure or as a
// BPMN error for the process to catch.
type ErrorHandler struct {
	logger Logger
	// retryLimit caps reported retries; negative means only the per-code limit applies.
	retryLimit int32
}

type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger, retryLimit: -1}
}

// WithRetryLimit caps the retries reported for retryable errors at *limit. Zero throws the
// BPMN error on the first failure. A nil limit leaves the handler unchanged.
func (h *ErrorHandler) WithRetryLimit(limit *int) *ErrorHandler {
	if limit != nil && *limit >= 0 {
		h.retryLimit = int32(*limit)
	}
	return h
}

// HandleJobError fails job with a reduced retry count when the error is retryable and the
// job has retries left; otherwise it throws the mapped BPMN error.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := normalizeError(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	retries, throw := nextAttempt(stdErr, job.Retries, h.retryLimit)
	h.logError(job, stdErr, bpmnErr, retries, throw)

	vars, marshalErr := json.Marshal(bpmnErr.ToErrorVariables())
	if marshalErr != nil {
		vars = nil
	}

	var sendErr error
	if throw {
		sendErr = h.throwBPMNError(ctx, client, job, bpmnErr, vars)
	} else {
		sendErr = h.failJob(ctx, client, job, bpmnErr, retries, vars)
	}
	if sendErr != nil {
		h.logger.Error("Failed to report job error", map[string]interface{}{
			"jobKey": job.Key,
			"error":  sendErr.Error(),
		})
	}
}

func normalizeError(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	return NewInternalError(err)
}

// nextAttempt returns the retry count to report and whether the error should be thrown
// instead. Zeebe treats the reported count as the remaining retries. A negative
// retryLimit leaves only the per-code limit.
func nextAttempt(stdErr *StandardError, jobRetries, retryLimit int32) (int32, bool) {
	if !stdErr.Retryable || jobRetries <= 1 || retryLimit == 0 {
		return 0, true
	}
	remaining := jobRetries - 1
	if limit := int32(GetRetryCount(stdErr.Code)); remaining > limit {
		remaining = limit
	}
	if retryLimit > 0 && remaining > retryLimit {
		remaining = retryLimit
	}
	return remaining, false
}

func (h *ErrorHandler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, retries int32, vars []byte) error {
	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(retries).
		ErrorMessage(bpmnErr.Message)

	if vars != nil {
		withVars, err := cmd.VariablesFromString(string(vars))
		if err == nil {
			_, err = withVars.Send(ctx)
			return err
		}
	}
	_, err := cmd.Send(ctx)
	return err
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, vars []byte) error {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	if vars != nil {
		withVars, err := cmd.VariablesFromString(string(vars))
		if err == nil {
			_, err = withVars.Send(ctx)
			return err
		}
	}
	_, err := cmd.Send(ctx)
	return err
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, bpmnErr *BPMNError, retries int32, throw bool) {
	fields := map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(stdErr.Code),
		"bpmnErrorCode":    bpmnErr.Code,
		"message":          bpmnErr.Message,
		"details":          stdErr.Details,
		"retryable":        stdErr.Retryable,
		"retriesRemaining": retries,
		"errorCategory":    GetErrorCategory(stdErr.Code),
		"workflowInstance": job.ProcessInstanceKey,
	}
	if throw {
		h.logger.Error("Job failed, throwing BPMN error", fields)
		return
	}
	h.logger.Warn("Job failed, will retry", fields)
}
