// internal/workers/eligibility/reevaluate-eligibility/handler.go
package reevaluateeligibility

import (
	"context"
	"encoding/json"

	apperrors "loan-eligibility-workers/internal/common/errors"
	"loan-eligibility-workers/internal/common/logger"
	"loan-eligibility-workers/internal/common/metrics"
	"loan-eligibility-workers/internal/eligibility"
	"loan-eligibility-workers/internal/workers/eligibility/profileinput"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "reevaluate-eligibility"
)

type Handler struct {
	config       *Config
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		errorHandler: apperrors.NewErrorHandler(log).WithRetryLimit(config.MaxRetries),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	timer := metrics.StartJob(TaskType)
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		timer.Done(string(apperrors.ErrCodeParseError))
		h.errorHandler.HandleJobError(ctx, client, job, apperrors.NewParseError(err))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		code := string(apperrors.ErrCodeInternal)
		if stdErr, ok := apperrors.AsStandardError(err); ok {
			code = string(stdErr.Code)
		}
		timer.Done(code)
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	if err := h.completeJob(ctx, client, job, output); err != nil {
		timer.Done(metrics.CodeCompletionFailed)
		return
	}
	timer.Done("")
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.ApplicantProfile == nil {
		return nil, apperrors.NewApplicantProfileMissingError()
	}
	profile, err := profileinput.Decode(input.ApplicantProfile)
	if err != nil {
		return nil, err
	}

	income := profile.MonthlyIncome
	if input.MonthlyIncome != nil {
		income = *input.MonthlyIncome
	}
	loan := profile.LoanAmount
	if input.LoanAmount != nil {
		loan = *input.LoanAmount
	}

	baseline := eligibility.Evaluate(profile).ApprovalProbability
	probability := eligibility.ReevaluateWithOverrides(profile, income, loan)

	h.logger.Debug("what-if recalculated", map[string]interface{}{
		"monthlyIncome":       income,
		"loanAmount":          loan,
		"baselineProbability": baseline,
		"approvalProbability": probability,
	})

	return &Output{
		BaselineProbability: baseline,
		ApprovalProbability: probability,
		ProbabilityDelta:    probability - baseline,
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":           job.Key,
		"probabilityDelta": output.ProbabilityDelta,
	})
	return nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
