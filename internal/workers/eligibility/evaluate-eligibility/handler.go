// internal/workers/eligibility/evaluate-eligibility/handler.go
package evaluateeligibility

import (
	"context"
	"encoding/json"

	"loan-eligibility-workers/internal/applicants"
	apperrors "loan-eligibility-workers/internal/common/errors"
	"loan-eligibility-workers/internal/common/logger"
	"loan-eligibility-workers/internal/common/metrics"
	"loan-eligibility-workers/internal/eligibility"
	"loan-eligibility-workers/internal/workers/eligibility/profileinput"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	TaskType = "evaluate-eligibility"
)

type Handler struct {
	config       *Config
	applicants   applicants.Finder
	scorer       *eligibility.Scorer
	errorHandler *apperrors.ErrorHandler
	tracer       trace.Tracer
	logger       logger.Logger
}

// NewHandler builds the handler. finder may be nil, in which case applicantId lookups fail
// with APPLICANT_NOT_FOUND.
func NewHandler(config *Config, finder applicants.Finder, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		applicants:   finder,
		scorer:       eligibility.NewScorer(eligibility.WithLocale(config.Locale)),
		errorHandler: apperrors.NewErrorHandler(log).WithRetryLimit(config.MaxRetries),
		tracer:       otel.Tracer("loan-eligibility-workers/" + TaskType),
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
		h.failJob(ctx, client, job, timer, apperrors.NewParseError(err))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(ctx, client, job, timer, err)
		return
	}

	if err := h.completeJob(ctx, client, job, output); err != nil {
		timer.Done(metrics.CodeCompletionFailed)
		return
	}
	timer.Done("")
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	profile, source, err := h.resolveProfile(ctx, input)
	if err != nil {
		return nil, err
	}

	_, span := h.tracer.Start(ctx, "eligibility.evaluate", trace.WithAttributes(
		attribute.String("eligibility.profile_source", source),
	))
	assessment := h.scorer.Evaluate(profile)
	span.SetAttributes(
		attribute.Int("eligibility.approval_probability", assessment.ApprovalProbability),
		attribute.String("eligibility.risk_category", string(assessment.RiskCategory)),
	)
	span.End()

	metrics.RecordEvaluation(string(assessment.RiskCategory), source, assessment.ApprovalProbability)
	h.logger.Debug("applicant evaluated", map[string]interface{}{
		"profileSource":       source,
		"approvalProbability": assessment.ApprovalProbability,
		"riskCategory":        assessment.RiskCategory,
		"bankFitCategory":     assessment.BankFitCategory,
	})

	return &Output{
		ApprovalProbability:   assessment.ApprovalProbability,
		RiskCategory:          assessment.RiskCategory,
		BankFitCategory:       assessment.BankFitCategory,
		ProfileSource:         source,
		ApplicantProfile:      profile,
		EligibilityAssessment: assessment,
	}, nil
}

func (h *Handler) resolveProfile(ctx context.Context, input *Input) (eligibility.ApplicantProfile, string, error) {
	switch {
	case input.ApplicantProfile != nil:
		profile, err := profileinput.Decode(input.ApplicantProfile)
		return profile, SourceInline, err

	case input.SampleID != "":
		if !h.config.AllowSamples {
			return eligibility.ApplicantProfile{}, SourceSample, apperrors.NewSampleNotFoundError(input.SampleID).
				WithMetadata("reason", "sample profiles are disabled")
		}
		sample, ok := eligibility.Sample(input.SampleID)
		if !ok {
			return eligibility.ApplicantProfile{}, SourceSample, apperrors.NewSampleNotFoundError(input.SampleID)
		}
		return sample.Profile, SourceSample, nil

	case input.ApplicantID != "":
		if h.applicants == nil {
			return eligibility.ApplicantProfile{}, SourceApplicant, apperrors.NewApplicantNotFoundError(input.ApplicantID)
		}
		rec, err := h.applicants.FindByID(ctx, input.ApplicantID)
		if err != nil {
			return eligibility.ApplicantProfile{}, SourceApplicant, applicants.LookupError(ctx, input.ApplicantID, err)
		}
		return rec.Profile, SourceApplicant, nil

	default:
		return eligibility.ApplicantProfile{}, "", apperrors.NewApplicantProfileMissingError()
	}
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
		"jobKey":              job.Key,
		"approvalProbability": output.ApprovalProbability,
		"riskCategory":        output.RiskCategory,
	})
	return nil
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, timer *metrics.JobTimer, err error) {
	code := string(apperrors.ErrCodeInternal)
	if stdErr, ok := apperrors.AsStandardError(err); ok {
		code = string(stdErr.Code)
	}
	timer.Done(code)
	h.errorHandler.HandleJobError(ctx, client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
