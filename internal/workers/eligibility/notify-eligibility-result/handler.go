// internal/workers/eligibility/notify-eligibility-result/handler.go
package notifyeligibilityresult

import (
	"context"
	"encoding/json"
	"time"

	"loan-eligibility-workers/internal/applicants"
	apperrors "loan-eligibility-workers/internal/common/errors"
	"loan-eligibility-workers/internal/common/logger"
	"loan-eligibility-workers/internal/common/metrics"
	"loan-eligibility-workers/internal/eligibility"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "notify-eligibility-result"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config       *Config
	applicants   applicants.Finder
	sesClient    SESService
	snsClient    SNSService
	scorer       *eligibility.Scorer
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

// NewHandler builds the handler. The SES and SNS clients may be nil when the matching
// channel is disabled.
func NewHandler(config *Config, finder applicants.Finder, sesClient SESService, snsClient SNSService, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		applicants:   finder,
		sesClient:    sesClient,
		snsClient:    snsClient,
		scorer:       eligibility.NewScorer(eligibility.WithLocale(config.Locale)),
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
	notificationID := uuid.New().String()
	sentAt := time.Now().UTC().Format(time.RFC3339)

	if !h.config.EmailEnabled && !h.config.SMSEnabled {
		return &Output{
			NotificationID: notificationID,
			Status:         StatusDisabled,
			Channels:       []string{},
			SentAt:         sentAt,
		}, nil
	}

	email, phone, assessment, err := h.resolveRecipient(ctx, input)
	if err != nil {
		return nil, err
	}

	sendEmail := h.config.EmailEnabled && h.sesClient != nil && email != ""
	sendSMS := h.config.SMSEnabled && h.snsClient != nil && phone != ""
	if !sendEmail && !sendSMS {
		h.logger.Warn("no reachable contact for applicant", map[string]interface{}{
			"applicantId": input.ApplicantID,
		})
		return &Output{
			NotificationID: notificationID,
			Status:         StatusNoContact,
			Channels:       []string{},
			SentAt:         sentAt,
		}, nil
	}

	msg, err := renderMessage(assessment)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	channels := make([]string, 0, 2)
	if sendEmail {
		if err := h.sendEmail(ctx, email, msg.Subject, msg.Body); err != nil {
			return nil, h.sendFailed(ChannelEmail, input.ApplicantID, err)
		}
		metrics.RecordNotification(ChannelEmail, StatusSent)
		channels = append(channels, ChannelEmail)
	}
	if sendSMS {
		if err := h.sendSMS(ctx, phone, msg.SMS); err != nil {
			return nil, h.sendFailed(ChannelSMS, input.ApplicantID, err)
		}
		metrics.RecordNotification(ChannelSMS, StatusSent)
		channels = append(channels, ChannelSMS)
	}

	return &Output{
		NotificationID: notificationID,
		Status:         StatusSent,
		Channels:       channels,
		SentAt:         sentAt,
	}, nil
}

// resolveRecipient fills contact details and the assessment from the applicant store when
// the job variables do not carry them.
func (h *Handler) resolveRecipient(ctx context.Context, input *Input) (string, string, eligibility.Assessment, error) {
	email, phone := input.Email, input.Phone
	needsContact := email == "" && phone == ""

	if input.EligibilityAssessment != nil && !needsContact {
		return email, phone, *input.EligibilityAssessment, nil
	}
	if input.ApplicantID == "" {
		if input.EligibilityAssessment == nil {
			return "", "", eligibility.Assessment{}, apperrors.NewApplicantProfileMissingError()
		}
		return "", "", *input.EligibilityAssessment, nil
	}
	if h.applicants == nil {
		return "", "", eligibility.Assessment{}, apperrors.NewApplicantNotFoundError(input.ApplicantID)
	}

	rec, err := h.applicants.FindByID(ctx, input.ApplicantID)
	if err != nil {
		return "", "", eligibility.Assessment{}, applicants.LookupError(ctx, input.ApplicantID, err)
	}

	if needsContact {
		email, phone = rec.Email, rec.Phone
	}
	if input.EligibilityAssessment != nil {
		return email, phone, *input.EligibilityAssessment, nil
	}
	return email, phone, h.scorer.Evaluate(rec.Profile), nil
}

func (h *Handler) sendFailed(channel, applicantID string, err error) error {
	metrics.RecordNotification(channel, StatusFailed)
	h.logger.Error("notification send failed", map[string]interface{}{
		"channel":     channel,
		"applicantId": applicantID,
		"error":       err,
	})
	return apperrors.NewNotificationSendFailedError(channel, err)
}

func (h *Handler) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, to, text string) error {
	input := &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(text),
	}
	if h.config.SenderID != "" {
		input.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(h.config.SenderID),
			},
		}
	}
	_, err := h.snsClient.Publish(ctx, input)
	return err
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
		"jobKey":         job.Key,
		"notificationId": output.NotificationID,
		"status":         output.Status,
	})
	return nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
