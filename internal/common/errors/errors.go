// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode is a stable, BPMN-facing error identifier.
type ErrorCode string

// Applicant input errors
const (
	ErrCodeParseError              ErrorCode = "PARSE_ERROR"
	ErrCodeInvalidApplicantProfile ErrorCode = "INVALID_APPLICANT_PROFILE"
	ErrCodeApplicantProfileMissing ErrorCode = "APPLICANT_PROFILE_MISSING"
	ErrCodeSampleNotFound          ErrorCode = "SAMPLE_NOT_FOUND"
	ErrCodeApplicantNotFound       ErrorCode = "APPLICANT_NOT_FOUND"
)

// Infrastructure errors
const (
	ErrCodeProfileLookupFailed      ErrorCode = "PROFILE_LOOKUP_FAILED"
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeNotificationSendFailed   ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeInternal                 ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the error type every worker returns from its execute path.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key/value that is forwarded to the BPMN error variables.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func newError(code ErrorCode, message, details string, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: IsRetryableErrorCode(code),
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// AsStandardError finds the first StandardError in err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandardError(err)
	return ok && stdErr.Code == code
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError is what gets thrown to, or reported on a failed job in, the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns the process variables set alongside the error.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewParseError reports job variables that are not valid JSON.
func NewParseError(err error) *StandardError {
	return newError(ErrCodeParseError, "Failed to parse job variables", err.Error(), err)
}

// NewInvalidApplicantProfileError reports a profile that failed shape validation.
func NewInvalidApplicantProfileError(details string) *StandardError {
	return newError(ErrCodeInvalidApplicantProfile, "Applicant profile is invalid", details, nil)
}

func NewApplicantProfileMissingError() *StandardError {
	return newError(ErrCodeApplicantProfileMissing,
		"No applicant profile supplied",
		"one of applicantProfile, sampleId or applicantId is required", nil)
}

func NewSampleNotFoundError(sampleID string) *StandardError {
	return newError(ErrCodeSampleNotFound, "Sample profile not found",
		fmt.Sprintf("sampleId: %s", sampleID), nil).
		WithMetadata("sampleId", sampleID)
}

func NewApplicantNotFoundError(applicantID string) *StandardError {
	return newError(ErrCodeApplicantNotFound, "Applicant not found",
		fmt.Sprintf("applicantId: %s", applicantID), nil).
		WithMetadata("applicantId", applicantID)
}

// NewProfileLookupFailedError wraps a database error raised while loading an applicant.
func NewProfileLookupFailedError(applicantID string, err error) *StandardError {
	return newError(ErrCodeProfileLookupFailed, "Failed to load applicant profile",
		fmt.Sprintf("applicantId: %s, error: %s", applicantID, err.Error()), err).
		WithMetadata("applicantId", applicantID)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), err)
}

func NewQueryTimeoutError(query string) *StandardError {
	return newError(ErrCodeQueryTimeout, "Database query timeout", fmt.Sprintf("query: %s", query), nil)
}

// NewNotificationSendFailedError wraps an SES or SNS failure.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed,
		fmt.Sprintf("Failed to send %s notification", channel), err.Error(), err).
		WithMetadata("channel", channel)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), err)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal codes to the error codes modelled on boundary events.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeParseError:               "PARSE_ERROR",
	ErrCodeInvalidApplicantProfile:  "INVALID_APPLICANT_PROFILE",
	ErrCodeApplicantProfileMissing:  "INVALID_APPLICANT_PROFILE",
	ErrCodeSampleNotFound:           "APPLICANT_NOT_FOUND",
	ErrCodeApplicantNotFound:        "APPLICANT_NOT_FOUND",
	ErrCodeProfileLookupFailed:      "PROFILE_LOOKUP_FAILED",
	ErrCodeDatabaseConnectionFailed: "PROFILE_LOOKUP_FAILED",
	ErrCodeQueryTimeout:             "PROFILE_LOOKUP_FAILED",
	ErrCodeNotificationSendFailed:   "NOTIFICATION_SEND_FAILED",
}

// GetRetryCount returns how many times a job failing with code should be retried.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeProfileLookupFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeNotificationSendFailed:
		return 3
	case ErrCodeQueryTimeout:
		return 2
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError for the workflow engine.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, ok := BPMNErrorMapping[stdErr.Code]
	if !ok {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"errorCategory":     GetErrorCategory(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory groups codes for logging and the errorCategory variable.
func GetErrorCategory(code ErrorCode) string {
	s := string(code)
	switch {
	case strings.Contains(s, "PARSE") || strings.Contains(s, "INVALID") || strings.Contains(s, "MISSING"):
		return "VALIDATION"
	case strings.HasSuffix(s, "NOT_FOUND"):
		return "NOT_FOUND"
	case strings.Contains(s, "DATABASE") || strings.Contains(s, "QUERY") || strings.Contains(s, "LOOKUP"):
		return "DATABASE"
	case strings.Contains(s, "NOTIFICATION"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
