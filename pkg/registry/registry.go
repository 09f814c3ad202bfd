// pkg/registry/registry.go
package registry

import (
	"fmt"
	"sort"

	apperrors "loan-eligibility-workers/internal/common/errors"
	"loan-eligibility-workers/internal/common/validation"
)

const (
	Version = "1.0.0"

	CategoryEligibility  = "eligibility"
	CategoryNotification = "notification"
)

var assessmentOutput = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"approvalProbability": map[string]interface{}{"type": "integer", "minimum": 10, "maximum": 95},
		"riskCategory":        map[string]interface{}{"enum": []interface{}{"Low", "Medium", "High"}},
		"bankFitCategory":     map[string]interface{}{"enum": []interface{}{"Good", "Moderate", "Poor"}},
		"riskFactors":         map[string]interface{}{"type": "array"},
		"roadmapSteps":        map[string]interface{}{"type": "array"},
		"recommendedBanks":    map[string]interface{}{"type": "array"},
	},
}

// Default returns the registry of task types served by the worker manager.
func Default() *ActivityRegistry {
	return &ActivityRegistry{
		Version: Version,
		Activities: []Activity{
			{
				ID:          "evaluate-eligibility",
				DisplayName: "Evaluate Loan Eligibility",
				Description: "Scores an applicant profile and returns the full eligibility assessment",
				Category:    CategoryEligibility,
				Version:     Version,
				TaskType:    "evaluate-eligibility",
				InputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"applicantProfile": validation.ApplicantProfileDefinition,
						"sampleId":         map[string]interface{}{"type": "string"},
						"applicantId":      map[string]interface{}{"type": "string"},
					},
				},
				OutputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"approvalProbability":   map[string]interface{}{"type": "integer"},
						"riskCategory":          map[string]interface{}{"type": "string"},
						"bankFitCategory":       map[string]interface{}{"type": "string"},
						"profileSource":         map[string]interface{}{"enum": []interface{}{"inline", "sample", "applicant"}},
						"applicantProfile":      validation.ApplicantProfileDefinition,
						"eligibilityAssessment": assessmentOutput,
					},
				},
				ErrorCodes: bpmnCodes(
					apperrors.ErrCodeParseError,
					apperrors.ErrCodeInvalidApplicantProfile,
					apperrors.ErrCodeApplicantProfileMissing,
					apperrors.ErrCodeSampleNotFound,
					apperrors.ErrCodeApplicantNotFound,
					apperrors.ErrCodeProfileLookupFailed,
					apperrors.ErrCodeDatabaseConnectionFailed,
					apperrors.ErrCodeQueryTimeout,
				),
				Timeout: "10s",
				Retries: apperrors.GetRetryCount(apperrors.ErrCodeProfileLookupFailed),
				Tags:    []string{"scoring", "postgres", "redis"},
			},
			{
				ID:          "reevaluate-eligibility",
				DisplayName: "What-if Eligibility",
				Description: "Re-scores a profile with a different monthly income or loan amount",
				Category:    CategoryEligibility,
				Version:     Version,
				TaskType:    "reevaluate-eligibility",
				InputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"applicantProfile": validation.ApplicantProfileDefinition,
						"monthlyIncome":    map[string]interface{}{"type": "number"},
						"loanAmount":       map[string]interface{}{"type": "number"},
					},
					"required": []interface{}{"applicantProfile"},
				},
				OutputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"baselineProbability": map[string]interface{}{"type": "integer"},
						"approvalProbability": map[string]interface{}{"type": "integer"},
						"probabilityDelta":    map[string]interface{}{"type": "integer"},
					},
				},
				ErrorCodes: bpmnCodes(
					apperrors.ErrCodeParseError,
					apperrors.ErrCodeInvalidApplicantProfile,
					apperrors.ErrCodeApplicantProfileMissing,
				),
				Timeout: "5s",
				Tags:    []string{"scoring", "what-if"},
			},
			{
				ID:          "notify-eligibility-result",
				DisplayName: "Notify Eligibility Result",
				Description: "Sends the assessment summary to the applicant by email and SMS",
				Category:    CategoryNotification,
				Version:     Version,
				TaskType:    "notify-eligibility-result",
				InputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"applicantId":           map[string]interface{}{"type": "string"},
						"email":                 map[string]interface{}{"type": "string"},
						"phone":                 map[string]interface{}{"type": "string"},
						"eligibilityAssessment": assessmentOutput,
					},
				},
				OutputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"notificationId": map[string]interface{}{"type": "string"},
						"status":         map[string]interface{}{"enum": []interface{}{"sent", "disabled", "no_contact"}},
						"channels":       map[string]interface{}{"type": "array"},
						"sentAt":         map[string]interface{}{"type": "string", "format": "date-time"},
					},
				},
				ErrorCodes: bpmnCodes(
					apperrors.ErrCodeParseError,
					apperrors.ErrCodeApplicantProfileMissing,
					apperrors.ErrCodeApplicantNotFound,
					apperrors.ErrCodeProfileLookupFailed,
					apperrors.ErrCodeDatabaseConnectionFailed,
					apperrors.ErrCodeQueryTimeout,
					apperrors.ErrCodeNotificationSendFailed,
				),
				Timeout: "30s",
				Retries: apperrors.GetRetryCount(apperrors.ErrCodeNotificationSendFailed),
				Tags:    []string{"aws", "ses", "sns"},
			},
		},
	}
}

// Find returns the activity for taskType.
func (r *ActivityRegistry) Find(taskType string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

// TaskTypes lists the registered task types in order.
func (r *ActivityRegistry) TaskTypes() []string {
	out := make([]string, 0, len(r.Activities))
	for _, a := range r.Activities {
		out = append(out, a.TaskType)
	}
	return out
}

// Validate checks that ids and task types are present and unique.
func (r *ActivityRegistry) Validate() error {
	ids := make(map[string]bool, len(r.Activities))
	taskTypes := make(map[string]bool, len(r.Activities))
	for i, a := range r.Activities {
		if a.ID == "" || a.TaskType == "" {
			return fmt.Errorf("activity %d: id and taskType are required", i)
		}
		if ids[a.ID] {
			return fmt.Errorf("duplicate activity id %q", a.ID)
		}
		if taskTypes[a.TaskType] {
			return fmt.Errorf("duplicate task type %q", a.TaskType)
		}
		ids[a.ID] = true
		taskTypes[a.TaskType] = true
	}
	return nil
}

// bpmnCodes maps internal codes to the distinct BPMN error codes a process can catch.
func bpmnCodes(codes ...apperrors.ErrorCode) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		code, ok := apperrors.BPMNErrorMapping[c]
		if !ok {
			code = string(c)
		}
		if !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}
	sort.Strings(out)
	return out
}
