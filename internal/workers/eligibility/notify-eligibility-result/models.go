// internal/workers/eligibility/notify-eligibility-result/models.go
package notifyeligibilityresult

import "loan-eligibility-workers/internal/eligibility"

// Input identifies the applicant to notify. Missing contact details or a missing
// assessment are filled from the applicant store.
type Input struct {
	ApplicantID           string                  `json:"applicantId"`
	Email                 string                  `json:"email,omitempty"`
	Phone                 string                  `json:"phone,omitempty"`
	EligibilityAssessment *eligibility.Assessment `json:"eligibilityAssessment,omitempty"`
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"`
	Channels       []string `json:"channels"`
	SentAt         string   `json:"sentAt"` // ISO 8601
}

// Statuses
const (
	StatusSent      = "sent"
	StatusFailed    = "failed"
	StatusDisabled  = "disabled"
	StatusNoContact = "no_contact"
)

// Channels
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)
