// internal/workers/eligibility/evaluate-eligibility/models.go
package evaluateeligibility

import "loan-eligibility-workers/internal/eligibility"

// Input accepts the profile inline, as a sample id, or as a stored applicant id, tried in
// that order.
type Input struct {
	ApplicantProfile map[string]interface{} `json:"applicantProfile,omitempty"`
	SampleID         string                 `json:"sampleId,omitempty"`
	ApplicantID      string                 `json:"applicantId,omitempty"`
}

type Output struct {
	ApprovalProbability   int                          `json:"approvalProbability"`
	RiskCategory          eligibility.RiskCategory     `json:"riskCategory"`
	BankFitCategory       eligibility.BankFitCategory  `json:"bankFitCategory"`
	ProfileSource         string                       `json:"profileSource"`
	ApplicantProfile      eligibility.ApplicantProfile `json:"applicantProfile"`
	EligibilityAssessment eligibility.Assessment       `json:"eligibilityAssessment"`
}

// Profile sources
const (
	SourceInline    = "inline"
	SourceSample    = "sample"
	SourceApplicant = "applicant"
)
