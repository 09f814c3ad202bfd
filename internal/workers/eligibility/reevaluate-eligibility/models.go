// internal/workers/eligibility/reevaluate-eligibility/models.go
package reevaluateeligibility

// Input carries the profile to re-score and the what-if values. A nil override keeps the
// profile's own value.
type Input struct {
	ApplicantProfile map[string]interface{} `json:"applicantProfile"`
	MonthlyIncome    *float64               `json:"monthlyIncome,omitempty"`
	LoanAmount       *float64               `json:"loanAmount,omitempty"`
}

type Output struct {
	BaselineProbability int `json:"baselineProbability"`
	ApprovalProbability int `json:"approvalProbability"`
	ProbabilityDelta    int `json:"probabilityDelta"`
}
