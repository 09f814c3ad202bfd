// internal/eligibility/models.go
package eligibility

// EducationLevel is the applicant's highest completed education.
type EducationLevel string

const (
	EducationTenthPass    EducationLevel = "10th Pass"
	EducationTwelfthPass  EducationLevel = "12th Pass"
	EducationGraduate     EducationLevel = "Graduate"
	EducationPostGraduate EducationLevel = "Post Graduate"
)

// ApplicantProfile is the financial profile supplied by the caller for one evaluation.
type ApplicantProfile struct {
	MonthlyIncome  float64        `json:"monthlyIncome" yaml:"monthlyIncome"`
	LoanAmount     float64        `json:"loanAmount" yaml:"loanAmount"`
	CreditScore    int            `json:"creditScore" yaml:"creditScore"`
	ExistingLoans  int            `json:"existingLoans" yaml:"existingLoans"`
	EducationLevel EducationLevel `json:"educationLevel" yaml:"educationLevel"`
}

type RiskCategory string

const (
	RiskLow    RiskCategory = "Low"
	RiskMedium RiskCategory = "Medium"
	RiskHigh   RiskCategory = "High"
)

type BankFitCategory string

const (
	BankFitGood     BankFitCategory = "Good"
	BankFitModerate BankFitCategory = "Moderate"
	BankFitPoor     BankFitCategory = "Poor"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Risk factor names, in the order they appear in every assessment.
const (
	FactorCreditScore       = "Credit Score"
	FactorIncomeStability   = "Income Stability"
	FactorExistingLoans     = "Existing Loan Burden"
	FactorLoanToIncomeRatio = "Loan-to-Income Ratio"
)

type RiskFactor struct {
	Factor      string   `json:"factor" yaml:"factor"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Description string   `json:"description" yaml:"description"`
	Improvement string   `json:"improvement" yaml:"improvement"`
}

type RoadmapStep struct {
	Step        int    `json:"step" yaml:"step"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Duration    string `json:"duration" yaml:"duration"`
}

type BankRecommendation struct {
	Name         string   `json:"name" yaml:"name"`
	InterestRate string   `json:"interestRate" yaml:"interestRate"`
	MatchScore   int      `json:"matchScore" yaml:"matchScore"`
	Features     []string `json:"features" yaml:"features"`
}

// Assessment is the full eligibility result. Each call to Evaluate allocates a new one.
type Assessment struct {
	ApprovalProbability int                  `json:"approvalProbability" yaml:"approvalProbability"`
	RiskCategory        RiskCategory         `json:"riskCategory" yaml:"riskCategory"`
	BankFitCategory     BankFitCategory      `json:"bankFitCategory" yaml:"bankFitCategory"`
	RiskFactors         []RiskFactor         `json:"riskFactors" yaml:"riskFactors"`
	RoadmapSteps        []RoadmapStep        `json:"roadmapSteps" yaml:"roadmapSteps"`
	RecommendedBanks    []BankRecommendation `json:"recommendedBanks" yaml:"recommendedBanks"`
}
