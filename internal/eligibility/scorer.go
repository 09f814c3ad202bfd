// internal/eligibility/scorer.go

// Package eligibility scores a loan applicant's profile into an approval probability,
// risk and bank-fit categories, explained risk factors, an improvement roadmap and
// bank recommendations. Scoring is pure and safe for concurrent use.
package eligibility

import (
	"math"

	"golang.org/x/text/language"
)

// Weights of the four sub-scores; they sum to 100.
const (
	creditWeight      = 35
	loanRatioWeight   = 25
	loanBurdenWeight  = 20
	educationWeight   = 20
	maxCreditScore    = 900.0
	minProbability    = 10
	maxProbability    = 95
	monthsPerYear     = 12
	maxWeightingRatio = 1.0
)

// Risk and bank-fit breakpoints are independent of each other.
const (
	riskLowThreshold    = 65
	riskMediumThreshold = 40

	bankFitGoodThreshold     = 60
	bankFitModerateThreshold = 35
)

// DefaultLocale is used for number formatting in factor descriptions.
var DefaultLocale = language.MustParse("en-IN")

// Scorer evaluates applicant profiles. The zero value is not usable; call NewScorer.
type Scorer struct {
	locale language.Tag
}

type Option func(*Scorer)

// WithLocale sets the locale used to format amounts in factor descriptions. An
// undetermined tag keeps DefaultLocale.
func WithLocale(tag language.Tag) Option {
	return func(s *Scorer) {
		if tag != language.Und {
			s.locale = tag
		}
	}
}

func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{locale: DefaultLocale}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultScorer = NewScorer()

// Evaluate scores profile with the default scorer.
func Evaluate(profile ApplicantProfile) Assessment {
	return defaultScorer.Evaluate(profile)
}

// ReevaluateWithOverrides re-scores original with its income and loan amount replaced and
// returns only the approval probability.
func ReevaluateWithOverrides(original ApplicantProfile, monthlyIncome, loanAmount float64) int {
	return defaultScorer.ReevaluateWithOverrides(original, monthlyIncome, loanAmount)
}

func (s *Scorer) Evaluate(profile ApplicantProfile) Assessment {
	ratio, ratioOK := loanToIncomeRatio(profile.LoanAmount, profile.MonthlyIncome)
	probability := approvalProbability(profile, ratio, ratioOK)

	f := newFormatter(s.locale)
	return Assessment{
		ApprovalProbability: probability,
		RiskCategory:        classifyRisk(probability),
		BankFitCategory:     classifyBankFit(probability),
		RiskFactors: []RiskFactor{
			creditScoreFactor(f, profile.CreditScore),
			incomeStabilityFactor(f, profile.MonthlyIncome),
			loanBurdenFactor(f, profile.ExistingLoans),
			loanToIncomeFactor(f, profile, ratio, ratioOK),
		},
		RoadmapSteps:     buildRoadmap(profile),
		RecommendedBanks: recommendBanks(probability),
	}
}

func (s *Scorer) ReevaluateWithOverrides(original ApplicantProfile, monthlyIncome, loanAmount float64) int {
	p := original
	p.MonthlyIncome = monthlyIncome
	p.LoanAmount = loanAmount
	return s.Evaluate(p).ApprovalProbability
}

// loanToIncomeRatio returns loan / annual income. ok is false when income is not positive
// or the ratio is not finite; callers treat that as the worst case.
func loanToIncomeRatio(loanAmount, monthlyIncome float64) (float64, bool) {
	annual := monthlyIncome * monthsPerYear
	if !(annual > 0) {
		return 0, false
	}
	r := loanAmount / annual
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

func approvalProbability(p ApplicantProfile, ratio float64, ratioOK bool) int {
	ratioScore := 0.0
	if ratioOK {
		ratioScore = 1 - math.Min(ratio, maxWeightingRatio)
	}

	raw := creditFactor(p.CreditScore)*creditWeight +
		ratioScore*loanRatioWeight +
		loanBurdenMultiplier(p.ExistingLoans)*loanBurdenWeight +
		educationMultiplier(p.EducationLevel)*educationWeight

	return clampProbability(math.Floor(raw + 0.5))
}

func creditFactor(creditScore int) float64 {
	return float64(creditScore) / maxCreditScore
}

func loanBurdenMultiplier(existingLoans int) float64 {
	switch {
	case existingLoans == 0:
		return 1.0
	case existingLoans <= 2:
		return 0.7
	default:
		return 0.3
	}
}

func educationMultiplier(level EducationLevel) float64 {
	switch level {
	case EducationPostGraduate:
		return 1.0
	case EducationGraduate:
		return 0.9
	default:
		return 0.6
	}
}

func clampProbability(v float64) int {
	if math.IsNaN(v) || v < minProbability {
		return minProbability
	}
	if v > maxProbability {
		return maxProbability
	}
	return int(v)
}

func classifyRisk(probability int) RiskCategory {
	switch {
	case probability >= riskLowThreshold:
		return RiskLow
	case probability >= riskMediumThreshold:
		return RiskMedium
	default:
		return RiskHigh
	}
}

func classifyBankFit(probability int) BankFitCategory {
	switch {
	case probability >= bankFitGoodThreshold:
		return BankFitGood
	case probability >= bankFitModerateThreshold:
		return BankFitModerate
	default:
		return BankFitPoor
	}
}
