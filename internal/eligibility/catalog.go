// internal/eligibility/catalog.go
package eligibility

// roadmapEntry is a fixed roadmap step; the step number is assigned when it is included.
type roadmapEntry struct {
	title       string
	description string
	duration    string
}

var (
	stepClearSmallDebts = roadmapEntry{
		title:       "Clear Small Debts",
		description: "Pay off your smallest outstanding loans first to lower your monthly obligations and free up repayment capacity.",
		duration:    "1-3 months",
	}
	stepImproveCreditScore = roadmapEntry{
		title:       "Improve Credit Score",
		description: "Pay every EMI and card bill on time, keep credit utilisation under 30% and avoid new credit enquiries.",
		duration:    "3-6 months",
	}
	stepBuildEmergencySavings = roadmapEntry{
		title:       "Build Emergency Savings",
		description: "Set aside at least three months of expenses so lenders see a cushion behind your repayments.",
		duration:    "2-4 months",
	}
	stepApplyToRecommendedBank = roadmapEntry{
		title:       "Apply to Recommended Bank",
		description: "Apply to the best-matching bank below with income proof, six months of bank statements and KYC documents.",
		duration:    "1-2 weeks",
	}
)

// bank is one of the three fixed lenders. matchScore derives the per-call score from the
// approval probability using the lender's own offset and bound.
type bank struct {
	name         string
	interestRate string
	features     []string
	matchScore   func(probability int) int
}

var banks = [3]bank{
	{
		name:         "State Bank of India",
		interestRate: "8.5% - 10.5%",
		features:     []string{"Lowest interest rates", "Flexible repayment tenure", "Minimal processing fees"},
		matchScore:   func(p int) int { return min(95, p+10) },
	},
	{
		name:         "HDFC Bank",
		interestRate: "9.0% - 12.0%",
		features:     []string{"Quick disbursal", "Fully digital application", "Pre-approved offers for salaried applicants"},
		matchScore:   func(p int) int { return min(90, p+5) },
	},
	{
		name:         "Bajaj Finserv",
		interestRate: "11.0% - 16.0%",
		features:     []string{"Lenient credit criteria", "Minimal documentation", "Approval within 24 hours"},
		matchScore:   func(p int) int { return max(40, p-5) },
	},
}

func recommendBanks(probability int) []BankRecommendation {
	out := make([]BankRecommendation, 0, len(banks))
	for _, b := range banks {
		features := make([]string, len(b.features))
		copy(features, b.features)
		out = append(out, BankRecommendation{
			Name:         b.name,
			InterestRate: b.interestRate,
			MatchScore:   b.matchScore(probability),
			Features:     features,
		})
	}
	return out
}

func buildRoadmap(p ApplicantProfile) []RoadmapStep {
	entries := make([]roadmapEntry, 0, 4)
	if p.ExistingLoans > 0 {
		entries = append(entries, stepClearSmallDebts)
	}
	if p.CreditScore < 700 {
		entries = append(entries, stepImproveCreditScore)
	}
	entries = append(entries, stepBuildEmergencySavings, stepApplyToRecommendedBank)

	steps := make([]RoadmapStep, len(entries))
	for i, e := range entries {
		steps[i] = RoadmapStep{
			Step:        i + 1,
			Title:       e.title,
			Description: e.description,
			Duration:    e.duration,
		}
	}
	return steps
}
