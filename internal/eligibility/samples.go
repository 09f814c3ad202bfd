// internal/eligibility/samples.go
package eligibility

// SampleProfile is a named, canned applicant used by demos and what-if screens.
type SampleProfile struct {
	ID      string           `json:"id" yaml:"id"`
	Name    string           `json:"name" yaml:"name"`
	Persona string           `json:"persona" yaml:"persona"`
	Profile ApplicantProfile `json:"profile" yaml:"profile"`
}

var samples = []SampleProfile{
	{
		ID:      "auto-rickshaw-driver",
		Name:    "Auto-rickshaw Driver",
		Persona: "Self-employed driver looking to buy their own vehicle",
		Profile: ApplicantProfile{
			MonthlyIncome:  18000,
			LoanAmount:     200000,
			CreditScore:    520,
			ExistingLoans:  1,
			EducationLevel: EducationTenthPass,
		},
	},
	{
		ID:      "software-engineer",
		Name:    "Software Engineer",
		Persona: "Salaried professional applying for a home renovation loan",
		Profile: ApplicantProfile{
			MonthlyIncome:  85000,
			LoanAmount:     1500000,
			CreditScore:    780,
			ExistingLoans:  0,
			EducationLevel: EducationPostGraduate,
		},
	},
	{
		ID:      "small-shop-owner",
		Name:    "Small Shop Owner",
		Persona: "Kirana store owner expanding inventory",
		Profile: ApplicantProfile{
			MonthlyIncome:  32000,
			LoanAmount:     500000,
			CreditScore:    640,
			ExistingLoans:  2,
			EducationLevel: EducationTwelfthPass,
		},
	},
	{
		ID:      "school-teacher",
		Name:    "School Teacher",
		Persona: "Government school teacher funding a two-wheeler and education costs",
		Profile: ApplicantProfile{
			MonthlyIncome:  42000,
			LoanAmount:     600000,
			CreditScore:    710,
			ExistingLoans:  1,
			EducationLevel: EducationGraduate,
		},
	},
	{
		ID:      "daily-wage-worker",
		Name:    "Daily Wage Worker",
		Persona: "Construction worker with irregular income and several informal loans",
		Profile: ApplicantProfile{
			MonthlyIncome:  12000,
			LoanAmount:     100000,
			CreditScore:    450,
			ExistingLoans:  3,
			EducationLevel: EducationTenthPass,
		},
	},
}

// Samples returns a copy of the sample catalog in display order.
func Samples() []SampleProfile {
	out := make([]SampleProfile, len(samples))
	copy(out, samples)
	return out
}

// Sample looks up a sample by id.
func Sample(id string) (SampleProfile, bool) {
	for _, s := range samples {
		if s.ID == id {
			return s, true
		}
	}
	return SampleProfile{}, false
}
