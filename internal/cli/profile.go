package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"loan-eligibility-workers/internal/eligibility"
)

var educationLevels = []eligibility.EducationLevel{
	eligibility.EducationTenthPass,
	eligibility.EducationTwelfthPass,
	eligibility.EducationGraduate,
	eligibility.EducationPostGraduate,
}

// profileFlags are the applicant flags shared by evaluate and whatif.
type profileFlags struct {
	sample        string
	income        float64
	loan          float64
	creditScore   int
	existingLoans int
	education     string
}

func (p *profileFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&p.sample, "sample", "s", "", "use a built-in sample profile (see 'samples')")
	fs.Float64Var(&p.income, "income", 0, "monthly income in rupees")
	fs.Float64Var(&p.loan, "loan", 0, "requested loan amount in rupees")
	fs.IntVar(&p.creditScore, "credit-score", 0, "credit score (0-900)")
	fs.IntVar(&p.existingLoans, "existing-loans", 0, "number of active loans")
	fs.StringVar(&p.education, "education", "", `education level: "10th Pass", "12th Pass", "Graduate" or "Post Graduate"`)
}

// resolve returns the sample profile when --sample is set, otherwise the profile built from
// the individual flags.
func (p *profileFlags) resolve(cmd *cobra.Command) (eligibility.ApplicantProfile, error) {
	if p.sample != "" {
		s, ok := eligibility.Sample(p.sample)
		if !ok {
			return eligibility.ApplicantProfile{}, fmt.Errorf("unknown sample %q (available: %s)", p.sample, sampleIDs())
		}
		return s.Profile, nil
	}

	var missing []string
	for _, name := range []string{"income", "loan", "credit-score", "education"} {
		if !cmd.Flags().Changed(name) {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return eligibility.ApplicantProfile{}, fmt.Errorf("either --sample or %s must be set", strings.Join(missing, ", "))
	}

	level, err := parseEducation(p.education)
	if err != nil {
		return eligibility.ApplicantProfile{}, err
	}
	if p.creditScore < 0 || p.creditScore > 900 {
		return eligibility.ApplicantProfile{}, fmt.Errorf("--credit-score must be between 0 and 900, got %d", p.creditScore)
	}
	if p.existingLoans < 0 {
		return eligibility.ApplicantProfile{}, errors.New("--existing-loans cannot be negative")
	}

	return eligibility.ApplicantProfile{
		MonthlyIncome:  p.income,
		LoanAmount:     p.loan,
		CreditScore:    p.creditScore,
		ExistingLoans:  p.existingLoans,
		EducationLevel: level,
	}, nil
}

func parseEducation(s string) (eligibility.EducationLevel, error) {
	for _, level := range educationLevels {
		if strings.EqualFold(string(level), strings.TrimSpace(s)) {
			return level, nil
		}
	}
	return "", fmt.Errorf("unknown education level %q", s)
}

func sampleIDs() string {
	samples := eligibility.Samples()
	ids := make([]string, 0, len(samples))
	for _, s := range samples {
		ids = append(ids, s.ID)
	}
	sort.Strings(ids)
	return strings.Join(ids, ", ")
}
