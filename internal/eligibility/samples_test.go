// internal/eligibility/samples_test.go
package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamples(t *testing.T) {
	all := Samples()
	require.Len(t, all, 5)

	seen := make(map[string]bool)
	for _, s := range all {
		assert.NotEmpty(t, s.ID)
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.Persona)
		assert.False(t, seen[s.ID], "duplicate sample id %s", s.ID)
		seen[s.ID] = true

		assert.Greater(t, s.Profile.MonthlyIncome, 0.0, s.ID)
		assert.Contains(t, []EducationLevel{
			EducationTenthPass,
			EducationTwelfthPass,
			EducationGraduate,
			EducationPostGraduate,
		}, s.Profile.EducationLevel, s.ID)
	}
}

func TestSamples_ReturnsCopy(t *testing.T) {
	first := Samples()
	first[0].Profile.CreditScore = 1

	second := Samples()
	assert.Equal(t, 520, second[0].Profile.CreditScore)
}

func TestSample(t *testing.T) {
	tests := []struct {
		id          string
		found       bool
		probability int
		risk        RiskCategory
		fit         BankFitCategory
	}{
		{"auto-rickshaw-driver", true, 48, RiskMedium, BankFitModerate},
		{"software-engineer", true, 70, RiskLow, BankFitGood},
		{"small-shop-owner", true, 51, RiskMedium, BankFitModerate},
		{"school-teacher", true, 60, RiskMedium, BankFitGood},
		{"daily-wage-worker", true, 43, RiskMedium, BankFitModerate},
		{"astronaut", false, 0, "", ""},
		{"", false, 0, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s, ok := Sample(tt.id)
			assert.Equal(t, tt.found, ok)
			if !tt.found {
				assert.Empty(t, s.ID)
				return
			}

			a := Evaluate(s.Profile)
			assert.Equal(t, tt.probability, a.ApprovalProbability)
			assert.Equal(t, tt.risk, a.RiskCategory)
			assert.Equal(t, tt.fit, a.BankFitCategory)
		})
	}
}
