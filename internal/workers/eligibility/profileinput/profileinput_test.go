package profileinput

import (
	"encoding/json"
	"testing"

	apperrors "loan-eligibility-workers/internal/common/errors"
	"loan-eligibility-workers/internal/eligibility"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawProfile(t *testing.T, s string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestDecode(t *testing.T) {
	profile, err := Decode(rawProfile(t,
		`{"monthlyIncome":18000,"loanAmount":200000,"creditScore":520,"existingLoans":1,"educationLevel":"10th Pass","note":"ignored"}`))

	require.NoError(t, err)
	assert.Equal(t, eligibility.ApplicantProfile{
		MonthlyIncome:  18000,
		LoanAmount:     200000,
		CreditScore:    520,
		ExistingLoans:  1,
		EducationLevel: eligibility.EducationTenthPass,
	}, profile)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode(rawProfile(t, `{"monthlyIncome":"lots","creditScore":700}`))

	require.Error(t, err)
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidApplicantProfile, stdErr.Code)
	assert.False(t, stdErr.Retryable)
	assert.Contains(t, stdErr.Details, "monthlyIncome")
	assert.Contains(t, stdErr.Details, "educationLevel")
	assert.NotNil(t, stdErr.Metadata["validationErrors"])
}

func TestDecode_Nil(t *testing.T) {
	_, err := Decode(nil)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidApplicantProfile))
}
