// Package profileinput turns an applicantProfile job variable into an ApplicantProfile.
package profileinput

import (
	apperrors "loan-eligibility-workers/internal/common/errors"
	"loan-eligibility-workers/internal/common/validation"
	"loan-eligibility-workers/internal/eligibility"

	"github.com/mitchellh/mapstructure"
)

// Decode validates raw against the applicant profile schema and decodes it. Shape errors
// are returned as INVALID_APPLICANT_PROFILE.
func Decode(raw map[string]interface{}) (eligibility.ApplicantProfile, error) {
	var profile eligibility.ApplicantProfile

	result, err := validation.ValidateApplicantProfile(raw)
	if err != nil {
		return profile, apperrors.NewInternalError(err)
	}
	if !result.Valid {
		return profile, apperrors.NewInvalidApplicantProfileError(result.Summary()).
			WithMetadata("validationErrors", result.Errors)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &profile,
	})
	if err != nil {
		return profile, apperrors.NewInternalError(err)
	}
	if err := decoder.Decode(raw); err != nil {
		return profile, apperrors.NewInvalidApplicantProfileError(err.Error())
	}
	return profile, nil
}
