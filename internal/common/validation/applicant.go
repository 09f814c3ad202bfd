package validation

// ApplicantProfileDefinition is the JSON schema of an applicant profile. Value ranges are
// not constrained; the scorer handles out-of-range inputs.
var ApplicantProfileDefinition = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"monthlyIncome":  map[string]interface{}{"type": "number"},
		"loanAmount":     map[string]interface{}{"type": "number"},
		"creditScore":    map[string]interface{}{"type": "integer"},
		"existingLoans":  map[string]interface{}{"type": "integer"},
		"educationLevel": map[string]interface{}{"type": "string"},
	},
	"required": []interface{}{
		"monthlyIncome",
		"loanAmount",
		"creditScore",
		"existingLoans",
		"educationLevel",
	},
}

// ApplicantProfileSchema is ApplicantProfileDefinition compiled.
var ApplicantProfileSchema = MustSchema(ApplicantProfileDefinition)

// ValidateApplicantProfile validates a decoded applicantProfile variable.
func ValidateApplicantProfile(profile interface{}) (*ValidationResult, error) {
	return ApplicantProfileSchema.Validate(profile)
}
