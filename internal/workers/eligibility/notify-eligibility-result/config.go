// internal/workers/eligibility/notify-eligibility-result/config.go
package notifyeligibilityresult

import (
	"time"

	"loan-eligibility-workers/internal/eligibility"

	"golang.org/x/text/language"
)

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	SenderID     string
	// Locale formats amounts when the assessment is computed from a stored applicant.
	Locale     language.Tag
	Timeout    time.Duration
	MaxRetries *int
}

func LoadConfig() *Config {
	return &Config{
		Locale:  eligibility.DefaultLocale,
		Timeout: 30 * time.Second,
	}
}
