// internal/workers/eligibility/evaluate-eligibility/config.go
package evaluateeligibility

import (
	"time"

	"loan-eligibility-workers/internal/eligibility"

	"golang.org/x/text/language"
)

type Config struct {
	Timeout      time.Duration
	Locale       language.Tag
	AllowSamples bool
	// MaxRetries caps the retries reported for retryable failures. Nil keeps the per-code limit.
	MaxRetries *int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      10 * time.Second,
		Locale:       eligibility.DefaultLocale,
		AllowSamples: true,
	}
}
