// internal/workers/eligibility/reevaluate-eligibility/config.go
package reevaluateeligibility

import "time"

type Config struct {
	Timeout    time.Duration
	MaxRetries *int
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
