// cmd/eligibility-cli/main.go
package main

import (
	"os"

	"loan-eligibility-workers/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
