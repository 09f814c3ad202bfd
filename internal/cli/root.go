// Package cli implements the eligibility-cli commands.
package cli

import (
	"github.com/spf13/cobra"
)

var version = "dev"

var outputFormat string

var rootCmd = &cobra.Command{
	Use:   "eligibility-cli",
	Short: "Score loan applicants from the command line",
	Long: `Runs the loan eligibility scorer locally. Evaluate an applicant from flags or a
built-in sample, explore what-if changes to income and loan amount, and list the samples.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatText, "output format: text, json or yaml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
