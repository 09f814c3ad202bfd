package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"loan-eligibility-workers/internal/eligibility"
)

type sampleRow struct {
	eligibility.SampleProfile `yaml:",inline"`
	ApprovalProbability       int                      `json:"approvalProbability" yaml:"approvalProbability"`
	RiskCategory              eligibility.RiskCategory `json:"riskCategory" yaml:"riskCategory"`
}

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "List the built-in sample applicants",
	Args:  cobra.NoArgs,
	RunE:  runSamples,
}

func init() {
	rootCmd.AddCommand(samplesCmd)
}

func runSamples(cmd *cobra.Command, _ []string) error {
	samples := eligibility.Samples()
	rows := make([]sampleRow, 0, len(samples))
	for _, s := range samples {
		a := eligibility.Evaluate(s.Profile)
		rows = append(rows, sampleRow{
			SampleProfile:       s,
			ApprovalProbability: a.ApprovalProbability,
			RiskCategory:        a.RiskCategory,
		})
	}

	return render(cmd, rows, func(w io.Writer, st styles) {
		cells := make([][]string, 0, len(rows))
		for _, r := range rows {
			cells = append(cells, []string{
				r.ID,
				r.Name,
				eligibility.FormatAmount(eligibility.DefaultLocale, r.Profile.MonthlyIncome),
				eligibility.FormatAmount(eligibility.DefaultLocale, r.Profile.LoanAmount),
				strconv.Itoa(r.Profile.CreditScore),
				fmt.Sprintf("%d%%", r.ApprovalProbability),
				string(r.RiskCategory),
			})
		}
		fmt.Fprintln(w, st.table([]string{"ID", "NAME", "INCOME", "LOAN", "CREDIT", "PROBABILITY", "RISK"}, cells))
		fmt.Fprintln(w)
		fmt.Fprintln(w, st.muted.Render("Evaluate one with: eligibility-cli evaluate --sample <id>"))
	})
}
