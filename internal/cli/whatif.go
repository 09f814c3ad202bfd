package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"loan-eligibility-workers/internal/eligibility"
)

var (
	whatifProfile   profileFlags
	whatifNewIncome float64
	whatifNewLoan   float64
)

type whatifResult struct {
	MonthlyIncome       float64 `json:"monthlyIncome" yaml:"monthlyIncome"`
	LoanAmount          float64 `json:"loanAmount" yaml:"loanAmount"`
	BaselineProbability int     `json:"baselineProbability" yaml:"baselineProbability"`
	ApprovalProbability int     `json:"approvalProbability" yaml:"approvalProbability"`
	ProbabilityDelta    int     `json:"probabilityDelta" yaml:"probabilityDelta"`
}

var whatifCmd = &cobra.Command{
	Use:   "whatif",
	Short: "Re-score an applicant with a different income or loan amount",
	Example: `  eligibility-cli whatif --sample auto-rickshaw-driver --new-income 40000
  eligibility-cli whatif --sample small-shop-owner --new-loan 150000 -o yaml`,
	Args: cobra.NoArgs,
	RunE: runWhatif,
}

func init() {
	whatifProfile.register(whatifCmd.Flags())
	whatifCmd.Flags().Float64Var(&whatifNewIncome, "new-income", 0, "monthly income to try (defaults to the profile's)")
	whatifCmd.Flags().Float64Var(&whatifNewLoan, "new-loan", 0, "loan amount to try (defaults to the profile's)")
	rootCmd.AddCommand(whatifCmd)
}

func runWhatif(cmd *cobra.Command, _ []string) error {
	profile, err := whatifProfile.resolve(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("new-income") && !cmd.Flags().Changed("new-loan") {
		return errors.New("at least one of --new-income or --new-loan must be set")
	}

	income, loan := profile.MonthlyIncome, profile.LoanAmount
	if cmd.Flags().Changed("new-income") {
		income = whatifNewIncome
	}
	if cmd.Flags().Changed("new-loan") {
		loan = whatifNewLoan
	}

	baseline := eligibility.Evaluate(profile).ApprovalProbability
	probability := eligibility.ReevaluateWithOverrides(profile, income, loan)
	result := whatifResult{
		MonthlyIncome:       income,
		LoanAmount:          loan,
		BaselineProbability: baseline,
		ApprovalProbability: probability,
		ProbabilityDelta:    probability - baseline,
	}

	return render(cmd, result, func(w io.Writer, st styles) {
		fmt.Fprintln(w, st.title.Render("What-if"))
		st.row(w, "Monthly income", fmt.Sprintf("%s → %s",
			eligibility.FormatAmount(eligibility.DefaultLocale, profile.MonthlyIncome), eligibility.FormatAmount(eligibility.DefaultLocale, income)))
		st.row(w, "Loan amount", fmt.Sprintf("%s → %s",
			eligibility.FormatAmount(eligibility.DefaultLocale, profile.LoanAmount), eligibility.FormatAmount(eligibility.DefaultLocale, loan)))

		delta := st.muted
		switch {
		case result.ProbabilityDelta > 0:
			delta = st.good
		case result.ProbabilityDelta < 0:
			delta = st.bad
		}
		st.row(w, "Approval probability", fmt.Sprintf("%d%% → %d%% %s",
			baseline, probability, delta.Render(fmt.Sprintf("(%+d)", result.ProbabilityDelta))))
	})
}
