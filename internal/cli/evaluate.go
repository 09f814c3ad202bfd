package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"loan-eligibility-workers/internal/eligibility"
)

var (
	evaluateProfile profileFlags
	evaluateLocale  string
)

type evaluateResult struct {
	Profile    eligibility.ApplicantProfile `json:"profile" yaml:"profile"`
	Assessment eligibility.Assessment       `json:"assessment" yaml:"assessment"`
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score an applicant",
	Long: `Computes the approval probability, risk and bank-fit categories, risk factors,
improvement roadmap and bank recommendations for one applicant.`,
	Example: `  eligibility-cli evaluate --sample auto-rickshaw-driver
  eligibility-cli evaluate --income 18000 --loan 200000 --credit-score 520 --existing-loans 1 --education "10th Pass"
  eligibility-cli evaluate --sample school-teacher -o json`,
	Args: cobra.NoArgs,
	RunE: runEvaluate,
}

func init() {
	evaluateProfile.register(evaluateCmd.Flags())
	evaluateCmd.Flags().StringVar(&evaluateLocale, "locale", eligibility.DefaultLocale.String(), "BCP 47 locale for amounts in factor descriptions")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	profile, err := evaluateProfile.resolve(cmd)
	if err != nil {
		return err
	}
	locale, err := language.Parse(evaluateLocale)
	if err != nil {
		return fmt.Errorf("invalid --locale %q: %w", evaluateLocale, err)
	}

	assessment := eligibility.NewScorer(eligibility.WithLocale(locale)).Evaluate(profile)
	result := evaluateResult{Profile: profile, Assessment: assessment}

	return render(cmd, result, func(w io.Writer, st styles) {
		writeAssessment(w, st, assessment)
	})
}

func writeAssessment(w io.Writer, st styles, a eligibility.Assessment) {
	fmt.Fprintln(w, st.title.Render("Eligibility"))
	st.row(w, "Approval probability", st.risk(a.RiskCategory).Render(fmt.Sprintf("%d%%", a.ApprovalProbability)))
	st.row(w, "Risk category", st.risk(a.RiskCategory).Render(string(a.RiskCategory)))
	st.row(w, "Bank fit", st.bankFit(a.BankFitCategory).Render(string(a.BankFitCategory)))

	fmt.Fprintln(w)
	fmt.Fprintln(w, st.title.Render("Risk factors"))
	for _, f := range a.RiskFactors {
		fmt.Fprintf(w, "  %s %s\n", st.severity(f.Severity).Render("["+string(f.Severity)+"]"), f.Factor)
		fmt.Fprintf(w, "      %s\n", f.Description)
		fmt.Fprintf(w, "      %s\n", st.muted.Render(f.Improvement))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, st.title.Render("Recommended banks"))
	for _, b := range a.RecommendedBanks {
		fmt.Fprintf(w, "  %s  %s  %s\n", st.accent.Render(b.Name), b.InterestRate, st.muted.Render(fmt.Sprintf("match %d%%", b.MatchScore)))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, st.title.Render("Improvement roadmap"))
	for _, s := range a.RoadmapSteps {
		fmt.Fprintf(w, "  %d. %s %s\n", s.Step, s.Title, st.muted.Render("("+s.Duration+")"))
		fmt.Fprintf(w, "     %s\n", s.Description)
	}
}
