// internal/eligibility/factors.go
package eligibility

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Severity bands for the displayed factors. They are deliberately separate from the
// weighting in approvalProbability.
const (
	creditLowRiskMin    = 700
	creditMediumRiskMin = 550

	incomeLowRiskMin    = 40000
	incomeMediumRiskMin = 20000

	loansMediumRiskMax = 2

	ratioLowRiskMax    = 3
	ratioMediumRiskMax = 6
)

// displayLimit keeps amounts inside int64 range when they are formatted.
const displayLimit = 1e15

type formatter struct {
	p *message.Printer
}

func newFormatter(tag language.Tag) formatter {
	return formatter{p: message.NewPrinter(tag)}
}

// FormatAmount renders v as whole rupees with tag's digit grouping, e.g. ₹2,00,000 for
// en-IN and -₹5,000 for a negative value.
func FormatAmount(tag language.Tag, v float64) string {
	return newFormatter(tag).amount(v)
}

func (f formatter) amount(v float64) string {
	if math.IsNaN(v) {
		v = 0
	}
	v = math.Round(v)
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	if v > displayLimit {
		v = displayLimit
	}
	return sign + "₹" + f.p.Sprintf("%d", int64(v))
}

func (f formatter) count(n int) string {
	return f.p.Sprintf("%d", n)
}

func (f formatter) ratio(r float64) string {
	return f.p.Sprintf("%.1f", r)
}

func creditScoreFactor(f formatter, score int) RiskFactor {
	factor := RiskFactor{Factor: FactorCreditScore}
	s := f.count(score)
	switch {
	case score >= creditLowRiskMin:
		factor.Severity = SeverityLow
		factor.Description = "Your credit score of " + s + " is strong and signals a reliable repayment history."
	case score >= creditMediumRiskMin:
		factor.Severity = SeverityMedium
		factor.Description = "Your credit score of " + s + " is fair; lenders may approve with a higher interest rate."
	default:
		factor.Severity = SeverityHigh
		factor.Description = "Your credit score of " + s + " is below the minimum most lenders accept."
	}
	if factor.Severity != SeverityLow {
		factor.Improvement = "Pay all EMIs and card bills on time and keep credit utilisation below 30% to move your score above 700."
	} else {
		factor.Improvement = "Keep paying on time and avoid unnecessary credit enquiries to hold your score."
	}
	return factor
}

func incomeStabilityFactor(f formatter, monthlyIncome float64) RiskFactor {
	factor := RiskFactor{Factor: FactorIncomeStability}
	amt := f.amount(monthlyIncome)
	switch {
	case monthlyIncome >= incomeLowRiskMin:
		factor.Severity = SeverityLow
		factor.Description = "A monthly income of " + amt + " comfortably supports an additional EMI."
	case monthlyIncome >= incomeMediumRiskMin:
		factor.Severity = SeverityMedium
		factor.Description = "A monthly income of " + amt + " supports a modest EMI; lenders may cap the amount they offer."
	default:
		factor.Severity = SeverityHigh
		factor.Description = "A monthly income of " + amt + " limits the EMI lenders are willing to approve."
	}
	if factor.Severity != SeverityLow {
		factor.Improvement = "Add an earning co-applicant or document additional income such as rent or business earnings."
	} else {
		factor.Improvement = "Keep salary credits regular in one bank account to make your income easy to verify."
	}
	return factor
}

func loanBurdenFactor(f formatter, existingLoans int) RiskFactor {
	factor := RiskFactor{Factor: FactorExistingLoans}
	var holding string
	switch existingLoans {
	case 0:
		holding = "You have no active loans"
	case 1:
		holding = "You have 1 active loan"
	default:
		holding = "You have " + f.count(existingLoans) + " active loans"
	}
	switch {
	case existingLoans == 0:
		factor.Severity = SeverityLow
		factor.Description = holding + ", so your full repayment capacity is available."
	case existingLoans <= loansMediumRiskMax:
		factor.Severity = SeverityMedium
		factor.Description = holding + ", which reduces the EMI you can take on."
	default:
		factor.Severity = SeverityHigh
		factor.Description = holding + "; lenders see this as a heavy existing debt burden."
	}
	if factor.Severity != SeverityLow {
		factor.Improvement = "Close your smallest outstanding loans before applying to lower your monthly obligations."
	} else {
		factor.Improvement = "Avoid taking new credit until your application is approved."
	}
	return factor
}

func loanToIncomeFactor(f formatter, p ApplicantProfile, ratio float64, ratioOK bool) RiskFactor {
	factor := RiskFactor{Factor: FactorLoanToIncomeRatio}
	loan := f.amount(p.LoanAmount)
	switch {
	case !ratioOK:
		factor.Severity = SeverityHigh
		factor.Description = "A loan of " + loan + " cannot be measured against a monthly income of " +
			f.amount(p.MonthlyIncome) + "; lenders treat this as the highest risk."
	case ratio < ratioLowRiskMax:
		factor.Severity = SeverityLow
		factor.Description = "A loan of " + loan + " is " + f.ratio(ratio) + "x your annual income, well within repayment capacity."
	case ratio < ratioMediumRiskMax:
		factor.Severity = SeverityMedium
		factor.Description = "A loan of " + loan + " is " + f.ratio(ratio) + "x your annual income, a stretch for most lenders."
	default:
		factor.Severity = SeverityHigh
		factor.Description = "A loan of " + loan + " is " + f.ratio(ratio) + "x your annual income, more than lenders usually allow."
	}
	if factor.Severity != SeverityLow {
		factor.Improvement = "Reduce the requested amount or raise your down payment so the loan stays under 3x your annual income."
	} else {
		factor.Improvement = "Your requested amount fits your income; a longer tenure can lower the EMI further."
	}
	return factor
}
