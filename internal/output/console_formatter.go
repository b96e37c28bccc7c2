package output

import (
	"bytes"
	"fmt"

	"github.com/homewise/affordability/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	res := report.Result
	fmt.Fprintln(&buf, "BUYING POWER SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Max Property Price: %s (Loan %s)\n",
		FormatWholeCurrency(res.MaxPropertyPriceDisplay), FormatWholeCurrency(res.MaxLoanAmountDisplay))
	fmt.Fprintf(&buf, "Repayment: %s/month at %s  LVR=%s  DTI=%s  Rating=%s\n",
		FormatCurrency(res.MonthlyRepayment), FormatRate(res.InterestRate),
		FormatPercentage(res.LoanToValueRatio), FormatRatio(res.DebtToIncomeRatio), res.AffordabilityRating)
	fmt.Fprintf(&buf, "Upfront: %s (stamp duty %s)\n", FormatCurrency(res.TotalUpfrontCosts), FormatCurrency(res.StampDuty))

	for _, sc := range report.Scenarios {
		status := "affordable"
		if !sc.Result.IsAffordable {
			status = "short " + FormatWholeCurrency(sc.Result.Shortfall)
		}
		fmt.Fprintf(&buf, "%s: %s %s\n", sc.Name, FormatWholeCurrency(sc.Result.TargetPrice), status)
	}

	o := AnalyzeScenarios(report)
	if o.BestAffordable != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Best reachable: %s (%s)\n", o.BestAffordable, FormatWholeCurrency(o.BestTargetPrice))
	}
	return buf.Bytes(), nil
}
