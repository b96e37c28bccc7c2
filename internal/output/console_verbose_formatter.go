package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/homewise/affordability/internal/domain"
)

// ConsoleVerboseFormatter renders the full affordability report with the
// serviceability working.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	res := report.Result
	p := report.Profile

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "MORTGAGE AFFORDABILITY ANALYSIS")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "HOUSEHOLD PROFILE")
	fmt.Fprintln(&buf, "=================")
	fmt.Fprintf(&buf, "  Deposit:                %s\n", FormatCurrency(p.Deposit))
	fmt.Fprintf(&buf, "  Annual Income:          %s\n", FormatCurrency(p.AnnualIncome))
	fmt.Fprintf(&buf, "  Other Income (monthly): %s\n", FormatCurrency(p.OtherIncome))
	fmt.Fprintf(&buf, "  Monthly Expenses:       %s\n", FormatCurrency(p.MonthlyExpenses))
	fmt.Fprintf(&buf, "  Existing Debts:         %s\n", FormatCurrency(p.ExistingDebts))
	fmt.Fprintf(&buf, "  Dependents:             %d\n", p.Dependents)
	fmt.Fprintf(&buf, "  Employment:             %s\n", p.EmploymentType)
	fmt.Fprintf(&buf, "  First Home Buyer:       %t\n", p.IsFirstHomeBuyer)
	fmt.Fprintln(&buf)

	s := report.Serviceability
	fmt.Fprintln(&buf, "SERVICEABILITY (monthly)")
	fmt.Fprintln(&buf, "------------------------")
	fmt.Fprintf(&buf, "  Gross Income:           %s\n", FormatCurrency(s.MonthlyIncome))
	fmt.Fprintf(&buf, "  Employment Shading:     x%s\n", s.EmploymentMultiplier.StringFixed(2))
	fmt.Fprintf(&buf, "  Assessed Income:        %s\n", FormatCurrency(s.AdjustedIncome))
	fmt.Fprintf(&buf, "  Living Expense Floor:   %s\n", FormatCurrency(s.MinLivingExpenses))
	fmt.Fprintf(&buf, "  Commitments:            %s\n", FormatCurrency(s.Commitments))
	fmt.Fprintf(&buf, "  Surplus:                %s\n", FormatCurrency(s.Surplus))
	if s.Surplus.IsPositive() {
		fmt.Fprintf(&buf, "  Stress Rate:            %s\n", FormatRate(s.StressRate))
		fmt.Fprintf(&buf, "  Max Repayment:          %s\n", FormatCurrency(s.MaxMonthlyRepayment))
		fmt.Fprintf(&buf, "  Serviceable Loan:       %s\n", FormatCurrency(s.LoanFromServiceability))
		fmt.Fprintf(&buf, "  Income Cap:             %s\n", FormatCurrency(s.IncomeCap))
	} else {
		fmt.Fprintln(&buf, "  No surplus after commitments: no loan is serviceable.")
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "BUYING POWER")
	fmt.Fprintln(&buf, "============")
	fmt.Fprintf(&buf, "  Max Loan Amount:        %s (%s)\n", FormatCurrency(res.MaxLoanAmount), FormatWholeCurrency(res.MaxLoanAmountDisplay))
	fmt.Fprintf(&buf, "  Max Property Price:     %s (%s)\n", FormatCurrency(res.MaxPropertyPrice), FormatWholeCurrency(res.MaxPropertyPriceDisplay))
	fmt.Fprintf(&buf, "  Monthly Repayment:      %s\n", FormatCurrency(res.MonthlyRepayment))
	fmt.Fprintf(&buf, "  Loan to Value Ratio:    %s\n", FormatPercentage(res.LoanToValueRatio))
	fmt.Fprintf(&buf, "  Debt to Income Ratio:   %s\n", FormatRatio(res.DebtToIncomeRatio))
	fmt.Fprintf(&buf, "  Rating:                 %s\n", res.AffordabilityRating)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "UPFRONT COSTS:")
	fmt.Fprintf(&buf, "  Deposit:                %s\n", FormatCurrency(p.Deposit))
	fmt.Fprintf(&buf, "  Stamp Duty:             %s\n", FormatCurrency(res.StampDuty))
	fmt.Fprintf(&buf, "  Legal Fees:             %s\n", FormatCurrency(res.Assumptions.LegalFees))
	fmt.Fprintf(&buf, "  Building Inspection:    %s\n", FormatCurrency(res.Assumptions.BuildingInspection))
	fmt.Fprintf(&buf, "  Loan Application:       %s\n", FormatCurrency(res.Assumptions.LoanApplicationFee))
	fmt.Fprintf(&buf, "  LMI Estimate:           %s\n", FormatCurrency(res.Assumptions.LMI))
	fmt.Fprintf(&buf, "  TOTAL:                  %s\n", FormatCurrency(res.TotalUpfrontCosts))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "RECOMMENDATIONS:")
	for _, r := range res.Recommendations {
		fmt.Fprintf(&buf, "• %s\n", r)
	}
	fmt.Fprintln(&buf)

	for i, sc := range report.Scenarios {
		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, sc.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		r := sc.Result
		fmt.Fprintf(&buf, "  Target Price:           %s\n", FormatWholeCurrency(r.TargetPrice))
		fmt.Fprintf(&buf, "  Max Affordable:         %s\n", FormatWholeCurrency(r.MaxAffordable))
		if r.IsAffordable {
			fmt.Fprintf(&buf, "  Buffer:                 +%s\n", FormatWholeCurrency(r.Surplus))
		} else {
			fmt.Fprintf(&buf, "  Shortfall:              -%s\n", FormatWholeCurrency(r.Shortfall))
		}
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&buf, "  - %s\n", rec)
		}
		fmt.Fprintln(&buf)
	}

	o := AnalyzeScenarios(report)
	if len(report.Scenarios) > 0 {
		fmt.Fprintln(&buf, "SUMMARY")
		fmt.Fprintln(&buf, "=======")
		fmt.Fprintf(&buf, "Affordable targets: %d of %d\n", o.AffordableCount, len(report.Scenarios))
		if o.BestAffordable != "" {
			fmt.Fprintf(&buf, "Best reachable: %s (%s)\n", o.BestAffordable, FormatWholeCurrency(o.BestTargetPrice))
		}
		if o.ClosestStretch != "" {
			fmt.Fprintf(&buf, "Closest stretch: %s (short %s)\n", o.ClosestStretch, FormatWholeCurrency(o.ClosestShortfall))
		}
	}

	return buf.Bytes(), nil
}
