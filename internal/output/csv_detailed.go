package output

import (
	"bytes"
	"encoding/csv"

	"github.com/homewise/affordability/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVDetailedExporter writes every computed figure as Section,Metric,Value rows.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Section", "Metric", "Value"}); err != nil {
		return nil, err
	}

	s := report.Serviceability
	res := report.Result
	money := func(d decimal.Decimal) string { return d.StringFixed(2) }
	dti := ""
	if res.DebtToIncomeRatio != nil {
		dti = res.DebtToIncomeRatio.String()
	}

	rows := [][]string{
		{"loan", "base_annual_rate", report.Terms.BaseAnnualRate.String()},
		{"loan", "term_years", intToString(report.Terms.TermYears)},
		{"serviceability", "monthly_income", money(s.MonthlyIncome)},
		{"serviceability", "employment_multiplier", s.EmploymentMultiplier.String()},
		{"serviceability", "adjusted_income", money(s.AdjustedIncome)},
		{"serviceability", "min_living_expenses", money(s.MinLivingExpenses)},
		{"serviceability", "effective_expenses", money(s.EffectiveExpenses)},
		{"serviceability", "commitments", money(s.Commitments)},
		{"serviceability", "surplus", money(s.Surplus)},
		{"serviceability", "stress_rate", s.StressRate.String()},
		{"serviceability", "max_monthly_repayment", money(s.MaxMonthlyRepayment)},
		{"serviceability", "loan_from_serviceability", money(s.LoanFromServiceability)},
		{"serviceability", "income_cap", money(s.IncomeCap)},
		{"result", "max_loan_amount", money(res.MaxLoanAmount)},
		{"result", "max_property_price", money(res.MaxPropertyPrice)},
		{"result", "monthly_repayment", money(res.MonthlyRepayment)},
		{"result", "loan_to_value_ratio", money(res.LoanToValueRatio)},
		{"result", "stamp_duty", money(res.StampDuty)},
		{"result", "lmi", money(res.Assumptions.LMI)},
		{"result", "total_upfront_costs", money(res.TotalUpfrontCosts)},
		{"result", "debt_to_income_ratio", dti},
		{"result", "affordability_rating", string(res.AffordabilityRating)},
	}
	for _, sc := range report.Scenarios {
		rows = append(rows,
			[]string{"scenario:" + sc.Name, "target_price", money(sc.Result.TargetPrice)},
			[]string{"scenario:" + sc.Name, "is_affordable", boolToString(sc.Result.IsAffordable)},
		)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
