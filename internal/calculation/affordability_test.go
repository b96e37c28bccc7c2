package calculation

import (
	"fmt"
	"testing"

	"github.com/homewise/affordability/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestAnalyzer(logger Logger) *AffordabilityAnalyzer {
	rules := domain.DefaultLendingRules()
	return NewAffordabilityAnalyzer(rules, NewServiceabilityEngine(rules, logger), DefaultStampDutyTable(), logger)
}

func endToEndTerms() domain.LoanTerms {
	return domain.LoanTerms{BaseAnnualRate: endToEndRate, TermYears: 30}
}

func TestAffordabilityAnalyzer_EndToEnd(t *testing.T) {
	aa := newTestAnalyzer(nil)

	res := aa.Analyze(endToEndProfile(), endToEndTerms())

	assert.InDelta(t, 245270, res.MaxLoanAmount.InexactFloat64(), 50)
	assert.InDelta(t, 345270, res.MaxPropertyPrice.InexactFloat64(), 50)
	assert.True(t, res.MaxPropertyPrice.Sub(res.MaxLoanAmount).Equal(decimal.NewFromInt(100000)))
	assert.True(t, res.MaxLoanAmountDisplay.Equal(decimal.NewFromInt(245000)))
	assert.True(t, res.MaxPropertyPriceDisplay.Equal(decimal.NewFromInt(345000)))
	assert.InDelta(t, 71.1, res.LoanToValueRatio.InexactFloat64(), 0.2)
	assert.InDelta(t, 10632, res.StampDuty.InexactFloat64(), 10)
	assert.InDelta(t, 1608, res.MonthlyRepayment.InexactFloat64(), 5)
	require.NotNil(t, res.DebtToIncomeRatio)
	assert.InDelta(t, 0.227, res.DebtToIncomeRatio.InexactFloat64(), 0.002)
	assert.Equal(t, domain.RatingExcellent, res.AffordabilityRating)
	assert.True(t, res.InterestRate.Equal(endToEndRate))

	expectedUpfront := res.StampDuty.Add(decimal.NewFromInt(100000 + 1500 + 500 + 600))
	assert.InDelta(t, expectedUpfront.InexactFloat64(), res.TotalUpfrontCosts.InexactFloat64(), 0.01)

	assert.Equal(t, []string{msgWidenSearch}, res.Recommendations)

	a := res.Assumptions
	assert.True(t, a.StressTestRate.Equal(decimal.NewFromFloat(0.0985)))
	assert.Equal(t, 30, a.LoanTermYears)
	assert.True(t, a.LegalFees.Equal(decimal.NewFromInt(1500)))
	assert.True(t, a.BuildingInspection.Equal(decimal.NewFromInt(500)))
	assert.True(t, a.LoanApplicationFee.Equal(decimal.NewFromInt(600)))
	assert.True(t, a.LMI.IsZero())
}

func TestAffordabilityAnalyzer_ZeroSurplus(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	aa := newTestAnalyzer(zap.New(core).Sugar())

	p := endToEndProfile()
	p.MonthlyExpenses = decimal.NewFromInt(10000)
	res := aa.Analyze(p, endToEndTerms())

	assert.True(t, res.MaxLoanAmount.IsZero())
	assert.True(t, res.MaxPropertyPrice.Equal(p.Deposit))
	assert.True(t, res.LoanToValueRatio.IsZero())
	assert.True(t, res.MonthlyRepayment.IsZero())
	require.NotNil(t, res.DebtToIncomeRatio)
	assert.True(t, res.DebtToIncomeRatio.IsZero())
	// zero borrowing still rates Excellent from the zero repayment
	assert.Equal(t, domain.RatingExcellent, res.AffordabilityRating)
	assert.Equal(t, []string{msgWidenSearch}, res.Recommendations)

	assert.Equal(t, 1, logs.FilterMessageSnippet("zero serviceable loan").Len())
}

func TestAffordabilityAnalyzer_ZeroIncome(t *testing.T) {
	aa := newTestAnalyzer(nil)

	p := endToEndProfile()
	p.AnnualIncome = decimal.Zero
	res := aa.Analyze(p, endToEndTerms())

	assert.True(t, res.MaxLoanAmount.IsZero())
	assert.Nil(t, res.DebtToIncomeRatio)
	assert.Equal(t, domain.RatingStretched, res.AffordabilityRating)
	assert.Equal(t, []string{msgHighDTI, msgWidenSearch}, res.Recommendations)
}

func TestAffordabilityAnalyzer_ZeroPrice(t *testing.T) {
	aa := newTestAnalyzer(nil)

	p := endToEndProfile()
	p.Deposit = decimal.Zero
	p.AnnualIncome = decimal.Zero
	res := aa.Analyze(p, endToEndTerms())

	assert.True(t, res.MaxPropertyPrice.IsZero())
	assert.True(t, res.LoanToValueRatio.IsZero())
	assert.True(t, res.TotalUpfrontCosts.Equal(decimal.NewFromInt(2600)))
}

func TestAffordabilityAnalyzer_HighLVR(t *testing.T) {
	aa := newTestAnalyzer(nil)

	p := endToEndProfile()
	p.Deposit = decimal.NewFromInt(10000)
	res := aa.Analyze(p, endToEndTerms())

	assert.Greater(t, res.LoanToValueRatio.InexactFloat64(), 90.0)
	lmi := res.MaxLoanAmount.Mul(decimal.NewFromFloat(0.02))
	assert.InDelta(t, lmi.InexactFloat64(), res.Assumptions.LMI.InexactFloat64(), 0.01)

	require.Len(t, res.Recommendations, 3)
	assert.Equal(t, fmt.Sprintf(msgSaveLargerDeposit, res.LoanToValueRatio.StringFixed(1)), res.Recommendations[0])
	assert.Contains(t, res.Recommendations[0], "Your LVR is 96.1%.")
	assert.Equal(t, msgHighLVR, res.Recommendations[1])
	assert.Equal(t, msgWidenSearch, res.Recommendations[2])
}

func TestAffordabilityAnalyzer_LMIBetween80And90(t *testing.T) {
	aa := newTestAnalyzer(nil)

	p := endToEndProfile()
	p.Deposit = decimal.NewFromInt(40000)
	res := aa.Analyze(p, endToEndTerms())

	lvr := res.LoanToValueRatio.InexactFloat64()
	require.Greater(t, lvr, 80.0)
	require.LessOrEqual(t, lvr, 90.0)
	assert.True(t, res.Assumptions.LMI.IsPositive())
	assert.Equal(t, []string{res.Recommendations[0], msgWidenSearch}, res.Recommendations)
	assert.NotContains(t, res.Recommendations, msgHighLVR)
}

func TestAffordabilityAnalyzer_FirstHomeBuyer(t *testing.T) {
	aa := newTestAnalyzer(nil)

	p := endToEndProfile()
	p.IsFirstHomeBuyer = true
	res := aa.Analyze(p, endToEndTerms())

	assert.True(t, res.StampDuty.IsZero())
	assert.Equal(t, []string{msgFirstHomeBuyer, msgWidenSearch}, res.Recommendations)
}

func TestAffordabilityAnalyzer_StrongPosition(t *testing.T) {
	aa := newTestAnalyzer(nil)

	p := endToEndProfile()
	p.Deposit = decimal.NewFromInt(400000)
	p.AnnualIncome = decimal.NewFromInt(200000)
	res := aa.Analyze(p, endToEndTerms())

	assert.Greater(t, res.MaxPropertyPrice.InexactFloat64(), 500000.0)
	assert.Equal(t, domain.RatingExcellent, res.AffordabilityRating)
	assert.Equal(t, []string{msgStrongPosition}, res.Recommendations)
}

func TestAffordabilityAnalyzer_RatingBands(t *testing.T) {
	aa := newTestAnalyzer(nil)

	tests := []struct {
		dti      float64
		expected domain.AffordabilityRating
	}{
		{0, domain.RatingExcellent},
		{0.2499, domain.RatingExcellent},
		{0.25, domain.RatingGood},
		{0.2999, domain.RatingGood},
		{0.30, domain.RatingFair},
		{0.3499, domain.RatingFair},
		{0.35, domain.RatingStretched},
		{1.2, domain.RatingStretched},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.4f", tt.dti), func(t *testing.T) {
			d := decimal.NewFromFloat(tt.dti)
			assert.Equal(t, tt.expected, aa.rate(&d))
		})
	}
	assert.Equal(t, domain.RatingStretched, aa.rate(nil))
}

func TestAffordabilityAnalyzer_Properties(t *testing.T) {
	aa := newTestAnalyzer(nil)

	for _, deposit := range []int64{0, 20000, 100000, 500000} {
		for _, income := range []int64{0, 40000, 85000, 250000} {
			for _, expenses := range []int64{0, 3000, 8000} {
				for _, j := range []domain.Jurisdiction{domain.JurisdictionNSW, domain.JurisdictionVIC, domain.JurisdictionNT, "ZZ"} {
					p := domain.FinancialProfile{
						Deposit:         decimal.NewFromInt(deposit),
						AnnualIncome:    decimal.NewFromInt(income),
						MonthlyExpenses: decimal.NewFromInt(expenses),
						Dependents:      1,
						EmploymentType:  domain.EmploymentPartTime,
						Jurisdiction:    j,
					}
					res := aa.Analyze(p, endToEndTerms())
					name := fmt.Sprintf("deposit=%d income=%d expenses=%d %s", deposit, income, expenses, j)

					for _, v := range []decimal.Decimal{
						res.MaxLoanAmount, res.MaxPropertyPrice, res.MonthlyRepayment,
						res.StampDuty, res.TotalUpfrontCosts,
					} {
						assert.False(t, v.IsNegative(), name)
					}
					if res.MaxPropertyPrice.IsPositive() {
						assert.True(t, res.LoanToValueRatio.GreaterThanOrEqual(decimal.Zero), name)
						assert.True(t, res.LoanToValueRatio.LessThanOrEqual(decimal.NewFromInt(100)), name)
					}
					assert.NotEmpty(t, res.Recommendations, name)
				}
			}
		}
	}
}
