package calculation

import (
	"fmt"

	"github.com/homewise/affordability/internal/domain"
	"github.com/homewise/affordability/pkg/money"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

const (
	msgSaveLargerDeposit = "Your LVR is %s%%. Consider saving a larger deposit to avoid Lenders Mortgage Insurance (LMI) and get better interest rates."
	msgHighLVR           = "With LVR above 90%, you may face higher interest rates and stricter lending criteria. Aim for at least 20% deposit if possible."
	msgHighDTI           = "Your debt-to-income ratio is relatively high. Consider reducing expenses or increasing income to improve borrowing capacity."
	msgFirstHomeBuyer    = "As a first home buyer, you may be eligible for government grants and stamp duty concessions. Check your state's first home buyer schemes."
	msgWidenSearch       = "Consider looking in outer suburbs or regional areas where property prices may be more affordable for your budget."
	msgStrongPosition    = "Your financial position looks strong. You have good borrowing capacity and flexibility in your property search."
)

// AffordabilityAnalyzer layers deposit, duty and upfront costs over the
// serviceability result.
type AffordabilityAnalyzer struct {
	rules          domain.LendingRules
	serviceability *ServiceabilityEngine
	duty           *StampDutyTable
	logger         Logger
}

// NewAffordabilityAnalyzer wires an analyzer from its collaborators.
func NewAffordabilityAnalyzer(rules domain.LendingRules, se *ServiceabilityEngine, duty *StampDutyTable, logger Logger) *AffordabilityAnalyzer {
	return &AffordabilityAnalyzer{rules: rules, serviceability: se, duty: duty, logger: loggerOrNop(logger)}
}

// Analyze produces the complete affordability result for a validated
// profile and loan terms.
func (aa *AffordabilityAnalyzer) Analyze(profile domain.FinancialProfile, terms domain.LoanTerms) domain.AffordabilityResult {
	result, _ := aa.analyze(profile, terms)
	return result
}

func (aa *AffordabilityAnalyzer) analyze(profile domain.FinancialProfile, terms domain.LoanTerms) (domain.AffordabilityResult, domain.Serviceability) {
	r := aa.rules
	svc := aa.serviceability.Assess(profile, terms.BaseAnnualRate, terms.TermYears)

	maxLoan := svc.MaxLoan
	maxPrice := maxLoan.Add(profile.Deposit)

	lvr := decimal.Zero
	if maxPrice.IsPositive() {
		lvr = maxLoan.Div(maxPrice).Mul(hundred)
	}

	repayment := RepaymentFromLoan(maxLoan, terms.BaseAnnualRate, terms.TermYears)
	stampDuty := aa.duty.DutyFor(profile.Jurisdiction, maxPrice, profile.IsFirstHomeBuyer)

	lmi := decimal.Zero
	if lvr.GreaterThan(r.LMIThresholdLVR) {
		lmi = maxLoan.Mul(r.LMIRate)
	}

	upfront := profile.Deposit.
		Add(stampDuty).
		Add(r.LegalFees).
		Add(r.BuildingInspection).
		Add(r.LoanApplicationFee).
		Add(lmi)

	// A nil ratio stands for +Inf: no income to service any repayment.
	var dti *decimal.Decimal
	if profile.AnnualIncome.IsPositive() {
		v := repayment.Mul(monthsPerYear).Div(profile.AnnualIncome)
		dti = &v
	}

	result := domain.AffordabilityResult{
		MaxLoanAmount:           money.Cents(maxLoan),
		MaxPropertyPrice:        money.Cents(maxPrice),
		MaxLoanAmountDisplay:    money.Thousands(maxLoan),
		MaxPropertyPriceDisplay: money.Thousands(maxPrice),
		MonthlyRepayment:        money.Cents(repayment),
		InterestRate:            terms.BaseAnnualRate,
		LoanToValueRatio:        lvr.Round(2),
		StampDuty:               money.Cents(stampDuty),
		TotalUpfrontCosts:       money.Cents(upfront),
		AffordabilityRating:     aa.rate(dti),
		Recommendations:         aa.recommend(profile, lvr, dti, maxPrice),
		Assumptions: domain.Assumptions{
			InterestRate:       terms.BaseAnnualRate,
			StressTestRate:     svc.StressRate,
			LoanTermYears:      terms.TermYears,
			LegalFees:          r.LegalFees,
			BuildingInspection: r.BuildingInspection,
			LoanApplicationFee: r.LoanApplicationFee,
			LMIRate:            r.LMIRate,
			LMI:                money.Cents(lmi),
		},
	}
	if dti != nil {
		rounded := dti.Round(4)
		result.DebtToIncomeRatio = &rounded
	}

	// A zero loan has a zero repayment, so the ratio reads as Excellent even
	// though nothing can be borrowed. Kept for compatibility with existing clients.
	if maxLoan.IsZero() && dti != nil {
		aa.logger.Warnf("zero serviceable loan rated %s from a zero repayment", result.AffordabilityRating)
	}
	return result, svc
}

func (aa *AffordabilityAnalyzer) rate(dti *decimal.Decimal) domain.AffordabilityRating {
	r := aa.rules
	switch {
	case dti == nil:
		return domain.RatingStretched
	case dti.LessThan(r.ExcellentBelow):
		return domain.RatingExcellent
	case dti.LessThan(r.GoodBelow):
		return domain.RatingGood
	case dti.LessThan(r.FairBelow):
		return domain.RatingFair
	default:
		return domain.RatingStretched
	}
}

// recommend evaluates every trigger in a fixed order and keeps all matches.
func (aa *AffordabilityAnalyzer) recommend(profile domain.FinancialProfile, lvr decimal.Decimal, dti *decimal.Decimal, maxPrice decimal.Decimal) []string {
	r := aa.rules
	var recs []string
	if lvr.GreaterThan(r.LMIThresholdLVR) {
		recs = append(recs, fmt.Sprintf(msgSaveLargerDeposit, lvr.StringFixed(1)))
	}
	if lvr.GreaterThan(r.HighLVRWarning) {
		recs = append(recs, msgHighLVR)
	}
	if dti == nil || dti.GreaterThan(r.HighDebtToIncome) {
		recs = append(recs, msgHighDTI)
	}
	if profile.IsFirstHomeBuyer {
		recs = append(recs, msgFirstHomeBuyer)
	}
	if maxPrice.LessThan(r.BudgetPriceCeiling) {
		recs = append(recs, msgWidenSearch)
	}
	if len(recs) == 0 {
		recs = append(recs, msgStrongPosition)
	}
	return recs
}
