package calculation

import (
	"github.com/homewise/affordability/internal/domain"
	"github.com/homewise/affordability/pkg/money"
	"github.com/shopspring/decimal"
)

// ServiceabilityEngine sizes the largest loan a profile can service at a
// stressed rate.
type ServiceabilityEngine struct {
	rules  domain.LendingRules
	logger Logger
}

// NewServiceabilityEngine creates a serviceability engine over the given rules.
func NewServiceabilityEngine(rules domain.LendingRules, logger Logger) *ServiceabilityEngine {
	return &ServiceabilityEngine{rules: rules, logger: loggerOrNop(logger)}
}

// MaxLoan returns the maximum loan amount, unrounded.
func (se *ServiceabilityEngine) MaxLoan(profile domain.FinancialProfile, baseAnnualRate decimal.Decimal, termYears int) decimal.Decimal {
	return se.Assess(profile, baseAnnualRate, termYears).MaxLoan
}

// Assess runs the serviceability steps and returns every intermediate value.
// When the monthly surplus is not positive the loan fields stay zero.
func (se *ServiceabilityEngine) Assess(profile domain.FinancialProfile, baseAnnualRate decimal.Decimal, termYears int) domain.Serviceability {
	r := se.rules
	s := domain.Serviceability{
		StressRate: baseAnnualRate.Add(r.StressBuffer),
	}

	s.MonthlyIncome = profile.AnnualIncome.Div(monthsPerYear).Add(profile.OtherIncome)
	s.EmploymentMultiplier = r.EmploymentMultiplier(profile.EmploymentType)
	s.AdjustedIncome = s.MonthlyIncome.Mul(s.EmploymentMultiplier)

	s.MinLivingExpenses = r.LivingExpenseBase.Add(r.LivingExpensePerDependent.Mul(decimal.NewFromInt(int64(profile.Dependents))))
	s.EffectiveExpenses = money.Max(profile.MonthlyExpenses, s.MinLivingExpenses)
	s.Commitments = s.EffectiveExpenses.Add(profile.ExistingDebts)

	s.Surplus = s.AdjustedIncome.Sub(s.Commitments)
	if !s.Surplus.IsPositive() {
		se.logger.Debugf("no serviceable surplus: adjusted income %s, commitments %s",
			s.AdjustedIncome.StringFixed(2), s.Commitments.StringFixed(2))
		return s
	}

	s.MaxMonthlyRepayment = money.Min(s.Surplus.Mul(r.SurplusRepaymentShare), s.AdjustedIncome.Mul(r.IncomeRepaymentShare))
	s.LoanFromServiceability = LoanFromRepayment(s.MaxMonthlyRepayment, s.StressRate, termYears)
	s.IncomeCap = profile.AnnualIncome.Mul(r.IncomeMultipleCap)
	s.MaxLoan = money.NonNegative(money.Min(s.LoanFromServiceability, s.IncomeCap))

	se.logger.Debugf("serviceability: surplus %s, stress rate %s, max repayment %s, loan %s, income cap %s",
		s.Surplus.StringFixed(2), s.StressRate.String(), s.MaxMonthlyRepayment.StringFixed(2),
		s.LoanFromServiceability.StringFixed(2), s.IncomeCap.StringFixed(2))
	return s
}
