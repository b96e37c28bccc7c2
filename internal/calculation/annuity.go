package calculation

import (
	"math"

	"github.com/shopspring/decimal"
)

// Annuity factors are computed in float64 and applied to decimal amounts,
// the same split the amortization schedule uses: decimal has no fractional
// power, and the log-domain form below stays finite for n up to 600 and
// monthly rates up to 0.5/12.

var monthsPerYear = decimal.NewFromInt(12)

// monthlyRate returns annualRate/12 as a float and the number of payments.
func monthlyRate(annualRate decimal.Decimal, termYears int) (float64, int) {
	return annualRate.Div(monthsPerYear).InexactFloat64(), termYears * 12
}

// discountedFraction returns 1 - (1+r)^-n.
func discountedFraction(r float64, n int) float64 {
	return -math.Expm1(-float64(n) * math.Log1p(r))
}

// LoanFromRepayment is the present value of an ordinary annuity: the loan a
// fixed monthly repayment services over the term at the given annual rate.
func LoanFromRepayment(monthlyRepayment, annualRate decimal.Decimal, termYears int) decimal.Decimal {
	r, n := monthlyRate(annualRate, termYears)
	if n <= 0 {
		return decimal.Zero
	}
	if r == 0 {
		return monthlyRepayment.Mul(decimal.NewFromInt(int64(n)))
	}
	factor := discountedFraction(r, n) / r
	return monthlyRepayment.Mul(decimal.NewFromFloat(factor))
}

// RepaymentFromLoan is the level monthly repayment that amortizes the loan
// over the term: P * r * (1+r)^n / ((1+r)^n - 1).
func RepaymentFromLoan(loanAmount, annualRate decimal.Decimal, termYears int) decimal.Decimal {
	r, n := monthlyRate(annualRate, termYears)
	if n <= 0 {
		return decimal.Zero
	}
	if r == 0 {
		return loanAmount.Div(decimal.NewFromInt(int64(n)))
	}
	// r*(1+r)^n / ((1+r)^n - 1) == r / (1 - (1+r)^-n)
	factor := r / discountedFraction(r, n)
	return loanAmount.Mul(decimal.NewFromFloat(factor))
}
