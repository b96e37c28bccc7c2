package calculation

import (
	"fmt"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoanFromRepayment(t *testing.T) {
	tests := []struct {
		name      string
		repayment float64
		rate      float64
		term      int
		expected  float64
		delta     float64
	}{
		{"stressed 30 year", 2125, 0.0985, 30, 245237, 50},
		{"zero rate", 1000, 0, 30, 360000, 0},
		{"one year at 12%", 1000, 0.12, 1, 11255.08, 0.01},
		{"fifty year term at 50%", 1000, 0.5, 50, 24000, 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LoanFromRepayment(decimal.NewFromFloat(tt.repayment), decimal.NewFromFloat(tt.rate), tt.term)
			assert.InDelta(t, tt.expected, got.InexactFloat64(), tt.delta)
		})
	}
}

func TestRepaymentFromLoan(t *testing.T) {
	tests := []struct {
		name     string
		loan     float64
		rate     float64
		term     int
		expected float64
		delta    float64
	}{
		{"actual rate 30 year", 245237, 0.0685, 30, 1607, 2},
		{"zero rate", 360000, 0, 30, 1000, 0},
		{"zero loan", 0, 0.0685, 30, 0, 0},
		{"fifty year term at 50%", 24000, 0.5, 50, 1000, 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RepaymentFromLoan(decimal.NewFromFloat(tt.loan), decimal.NewFromFloat(tt.rate), tt.term)
			assert.InDelta(t, tt.expected, got.InexactFloat64(), tt.delta)
		})
	}
}

func TestAnnuityRoundTrip(t *testing.T) {
	repayment := decimal.NewFromInt(2125)
	for _, rate := range []float64{0.0001, 0.01, 0.0435, 0.0685, 0.0985, 0.15, 0.3} {
		for term := 1; term <= 40; term++ {
			t.Run(fmt.Sprintf("rate %.4f term %d", rate, term), func(t *testing.T) {
				r := decimal.NewFromFloat(rate)
				loan := LoanFromRepayment(repayment, r, term)
				back := RepaymentFromLoan(loan, r, term)
				rel := math.Abs(back.InexactFloat64()-2125) / 2125
				assert.Less(t, rel, 1e-6)
			})
		}
	}
}

func TestAnnuityNonPositiveTerm(t *testing.T) {
	assert.True(t, LoanFromRepayment(decimal.NewFromInt(1000), decimal.NewFromFloat(0.05), 0).IsZero())
	assert.True(t, RepaymentFromLoan(decimal.NewFromInt(1000), decimal.NewFromFloat(0.05), 0).IsZero())
}
