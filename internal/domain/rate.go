package domain

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// DefaultLoanRateMargin is added to the policy cash rate to approximate a
// typical owner-occupier variable home loan rate (2.5 percentage points).
var DefaultLoanRateMargin = decimal.NewFromFloat(0.025)

// RateQuote is a central bank cash rate observation.
type RateQuote struct {
	CashRatePercent decimal.Decimal `json:"cash_rate_percent" yaml:"cash_rate_percent"` // e.g. 4.35
	EffectiveDate   civil.Date      `json:"effective_date" yaml:"effective_date"`
	Source          string          `json:"source" yaml:"source"`
	RetrievedAt     time.Time       `json:"retrieved_at" yaml:"retrieved_at"`
}

// LoanRate converts the percentage cash rate into a loan rate fraction:
// cash/100 + margin.
func (q RateQuote) LoanRate(margin decimal.Decimal) decimal.Decimal {
	return q.CashRatePercent.Div(decimal.NewFromInt(100)).Add(margin)
}
