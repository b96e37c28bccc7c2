package ratesource

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/homewise/affordability/internal/domain"
	"github.com/shopspring/decimal"
)

var _ Resolver = &StaticResolver{}

// StaticResolver always returns the same quote.
type StaticResolver struct {
	quote domain.RateQuote
	now   func() time.Time
}

// NewStaticResolver returns a resolver for a fixed quote.
func NewStaticResolver(quote domain.RateQuote) *StaticResolver {
	return &StaticResolver{quote: quote, now: time.Now}
}

// DefaultStaticQuote is the cash rate target set on 5 November 2024.
func DefaultStaticQuote() domain.RateQuote {
	return domain.RateQuote{
		CashRatePercent: decimal.NewFromFloat(4.35),
		EffectiveDate:   civil.Date{Year: 2024, Month: time.November, Day: 5},
		Source:          "static",
	}
}

func (s *StaticResolver) CurrentCashRate(ctx context.Context) (domain.RateQuote, error) {
	if err := ctx.Err(); err != nil {
		return domain.RateQuote{}, err
	}
	q := s.quote
	q.RetrievedAt = s.now()
	return q, nil
}
