// Package ratesource supplies the current policy cash rate that loan rates
// are derived from.
package ratesource

import (
	"context"
	"errors"

	"github.com/homewise/affordability/internal/domain"
)

// ErrRateUnavailable is returned when no source could supply a rate.
var ErrRateUnavailable = errors.New("interest rate unavailable")

// Resolver looks up the current cash rate. Implementations honour ctx
// cancellation and do not retry internally.
type Resolver interface {
	CurrentCashRate(ctx context.Context) (domain.RateQuote, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context) (domain.RateQuote, error)

func (f ResolverFunc) CurrentCashRate(ctx context.Context) (domain.RateQuote, error) {
	return f(ctx)
}
