package ratesource

import (
	"context"
	"errors"
	"testing"

	"github.com/homewise/affordability/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failingResolver(msg string) Resolver {
	return ResolverFunc(func(context.Context) (domain.RateQuote, error) {
		return domain.RateQuote{}, errors.New(msg)
	})
}

func TestFallbackResolver(t *testing.T) {
	t.Run("first success wins", func(t *testing.T) {
		r := NewFallbackResolver(nil, failingResolver("scrape failed"), NewStaticResolver(DefaultStaticQuote()))
		q, err := r.CurrentCashRate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "static", q.Source)
	})

	t.Run("all fail joins errors", func(t *testing.T) {
		r := NewFallbackResolver(nil, failingResolver("first down"), failingResolver("second down"))
		_, err := r.CurrentCashRate(context.Background())
		assert.ErrorIs(t, err, ErrRateUnavailable)
		assert.ErrorContains(t, err, "first down")
		assert.ErrorContains(t, err, "second down")
	})

	t.Run("no resolvers", func(t *testing.T) {
		_, err := NewFallbackResolver(nil).CurrentCashRate(context.Background())
		assert.ErrorIs(t, err, ErrRateUnavailable)
	})

	t.Run("cancelled context stops the chain", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r := NewFallbackResolver(nil, NewStaticResolver(DefaultStaticQuote()))
		_, err := r.CurrentCashRate(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStaticResolver(t *testing.T) {
	q, err := NewStaticResolver(DefaultStaticQuote()).CurrentCashRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "4.35", q.CashRatePercent.String())
	assert.Equal(t, "2024-11-05", q.EffectiveDate.String())
	assert.False(t, q.RetrievedAt.IsZero())
	assert.Equal(t, "0.0685", q.LoanRate(domain.DefaultLoanRateMargin).String())
}
