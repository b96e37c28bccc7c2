package ratesource

import (
	"context"
	"errors"
	"fmt"

	"github.com/homewise/affordability/internal/domain"
	"go.uber.org/zap"
)

var _ Resolver = &FallbackResolver{}

// FallbackResolver tries each resolver in order and returns the first quote.
type FallbackResolver struct {
	resolvers []Resolver
	logger    *zap.Logger
}

// NewFallbackResolver chains resolvers, most preferred first.
func NewFallbackResolver(logger *zap.Logger, resolvers ...Resolver) *FallbackResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackResolver{resolvers: resolvers, logger: logger}
}

func (f *FallbackResolver) CurrentCashRate(ctx context.Context) (domain.RateQuote, error) {
	var errs []error
	for i, r := range f.resolvers {
		quote, err := r.CurrentCashRate(ctx)
		if err == nil {
			return quote, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.RateQuote{}, ctxErr
		}
		f.logger.Warn("rate resolver failed, trying next", zap.Int("index", i), zap.Error(err))
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return domain.RateQuote{}, fmt.Errorf("%w: no resolvers configured", ErrRateUnavailable)
	}
	return domain.RateQuote{}, fmt.Errorf("%w: %w", ErrRateUnavailable, errors.Join(errs...))
}
