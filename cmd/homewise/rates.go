package main

import (
	"context"
	"time"

	"github.com/homewise/affordability/internal/config"
	"github.com/homewise/affordability/internal/ratesource"
	"go.uber.org/zap"
)

// rateStack is the resolver chain for a configuration: the static quote, or
// the RBA scraper behind a cache with the static quote as the last resort.
type rateStack struct {
	resolver ratesource.Resolver
	redis    *ratesource.RedisStore
}

func newRateStack(cfg config.ServerConfig, logger *zap.Logger) *rateStack {
	static := ratesource.NewStaticResolver(ratesource.DefaultStaticQuote())
	if cfg.RateSource != config.RateSourceRBA {
		return &rateStack{resolver: static}
	}

	s := &rateStack{}
	var store ratesource.QuoteStore
	if cfg.RedisAddr != "" {
		s.redis = ratesource.NewRedisStore(cfg.RedisAddr)
		store = s.redis
	} else {
		store = ratesource.NewMemoryStore(10 * time.Minute)
	}

	rba := ratesource.NewRBAResolver(cfg.RBAURL, nil, logger)
	cached := ratesource.NewCachingResolver(rba, store, cfg.RateCacheTTL, logger)
	s.resolver = ratesource.NewFallbackResolver(logger, cached, static)
	return s
}

// ping reports whether the shared cache is reachable; nil without one.
func (s *rateStack) ping(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Ping(ctx)
}

func (s *rateStack) Close() error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Close()
}
