package ratesource

import (
	"context"
	"time"

	"github.com/homewise/affordability/internal/domain"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// DefaultCacheKey is the key the current cash rate quote is stored under.
const DefaultCacheKey = "homewise:cash-rate"

// QuoteStore persists a quote for a limited time.
type QuoteStore interface {
	// Get returns found=false, with a nil error, on a miss.
	Get(ctx context.Context, key string) (quote domain.RateQuote, found bool, err error)
	Set(ctx context.Context, key string, quote domain.RateQuote, ttl time.Duration) error
}

// MemoryStore is an in-process QuoteStore.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore creates a store that purges expired entries every cleanup interval.
func NewMemoryStore(cleanup time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(cache.NoExpiration, cleanup)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (domain.RateQuote, bool, error) {
	v, ok := m.cache.Get(key)
	if !ok {
		return domain.RateQuote{}, false, nil
	}
	return v.(domain.RateQuote), true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, quote domain.RateQuote, ttl time.Duration) error {
	m.cache.Set(key, quote, ttl)
	return nil
}

var _ Resolver = &CachingResolver{}

// CachingResolver serves quotes from a store and refreshes from the wrapped
// resolver on a miss. Store failures are logged and never fail the lookup.
type CachingResolver struct {
	next   Resolver
	store  QuoteStore
	ttl    time.Duration
	key    string
	logger *zap.Logger
}

// NewCachingResolver wraps next with store, caching quotes for ttl.
func NewCachingResolver(next Resolver, store QuoteStore, ttl time.Duration, logger *zap.Logger) *CachingResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachingResolver{next: next, store: store, ttl: ttl, key: DefaultCacheKey, logger: logger}
}

func (c *CachingResolver) CurrentCashRate(ctx context.Context) (domain.RateQuote, error) {
	quote, found, err := c.store.Get(ctx, c.key)
	switch {
	case err != nil:
		c.logger.Warn("rate cache read failed", zap.String("key", c.key), zap.Error(err))
	case found:
		return quote, nil
	}

	quote, err = c.next.CurrentCashRate(ctx)
	if err != nil {
		return domain.RateQuote{}, err
	}

	if err := c.store.Set(ctx, c.key, quote, c.ttl); err != nil {
		c.logger.Warn("rate cache write failed", zap.String("key", c.key), zap.Error(err))
	}
	return quote, nil
}
