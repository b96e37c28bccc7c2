package ratesource

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/homewise/affordability/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// countingResolver returns the default quote and counts calls.
func countingResolver(calls *atomic.Int32) Resolver {
	return ResolverFunc(func(ctx context.Context) (domain.RateQuote, error) {
		calls.Add(1)
		return DefaultStaticQuote(), nil
	})
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (domain.RateQuote, bool, error) {
	return domain.RateQuote{}, false, errors.New("store offline")
}

func (brokenStore) Set(context.Context, string, domain.RateQuote, time.Duration) error {
	return errors.New("store offline")
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	_, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "k", DefaultStaticQuote(), time.Hour))
	q, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "static", q.Source)

	require.NoError(t, store.Set(ctx, "short", DefaultStaticQuote(), time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	_, found, _ = store.Get(ctx, "short")
	assert.False(t, found)
}

func TestCachingResolver_ServesFromCache(t *testing.T) {
	var calls atomic.Int32
	r := NewCachingResolver(countingResolver(&calls), NewMemoryStore(time.Minute), time.Hour, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		q, err := r.CurrentCashRate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "static", q.Source)
	}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.CurrentCashRate(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())
}

func TestCachingResolver_StoreFailureFallsThrough(t *testing.T) {
	var calls atomic.Int32
	core, logs := observer.New(zapcore.WarnLevel)
	r := NewCachingResolver(countingResolver(&calls), brokenStore{}, time.Hour, zap.New(core))

	q, err := r.CurrentCashRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "static", q.Source)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, logs.FilterMessage("rate cache read failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("rate cache write failed").Len())
}

func TestCachingResolver_DoesNotCacheErrors(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	failing := ResolverFunc(func(context.Context) (domain.RateQuote, error) {
		return domain.RateQuote{}, ErrRateUnavailable
	})
	r := NewCachingResolver(failing, store, time.Hour, nil)

	_, err := r.CurrentCashRate(context.Background())
	assert.ErrorIs(t, err, ErrRateUnavailable)
	_, found, _ := store.Get(context.Background(), DefaultCacheKey)
	assert.False(t, found)
}
