package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/contactkeval/option-leverage/internal/logger"
)

// spotTTL is deliberately short; the underlying price moves faster than
// the listed chain does.
const spotTTL = time.Minute

// cachedProvider decorates a Provider with a Redis cache. A nil client
// disables caching and every call passes straight through.
type cachedProvider struct {
	inner Provider
	rdb   *redis.Client
	ttl   time.Duration
}

// NewCachedProvider wraps prov with Redis caching for expirations,
// chains, and spot prices. ttl applies to expirations and chains.
func NewCachedProvider(prov Provider, rdb *redis.Client, ttl time.Duration) Provider {
	return &cachedProvider{inner: prov, rdb: rdb, ttl: ttl}
}

func (cachedProv *cachedProvider) Secondary() Provider {
	return cachedProv.inner
}

func (cachedProv *cachedProvider) GetExpirations(ctx context.Context, underlying string) ([]time.Time, error) {
	key := fmt.Sprintf("optlev:expirations:%s", underlying)

	var cached []time.Time
	if cachedProv.get(ctx, key, &cached) {
		return cached, nil
	}

	out, err := cachedProv.inner.GetExpirations(ctx, underlying)
	if err != nil {
		return nil, err
	}

	cachedProv.set(ctx, key, out, cachedProv.ttl)
	return out, nil
}

func (cachedProv *cachedProvider) GetChain(ctx context.Context, underlying string, expiry time.Time) ([]Quote, error) {
	key := fmt.Sprintf("optlev:chain:%s:%s", underlying, expiry.Format("2006-01-02"))

	var cached []Quote
	if cachedProv.get(ctx, key, &cached) {
		return cached, nil
	}

	out, err := cachedProv.inner.GetChain(ctx, underlying, expiry)
	if err != nil {
		return nil, err
	}

	cachedProv.set(ctx, key, out, cachedProv.ttl)
	return out, nil
}

func (cachedProv *cachedProvider) GetSpotPrice(ctx context.Context, underlying string) (float64, error) {
	key := fmt.Sprintf("optlev:spot:%s", underlying)

	var cached float64
	if cachedProv.get(ctx, key, &cached) {
		return cached, nil
	}

	out, err := cachedProv.inner.GetSpotPrice(ctx, underlying)
	if err != nil {
		return 0, err
	}

	cachedProv.set(ctx, key, out, spotTTL)
	return out, nil
}

// get reports whether key was found and decoded. Cache failures are
// treated as misses so a broken Redis never blocks a request.
func (cachedProv *cachedProvider) get(ctx context.Context, key string, dest any) bool {
	if cachedProv.rdb == nil {
		return false
	}

	data, err := cachedProv.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false // key not found is not an error
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logger.Debugf("cache decode %s: %v", key, err)
		return false
	}

	logger.Tracef("cache hit %s", key)
	return true
}

func (cachedProv *cachedProvider) set(ctx context.Context, key string, value any, ttl time.Duration) {
	if cachedProv.rdb == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := cachedProv.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Debugf("cache store %s: %v", key, err)
	}
}
