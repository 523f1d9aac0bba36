package cache

import (
	"context"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
	"golang.org/x/sync/singleflight"
)

// Cache is a key/value store with per-entry TTL.
type Cache interface {
	Get(ctx context.Context, key string) (any, bool)
	Set(ctx context.Context, key string, value any, ttl time.Duration) bool
	Delete(ctx context.Context, key string)
	GetOrSet(ctx context.Context, key string, ttl time.Duration, loader func() (any, error)) (any, error)
	Keys(ctx context.Context, pattern string) ([]string, error)
}

var _ Cache = (*RistrettoCache)(nil)

// RistrettoCache stores values in ristretto and keeps a key index on the side
// so entries can be enumerated. Index entries evicted by ristretto are pruned
// lazily by Keys.
type RistrettoCache struct {
	store       *ristretto.Cache
	singleGroup singleflight.Group
	config      *CacheConfig
	keys        sync.Map
}

type CacheConfig struct {
	// MaxCost is the total cost budget; every entry costs 1.
	MaxCost     int64
	NumCounters int64
	BufferItems int64
}

func DefaultConfig() *CacheConfig {
	return &CacheConfig{
		MaxCost:     1 << 16,
		NumCounters: 1 << 20,
		BufferItems: 64,
	}
}

func New(config *CacheConfig) (*RistrettoCache, error) {
	if config == nil {
		config = DefaultConfig()
	}

	cache := &RistrettoCache{config: config}
	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: config.NumCounters,
		MaxCost:     config.MaxCost,
		BufferItems: config.BufferItems,
	})
	if err != nil {
		return nil, err
	}

	cache.store = store
	return cache, nil
}

func (c *RistrettoCache) Get(ctx context.Context, key string) (any, bool) {
	if ctx.Err() != nil {
		return nil, false
	}
	return c.store.Get(key)
}

// Set writes the value and waits for ristretto to apply it, so a Get issued
// right after observes it. A zero ttl never expires.
func (c *RistrettoCache) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !c.store.SetWithTTL(key, value, 1, ttl) {
		return false
	}
	c.store.Wait()

	var deadline time.Time
	if ttl > 0 {
		deadline = time.Now().Add(ttl)
	}
	c.keys.Store(key, deadline)
	return true
}

func (c *RistrettoCache) Delete(ctx context.Context, key string) {
	if ctx.Err() != nil {
		return
	}
	c.store.Del(key)
	c.keys.Delete(key)
}

// GetOrSet loads missing keys once per key even under concurrent callers.
func (c *RistrettoCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, loader func() (any, error)) (any, error) {
	if value, found := c.Get(ctx, key); found {
		return value, nil
	}

	value, err, _ := c.singleGroup.Do(key, func() (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if value, found := c.Get(ctx, key); found {
			return value, nil
		}

		value, err := loader()
		if err != nil {
			return nil, err
		}
		c.Set(ctx, key, value, ttl)
		return value, nil
	})

	return value, err
}

// Keys returns the live keys matching a path.Match pattern, sorted.
func (c *RistrettoCache) Keys(ctx context.Context, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	keys := make([]string, 0)
	var matchErr error
	c.keys.Range(func(k, v any) bool {
		key := k.(string)
		deadline := v.(time.Time)
		if !deadline.IsZero() && !now.Before(deadline) {
			c.keys.Delete(key)
			return true
		}
		if _, found := c.store.Get(key); !found {
			c.keys.Delete(key)
			return true
		}
		ok, err := path.Match(pattern, key)
		if err != nil {
			matchErr = err
			return false
		}
		if ok {
			keys = append(keys, key)
		}
		return true
	})
	if matchErr != nil {
		return nil, matchErr
	}

	sort.Strings(keys)
	return keys, nil
}

func (c *RistrettoCache) Close() {
	c.store.Close()
}
