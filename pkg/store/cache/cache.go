package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/eco-tools/cpi-pulse/pkg/models/store"
	"github.com/eco-tools/cpi-pulse/pkg/store/prices"
)

// Store memoizes raw warehouse query results by query parameters with a fixed
// expiry. It is the only memoization in the system; the engine downstream
// stays pure and cache-free.
type Store struct {
	inner prices.Store
	ttl   time.Duration
	now   func() time.Time

	mu      sync.RWMutex
	entries map[string]entry
}

type entry struct {
	value     any
	expiresAt time.Time
}

// NewStore wraps a prices.Store with a TTL cache.
func NewStore(inner prices.Store, ttl time.Duration) *Store {
	return &Store{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (c *Store) ListPriceAttributes(ctx context.Context) ([]store.PriceAttribute, error) {
	key := "attributes"
	if cached, ok := c.get(key); ok {
		return cached.([]store.PriceAttribute), nil
	}

	attrs, err := c.inner.ListPriceAttributes(ctx)
	if err != nil {
		return nil, err
	}
	c.put(key, attrs)
	return attrs, nil
}

func (c *Store) GetTimeseries(
	ctx context.Context,
	variables []string,
	start, end time.Time,
) ([]store.PriceRecord, error) {
	key := fmt.Sprintf("timeseries|%s|%s|%s",
		strings.Join(variables, ","),
		start.Format(time.DateOnly),
		end.Format(time.DateOnly))
	if cached, ok := c.get(key); ok {
		return cached.([]store.PriceRecord), nil
	}

	records, err := c.inner.GetTimeseries(ctx, variables, start, end)
	if err != nil {
		return nil, err
	}
	c.put(key, records)
	return records, nil
}

func (c *Store) GetContributionTimeseries(
	ctx context.Context,
	products []string,
	start, end time.Time,
	frequency string,
) ([]store.PriceRecord, error) {
	key := fmt.Sprintf("contribution|%s|%s|%s|%s",
		strings.Join(products, ","),
		start.Format(time.DateOnly),
		end.Format(time.DateOnly),
		frequency)
	if cached, ok := c.get(key); ok {
		return cached.([]store.PriceRecord), nil
	}

	records, err := c.inner.GetContributionTimeseries(ctx, products, start, end, frequency)
	if err != nil {
		return nil, err
	}
	c.put(key, records)
	return records, nil
}

func (c *Store) get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (c *Store) put(key string, value any) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}
