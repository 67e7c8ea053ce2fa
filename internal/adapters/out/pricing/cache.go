// Package pricing serves the price board from a read-through cache over a ports.PriceFeed.
//
// Quotes are read for every supported asset at once. A failed read of any
// asset, or a missing feed, yields the static fallback board, which is never
// cached so the next request retries the oracle.
package pricing

import (
	"context"
	"sync"
	"time"

	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/core/ports"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const DefaultTTL = 30 * time.Second

var fallbackUSD = map[kernel.Asset]decimal.Decimal{
	kernel.AssetWBTC: decimal.NewFromInt(97500),
	kernel.AssetWETH: decimal.NewFromInt(3450),
	kernel.AssetUSDT: decimal.NewFromInt(1),
	kernel.AssetUSDC: decimal.NewFromInt(1),
}

var _ ports.PriceBoard = &Cache{}

type Option func(*Cache)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithTTL overrides DefaultTTL. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

type Cache struct {
	feed   ports.PriceFeed
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
	group  singleflight.Group

	mu        sync.RWMutex
	prices    []ports.Price
	fetchedAt time.Time
}

// NewCache builds the board. A nil feed always serves fallback prices.
func NewCache(feed ports.PriceFeed, logger *zap.Logger, opts ...Option) *Cache {
	c := &Cache{
		feed:   feed,
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: logger.With(zap.String("component", "price_cache")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Prices returns the cached board while it is fresh and refreshes it otherwise.
func (c *Cache) Prices(ctx context.Context) ([]ports.Price, error) {
	if cached, ok := c.fresh(); ok {
		return cached, nil
	}
	return c.Refresh(ctx)
}

// Refresh reads every feed regardless of freshness. Concurrent callers share one read.
func (c *Cache) Refresh(ctx context.Context) ([]ports.Price, error) {
	v, _, _ := c.group.Do("prices", func() (any, error) {
		return c.load(ctx), nil
	})
	return clonePrices(v.([]ports.Price)), nil
}

func (c *Cache) load(ctx context.Context) []ports.Price {
	if c.feed == nil {
		return c.fallback()
	}

	assets := kernel.SupportedAssets()
	prices := make([]ports.Price, len(assets))

	g, gctx := errgroup.WithContext(ctx)
	for i, asset := range assets {
		g.Go(func() error {
			p, err := c.feed.LatestPrice(gctx, asset)
			if err != nil {
				return err
			}
			prices[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.logger.Warn("oracle read failed, serving fallback prices", zap.Error(err))
		return c.fallback()
	}

	c.mu.Lock()
	c.prices = prices
	c.fetchedAt = c.now()
	c.mu.Unlock()

	return prices
}

func (c *Cache) fresh() ([]ports.Price, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.prices == nil || c.now().Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return clonePrices(c.prices), true
}

func (c *Cache) fallback() []ports.Price {
	now := c.now().UTC()
	assets := kernel.SupportedAssets()
	prices := make([]ports.Price, 0, len(assets))
	for _, asset := range assets {
		prices = append(prices, ports.Price{
			Asset:     asset,
			USD:       fallbackUSD[asset],
			UpdatedAt: now,
			Fallback:  true,
		})
	}
	return prices
}

func clonePrices(in []ports.Price) []ports.Price {
	out := make([]ports.Price, len(in))
	copy(out, in)
	return out
}
