package quote

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultCacheTTL    = time.Minute
	DefaultCallTimeout = 5 * time.Second
)

var _ QuoteService = (*Gateway)(nil)

// Gateway 两级行情网关: 缓存 -> 主数据源 -> 备用数据源
type Gateway struct {
	primary  Provider
	fallback Provider

	cache       *quoteCache
	callTimeout time.Duration
	now         func() time.Time
}

type GatewayOption func(g *Gateway)

func WithCacheTTL(ttl time.Duration) GatewayOption {
	return func(g *Gateway) {
		g.cache = newQuoteCache(ttl)
	}
}

func WithCallTimeout(timeout time.Duration) GatewayOption {
	return func(g *Gateway) {
		g.callTimeout = timeout
	}
}

func WithClock(now func() time.Time) GatewayOption {
	return func(g *Gateway) {
		g.now = now
	}
}

// NewGateway creates a gateway over a primary provider and an optional fallback.
func NewGateway(primary Provider, fallback Provider, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		primary:     primary,
		fallback:    fallback,
		cache:       newQuoteCache(DefaultCacheTTL),
		callTimeout: DefaultCallTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) GetQuote(ctx context.Context, symbol string) (Quote, error) {
	if q, ok := g.cache.Get(symbol, g.now()); ok {
		return q, nil
	}

	if q, err := g.tryProvider(ctx, g.primary, symbol); err == nil {
		g.cache.Set(q)
		return q, nil
	} else {
		slog.Warn("primary provider failed", "provider", g.primary.Name(), "symbol", symbol, "error", err)
	}

	if g.fallback == nil {
		return Quote{}, ErrQuoteUnavailable
	}

	if q, err := g.tryProvider(ctx, g.fallback, symbol); err == nil {
		g.cache.Set(q)
		return q, nil
	} else {
		slog.Error("fallback provider failed", "provider", g.fallback.Name(), "symbol", symbol, "error", err)
	}

	return Quote{}, ErrQuoteUnavailable
}

func (g *Gateway) tryProvider(ctx context.Context, p Provider, symbol string) (Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()

	price, err := p.FetchPrice(ctx, symbol)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Symbol:    symbol,
		Price:     price,
		Source:    p.Name(),
		FetchedAt: g.now(),
	}, nil
}
