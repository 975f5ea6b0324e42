package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KNICEX/stock-watcher/pkg/decimalx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// fakeProvider counts calls and serves a fixed price or error.
type fakeProvider struct {
	name  string
	price decimal.Decimal
	err   error
	calls int
}

func (p *fakeProvider) Name() string {
	return p.name
}

func (p *fakeProvider) FetchPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	p.calls++
	if p.err != nil {
		return decimal.Zero, p.err
	}
	return p.price, nil
}

func TestGatewayPrimarySuccess(t *testing.T) {
	primary := &fakeProvider{name: "primary", price: decimalx.MustFromString("123.45")}
	fallback := &fakeProvider{name: "fallback", price: decimalx.MustFromString("999")}
	g := NewGateway(primary, fallback)

	q, err := g.GetQuote(context.Background(), "AAPL")
	assert.NoError(t, err)
	assert.Equal(t, "AAPL", q.Symbol)
	assert.True(t, q.Price.Equal(decimalx.MustFromString("123.45")))
	assert.Equal(t, "primary", q.Source)
	assert.Equal(t, 0, fallback.calls)
}

func TestGatewayFallback(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("timeout")}
	fallback := &fakeProvider{name: "fallback", price: decimalx.MustFromString("50")}
	g := NewGateway(primary, fallback)

	q, err := g.GetQuote(context.Background(), "AAPL")
	assert.NoError(t, err)
	assert.Equal(t, "fallback", q.Source)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestGatewayBothFail(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("timeout")}
	fallback := &fakeProvider{name: "fallback", err: ErrSymbolNotFound}
	g := NewGateway(primary, fallback)

	_, err := g.GetQuote(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrQuoteUnavailable)
}

func TestGatewayNoFallback(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("timeout")}
	g := NewGateway(primary, nil)

	_, err := g.GetQuote(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrQuoteUnavailable)
}

func TestGatewayCacheHit(t *testing.T) {
	primary := &fakeProvider{name: "primary", price: decimalx.MustFromString("10")}
	g := NewGateway(primary, nil)

	_, err := g.GetQuote(context.Background(), "AAPL")
	assert.NoError(t, err)
	q, err := g.GetQuote(context.Background(), "AAPL")
	assert.NoError(t, err)

	// second lookup inside the TTL window never leaves the cache
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, "primary", q.Source)
}

func TestGatewayCacheExpiry(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }

	primary := &fakeProvider{name: "primary", price: decimalx.MustFromString("10")}
	g := NewGateway(primary, nil, WithCacheTTL(time.Minute), WithClock(clock))

	_, err := g.GetQuote(context.Background(), "AAPL")
	assert.NoError(t, err)

	now = now.Add(61 * time.Second)
	_, err = g.GetQuote(context.Background(), "AAPL")
	assert.NoError(t, err)
	assert.Equal(t, 2, primary.calls)
}

func TestGatewayCachePerSymbol(t *testing.T) {
	primary := &fakeProvider{name: "primary", price: decimalx.MustFromString("10")}
	g := NewGateway(primary, nil)

	_, _ = g.GetQuote(context.Background(), "AAPL")
	_, _ = g.GetQuote(context.Background(), "MSFT")
	assert.Equal(t, 2, primary.calls)
}

func TestGatewayFailedLookupNotCached(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("down")}
	g := NewGateway(primary, nil)

	_, err := g.GetQuote(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrQuoteUnavailable)

	primary.err = nil
	primary.price = decimalx.MustFromString("42")
	q, err := g.GetQuote(context.Background(), "AAPL")
	assert.NoError(t, err)
	assert.True(t, q.Price.Equal(decimalx.MustFromString("42")))
}
