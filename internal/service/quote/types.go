package quote

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrQuoteUnavailable all providers failed for the symbol
	ErrQuoteUnavailable = errors.New("quote unavailable")
	// ErrSymbolNotFound the provider does not know the symbol
	ErrSymbolNotFound = errors.New("symbol not found")
)

// Quote 某个时刻的行情快照
type Quote struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Source    string          `json:"source"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// QuoteService resolves a normalized symbol to its current price.
type QuoteService interface {
	GetQuote(ctx context.Context, symbol string) (Quote, error)
}

// Provider is a single upstream price source.
type Provider interface {
	Name() string
	FetchPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}
