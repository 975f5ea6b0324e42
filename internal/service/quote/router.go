package quote

import (
	"context"
	"strings"
)

var _ QuoteService = (*MarketRouter)(nil)

// MarketRouter routes symbols to a per-market QuoteService.
// Crypto pairs (xxxUSDT) go to the crypto gateway, everything else to equity.
type MarketRouter struct {
	equity QuoteService
	crypto QuoteService
}

func NewMarketRouter(equity QuoteService, crypto QuoteService) *MarketRouter {
	return &MarketRouter{
		equity: equity,
		crypto: crypto,
	}
}

func (r *MarketRouter) GetQuote(ctx context.Context, symbol string) (Quote, error) {
	if r.crypto != nil && IsCryptoPair(symbol) {
		return r.crypto.GetQuote(ctx, symbol)
	}
	return r.equity.GetQuote(ctx, symbol)
}

// IsCryptoPair reports whether the symbol is a USDT trading pair.
func IsCryptoPair(symbol string) bool {
	return strings.HasSuffix(symbol, "USDT") && len(symbol) > len("USDT")
}

// NormalizeSymbol uppercases and trims a user-supplied ticker.
// Market suffixes (.NS/.BO) are kept as-is, the providers understand them.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
