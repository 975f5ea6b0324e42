package stooq

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KNICEX/stock-watcher/internal/service/quote"
	"github.com/shopspring/decimal"
)

var _ quote.Provider = (*Service)(nil)

// Service fetches current prices from the stooq.com CSV endpoint.
// Used as the equity fallback when yahoo is down or rate-limited.
type Service struct {
	cli     *http.Client
	baseURL string
}

type Option func(svc *Service)

func WithBaseURL(baseURL string) Option {
	return func(svc *Service) {
		svc.baseURL = baseURL
	}
}

func NewService(cli *http.Client, opts ...Option) *Service {
	if cli == nil {
		cli = &http.Client{Timeout: 10 * time.Second}
	}
	svc := &Service{
		cli:     cli,
		baseURL: "https://stooq.com",
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (svc *Service) Name() string {
	return "stooq"
}

// stooqSymbol converts our normalized ticker to stooq's format.
// US tickers need a ".US" suffix, Indian suffixes are not supported upstream
// and pass through unchanged (stooq answers N/D for them).
func stooqSymbol(symbol string) string {
	if !strings.Contains(symbol, ".") {
		return symbol + ".US"
	}
	return symbol
}

func (svc *Service) FetchPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	u := fmt.Sprintf("%s/q/l/?s=%s&f=sd2t2ohlcv&h&e=csv", svc.baseURL, url.QueryEscape(strings.ToLower(stooqSymbol(symbol))))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return decimal.Zero, err
	}

	resp, err := svc.cli.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("stooq fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("stooq: status %d", resp.StatusCode)
	}

	records, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		return decimal.Zero, fmt.Errorf("stooq decode: %w", err)
	}
	// header + one data row: Symbol,Date,Time,Open,High,Low,Close,Volume
	if len(records) < 2 || len(records[1]) < 7 {
		return decimal.Zero, quote.ErrSymbolNotFound
	}

	closePrice := records[1][6]
	if closePrice == "N/D" {
		return decimal.Zero, quote.ErrSymbolNotFound
	}
	price, err := decimal.NewFromString(closePrice)
	if err != nil {
		return decimal.Zero, fmt.Errorf("stooq parse price %q: %w", closePrice, err)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("stooq: non-positive price for %s", symbol)
	}
	return price, nil
}
