package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/KNICEX/stock-watcher/internal/service/quote"
	"github.com/shopspring/decimal"
)

var _ quote.Provider = (*Service)(nil)

// Service fetches current prices from the Yahoo Finance chart API.
// Symbols keep their market suffix (.NS/.BO for India, bare for US).
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
		baseURL: "https://query1.finance.yahoo.com",
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (svc *Service) Name() string {
	return "yahoo"
}

type chartResp struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice json.Number `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (svc *Service) FetchPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", svc.baseURL, url.PathEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return decimal.Zero, err
	}
	// yahoo rejects requests without a browser UA
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := svc.cli.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return decimal.Zero, quote.ErrSymbolNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart chartResp
	if err = json.Unmarshal(body, &chart); err != nil {
		return decimal.Zero, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return decimal.Zero, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return decimal.Zero, quote.ErrSymbolNotFound
	}

	price, err := decimal.NewFromString(chart.Chart.Result[0].Meta.RegularMarketPrice.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("yahoo parse price: %w", err)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("yahoo: non-positive price for %s", symbol)
	}
	return price, nil
}
