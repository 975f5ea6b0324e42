package binance

import (
	"context"

	"github.com/KNICEX/stock-watcher/internal/service/quote"
	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

var _ quote.Provider = (*Service)(nil)

// Service resolves crypto pairs (xxxUSDT) through binance spot prices.
type Service struct {
	cli *binance.Client
}

func NewService(cli *binance.Client) *Service {
	return &Service{
		cli: cli,
	}
}

func (svc *Service) Name() string {
	return "binance"
}

func (svc *Service) FetchPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	prices, err := svc.cli.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if len(prices) == 0 {
		return decimal.Zero, quote.ErrSymbolNotFound
	}
	return decimal.NewFromString(prices[0].Price)
}
