package ioc

import (
	"net/http"
	"time"

	"github.com/KNICEX/stock-watcher/internal/service/quote"
	binancequote "github.com/KNICEX/stock-watcher/internal/service/quote/binance"
	"github.com/KNICEX/stock-watcher/internal/service/quote/stooq"
	"github.com/KNICEX/stock-watcher/internal/service/quote/yahoo"
	"github.com/spf13/viper"
)

// InitQuoteService builds the price gateway: yahoo with stooq fallback for
// equities, binance for crypto pairs, all behind a market router.
func InitQuoteService() quote.QuoteService {
	type Config struct {
		CacheTTLSeconds    int  `mapstructure:"cache_ttl_seconds"`
		CallTimeoutSeconds int  `mapstructure:"call_timeout_seconds"`
		EnableCrypto       bool `mapstructure:"enable_crypto"`
	}

	cfg := Config{
		CacheTTLSeconds:    60,
		CallTimeoutSeconds: 5,
		EnableCrypto:       true,
	}
	if err := viper.UnmarshalKey("quote", &cfg); err != nil {
		panic(err)
	}

	opts := []quote.GatewayOption{
		quote.WithCacheTTL(time.Duration(cfg.CacheTTLSeconds) * time.Second),
		quote.WithCallTimeout(time.Duration(cfg.CallTimeoutSeconds) * time.Second),
	}

	httpCli := &http.Client{Timeout: 10 * time.Second}
	equity := quote.NewGateway(yahoo.NewService(httpCli), stooq.NewService(httpCli), opts...)

	var crypto quote.QuoteService
	if cfg.EnableCrypto {
		crypto = quote.NewGateway(binancequote.NewService(InitBinanceCli()), nil, opts...)
	}
	return quote.NewMarketRouter(equity, crypto)
}
