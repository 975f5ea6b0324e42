package stooq

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KNICEX/stock-watcher/internal/service/quote"
	"github.com/stretchr/testify/assert"
)

func TestStooqSymbol(t *testing.T) {
	assert.Equal(t, "AAPL.US", stooqSymbol("AAPL"))
	assert.Equal(t, "RELIANCE.NS", stooqSymbol("RELIANCE.NS"))
}

func TestFetchPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "aapl.us", r.URL.Query().Get("s"))
		_, _ = w.Write([]byte("Symbol,Date,Time,Open,High,Low,Close,Volume\nAAPL.US,2026-08-31,22:00:08,231.0,233.4,229.3,232.14,40532200\n"))
	}))
	defer srv.Close()

	svc := NewService(srv.Client(), WithBaseURL(srv.URL))
	price, err := svc.FetchPrice(context.Background(), "AAPL")
	assert.NoError(t, err)
	assert.Equal(t, "232.14", price.String())
}

func TestFetchPriceNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Symbol,Date,Time,Open,High,Low,Close,Volume\nNOPE.US,N/D,N/D,N/D,N/D,N/D,N/D,N/D\n"))
	}))
	defer srv.Close()

	svc := NewService(srv.Client(), WithBaseURL(srv.URL))
	_, err := svc.FetchPrice(context.Background(), "NOPE")
	assert.ErrorIs(t, err, quote.ErrSymbolNotFound)
}
