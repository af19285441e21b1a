package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"pricenode/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestVenueClient_TradablePairs_Success(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"symbols": [
            {"base": "btc", "counter": "usd"},
            {"base": "XMR", "counter": "BTC"}
        ]}`))
	}))
	t.Cleanup(srv.Close)

	c, err := NewVenueClient(srv.Client(), srv.URL+"/", 0)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	pairs, err := c.TradablePairs(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/symbols", gotPath)
	require.Equal(t, []domain.CurrencyPair{
		{Base: "BTC", Counter: "USD"},
		{Base: "XMR", Counter: "BTC"},
	}, pairs)
}

func TestVenueClient_TradablePairs_ServedFromCacheWithinTTL(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"symbols": [{"base": "BTC", "counter": "USD"}]}`))
	}))
	t.Cleanup(srv.Close)

	c, err := NewVenueClient(srv.Client(), srv.URL, time.Minute)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	first, err := c.TradablePairs(context.Background())
	require.NoError(t, err)
	second, err := c.TradablePairs(context.Background())
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, int32(1), calls.Load())
}

func TestVenueClient_Tickers_SuccessWithFilter(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("pairs")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"tickers": [
            {"base": "BTC", "counter": "USD", "last": "50000.5", "timestamp": 1714560000000},
            {"base": "DAI", "counter": "BTC", "timestamp": 1714560000000}
        ]}`))
	}))
	t.Cleanup(srv.Close)

	c, err := NewVenueClient(srv.Client(), srv.URL, 0)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	tickers, err := c.Tickers(context.Background(), []domain.CurrencyPair{
		{Base: "BTC", Counter: "USD"},
		{Base: "DAI", Counter: "BTC"},
	})
	require.NoError(t, err)
	require.Equal(t, "BTC-USD,DAI-BTC", gotQuery)
	require.Len(t, tickers, 2)

	require.True(t, tickers[0].Last.Valid)
	require.Equal(t, "50000.5", tickers[0].Last.Decimal.String())
	require.Equal(t, time.UnixMilli(1714560000000), tickers[0].Timestamp)

	// second ticker has no last price
	require.False(t, tickers[1].Last.Valid)
}

func TestVenueClient_Tickers_NoFilterOmitsQueryParam(t *testing.T) {
	var hasParam bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hasParam = r.URL.Query().Has("pairs")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"tickers": []}`))
	}))
	t.Cleanup(srv.Close)

	c, err := NewVenueClient(srv.Client(), srv.URL, 0)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	tickers, err := c.Tickers(context.Background(), nil)
	require.NoError(t, err)
	require.False(t, hasParam)
	require.Empty(t, tickers)
}

func TestVenueClient_Tickers_NotImplementedMapsToSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotImplemented)
	}))
	t.Cleanup(srv.Close)

	c, err := NewVenueClient(srv.Client(), srv.URL, 0)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	_, err = c.Tickers(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrBulkNotSupported)
}

func TestVenueClient_Tickers_VenueReportedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"error": "rate limit exceeded"}`))
	}))
	t.Cleanup(srv.Close)

	c, err := NewVenueClient(srv.Client(), srv.URL, 0)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	_, err = c.Tickers(context.Background(), nil)
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrBulkNotSupported)
	require.Contains(t, err.Error(), "rate limit exceeded")
}

func TestVenueClient_Tickers_StatusCodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c, err := NewVenueClient(srv.Client(), srv.URL, 0)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	_, err = c.Tickers(context.Background(), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status code 503")
}

func TestVenueClient_Ticker_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "BTC-USD", r.URL.Query().Get("pair"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ticker": {"base": "BTC", "counter": "USD", "last": "50000"}}`))
	}))
	t.Cleanup(srv.Close)

	c, err := NewVenueClient(srv.Client(), srv.URL, 0)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	ticker, err := c.Ticker(context.Background(), domain.CurrencyPair{Base: "BTC", Counter: "USD"})
	require.NoError(t, err)
	require.Equal(t, domain.CurrencyPair{Base: "BTC", Counter: "USD"}, ticker.Pair)
	require.True(t, ticker.Last.Valid)
	require.True(t, ticker.Timestamp.IsZero())
}

func TestVenueClient_Ticker_MissingPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c, err := NewVenueClient(srv.Client(), srv.URL, 0)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	_, err = c.Ticker(context.Background(), domain.CurrencyPair{Base: "BTC", Counter: "USD"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no ticker for pair BTC/USD")
}

func TestVenueClient_JSONDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{")) // invalid JSON
	}))
	t.Cleanup(srv.Close)

	c, err := NewVenueClient(srv.Client(), srv.URL, 0)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	_, err = c.TradablePairs(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to decode response")
}
