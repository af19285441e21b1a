package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"pricenode/internal/domain"

	"github.com/dgraph-io/ristretto"
	"github.com/shopspring/decimal"
)

const symbolsCacheKey = "symbols"

// VenueClient talks to a venue's market-data REST API:
//
//	GET {base}/symbols                  all tradable pairs
//	GET {base}/tickers[?pairs=a-b,...]  bulk tickers, optional filter
//	GET {base}/ticker?pair=a-b          one ticker
//
// A 501 on the bulk endpoint maps to domain.ErrBulkNotSupported. The
// symbol list barely changes between polls, so it is held in a small
// TTL cache; tickers are never cached.
type VenueClient struct {
	http      *http.Client
	baseURL   string
	symbols   *ristretto.Cache
	symbolTTL time.Duration
}

func NewVenueClient(httpClient *http.Client, baseURL string, symbolTTL time.Duration) (*VenueClient, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 64,
		MaxCost:     8,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create symbol cache failed: %w", err)
	}
	return &VenueClient{
		http:      httpClient,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		symbols:   cache,
		symbolTTL: symbolTTL,
	}, nil
}

func (c *VenueClient) Close() { c.symbols.Close() }

type symbolsResponse struct {
	Error   string `json:"error"`
	Symbols []struct {
		Base    string `json:"base"`
		Counter string `json:"counter"`
	} `json:"symbols"`
}

func (c *VenueClient) TradablePairs(ctx context.Context) ([]domain.CurrencyPair, error) {
	if c.symbolTTL > 0 {
		if v, ok := c.symbols.Get(symbolsCacheKey); ok {
			if pairs, ok := v.([]domain.CurrencyPair); ok {
				return slices.Clone(pairs), nil
			}
		}
	}

	var body symbolsResponse
	if err := c.getJSON(ctx, "/symbols", nil, &body); err != nil {
		return nil, err
	}
	if body.Error != "" {
		return nil, fmt.Errorf("venue reported error listing symbols: %s", body.Error)
	}

	pairs := make([]domain.CurrencyPair, 0, len(body.Symbols))
	for _, s := range body.Symbols {
		pairs = append(pairs, domain.CurrencyPair{
			Base:    strings.ToUpper(s.Base),
			Counter: strings.ToUpper(s.Counter),
		})
	}

	if c.symbolTTL > 0 {
		c.symbols.SetWithTTL(symbolsCacheKey, slices.Clone(pairs), 1, c.symbolTTL)
		c.symbols.Wait()
	}
	return pairs, nil
}

type tickerJSON struct {
	Base      string           `json:"base"`
	Counter   string           `json:"counter"`
	Last      *decimal.Decimal `json:"last"`
	Timestamp int64            `json:"timestamp"` // unix millis, 0 when unknown
}

type tickersResponse struct {
	Error   string       `json:"error"`
	Tickers []tickerJSON `json:"tickers"`
}

func (c *VenueClient) Tickers(ctx context.Context, pairs []domain.CurrencyPair) ([]domain.Ticker, error) {
	query := url.Values{}
	if len(pairs) > 0 {
		symbols := make([]string, 0, len(pairs))
		for _, cp := range pairs {
			symbols = append(symbols, cp.Base+"-"+cp.Counter)
		}
		query.Set("pairs", strings.Join(symbols, ","))
	}

	var body tickersResponse
	if err := c.getJSON(ctx, "/tickers", query, &body); err != nil {
		return nil, err
	}
	if body.Error != "" {
		return nil, fmt.Errorf("venue reported error during bulk retrieval: %s", body.Error)
	}

	tickers := make([]domain.Ticker, 0, len(body.Tickers))
	for _, t := range body.Tickers {
		tickers = append(tickers, t.toDomain())
	}
	return tickers, nil
}

type tickerResponse struct {
	Error  string      `json:"error"`
	Ticker *tickerJSON `json:"ticker"`
}

func (c *VenueClient) Ticker(ctx context.Context, pair domain.CurrencyPair) (domain.Ticker, error) {
	query := url.Values{}
	query.Set("pair", pair.Base+"-"+pair.Counter)

	var body tickerResponse
	if err := c.getJSON(ctx, "/ticker", query, &body); err != nil {
		return domain.Ticker{}, err
	}
	if body.Error != "" {
		return domain.Ticker{}, fmt.Errorf("venue reported error for pair %s: %s", pair, body.Error)
	}
	if body.Ticker == nil {
		return domain.Ticker{}, fmt.Errorf("venue returned no ticker for pair %s", pair)
	}
	return body.Ticker.toDomain(), nil
}

func (t tickerJSON) toDomain() domain.Ticker {
	ticker := domain.Ticker{
		Pair: domain.CurrencyPair{
			Base:    strings.ToUpper(t.Base),
			Counter: strings.ToUpper(t.Counter),
		},
	}
	if t.Last != nil {
		ticker.Last = decimal.NewNullDecimal(*t.Last)
	}
	if t.Timestamp > 0 {
		ticker.Timestamp = time.UnixMilli(t.Timestamp)
	}
	return ticker
}

func (c *VenueClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %q: %w", path, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request for %q: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotImplemented {
		return domain.ErrBulkNotSupported
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code %d for %q: %s", resp.StatusCode, path, resp.Status)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response for %q: %w", path, err)
	}
	return nil
}
