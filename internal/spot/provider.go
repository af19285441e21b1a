package spot

import (
	"context"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"pricenode/internal/adapters"
	"pricenode/internal/domain"

	"github.com/sirupsen/logrus"
)

const (
	defaultRefreshInterval = time.Minute
	defaultStaleAfter      = 10 * time.Minute
)

// Config captures everything that differs between venues; the pipeline
// itself is shared.
type Config struct {
	// Name identifies the provider in published rates, logs and the
	// per-provider exclusion list.
	Name string
	// Prefix is the short route/symbol prefix used by upstream services.
	Prefix string
	// RefreshInterval is how often the scheduler polls this provider.
	RefreshInterval time.Duration
	// CallDelay is the pause before each call on the sequential
	// fallback path, to stay under venue rate limits.
	CallDelay time.Duration
	// RequiresExplicitFilter makes the bulk ticker call carry the
	// desired-pair list; venues that need it fail or answer empty
	// without one.
	RequiresExplicitFilter bool
	// UnknownTimestamp marks a venue that never reports observation
	// times; its rates get the never-stale sentinel timestamp.
	UnknownTimestamp bool
	// StaleAfter is the staleness threshold for published rates.
	StaleAfter time.Duration
}

// Provider polls one venue and publishes its canonical rates as an
// atomically swapped immutable snapshot: readers see either the
// previous complete state or the next one, never a partial update.
type Provider struct {
	cfg      Config
	venue    adapters.VenueClient
	catalog  adapters.CurrencyCatalog
	universe *Universe
	excluded map[string]struct{}
	now      func() time.Time

	mu    sync.Mutex // serializes Poll and PruneStale writes
	rates atomic.Pointer[[]domain.ExchangeRate]
}

// NewProvider builds a provider around the shared universe.
// excludedByProvider is the raw provider:code exclusion list; only
// entries naming this provider apply.
func NewProvider(cfg Config, venue adapters.VenueClient, cat adapters.CurrencyCatalog, universe *Universe, excludedByProvider string) *Provider {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = defaultRefreshInterval
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = defaultStaleAfter
	}

	excluded := parseProviderExclusions(excludedByProvider, cfg.Name)
	if len(excluded) > 0 {
		logrus.Infof("%s specific exclusion list=%v", cfg.Name, slices.Sorted(maps.Keys(excluded)))
	}

	return &Provider{
		cfg:      cfg,
		venue:    venue,
		catalog:  cat,
		universe: universe,
		excluded: excluded,
		now:      time.Now,
	}
}

func (p *Provider) Name() string { return p.cfg.Name }

func (p *Provider) Prefix() string { return p.cfg.Prefix }

func (p *Provider) RefreshInterval() time.Duration { return p.cfg.RefreshInterval }

// SupportedFiatCurrencies returns the fiat codes this provider may
// quote, sorted.
func (p *Provider) SupportedFiatCurrencies() []string {
	return slices.Sorted(maps.Keys(p.universe.Fiat(p.excluded)))
}

// SupportedCryptoCurrencies returns the crypto codes this provider may
// quote, sorted.
func (p *Provider) SupportedCryptoCurrencies() []string {
	return slices.Sorted(maps.Keys(p.universe.Crypto(p.excluded)))
}

// Rates returns a copy of the last published snapshot.
func (p *Provider) Rates() []domain.ExchangeRate {
	snapshot := p.rates.Load()
	if snapshot == nil {
		return nil
	}
	return slices.Clone(*snapshot)
}

// Poll runs one retrieval cycle and publishes the result, replacing the
// previous snapshot wholesale. Failures never escape: a broken cycle
// publishes an empty set rather than stale or partial data, so the
// aggregation service never averages in garbage.
func (p *Provider) Poll(ctx context.Context) []domain.ExchangeRate {
	rates := p.pollOnce(ctx)
	if rates == nil {
		rates = []domain.ExchangeRate{}
	}

	p.mu.Lock()
	p.rates.Store(&rates)
	p.mu.Unlock()

	p.logRefreshed(rates)
	return slices.Clone(rates)
}

func (p *Provider) pollOnce(ctx context.Context) []domain.ExchangeRate {
	all, err := p.venue.TradablePairs(ctx)
	if err != nil {
		logrus.WithError(err).Errorf("%s: could not list tradable pairs", p.cfg.Name)
		return nil
	}

	fiat := p.universe.Fiat(p.excluded)
	crypto := p.universe.Crypto(p.excluded)
	fiatPairs, cryptoPairs := desiredPairs(all, fiat, crypto, p.catalog.Canonicalize)

	tickers := p.retrieveTickers(ctx, fiatPairs, cryptoPairs)
	rates := p.normalize(tickers, fiatPairs, cryptoPairs)

	if p.cfg.UnknownTimestamp {
		clearTimestamps(rates)
	}
	return rates
}

// PruneStale drops published rates older than the staleness threshold.
// Rates carrying the sentinel timestamp are exempt. Runs independently
// of the poll cycle; a provider that never polled is a no-op.
func (p *Provider) PruneStale() {
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot := p.rates.Load()
	if snapshot == nil {
		return
	}

	cutoff := p.now().Add(-p.cfg.StaleAfter)
	fresh := make([]domain.ExchangeRate, 0, len(*snapshot))
	for _, r := range *snapshot {
		if r.Timestamp.IsZero() || r.Timestamp.After(cutoff) {
			fresh = append(fresh, r)
		}
	}

	if removed := len(*snapshot) - len(fresh); removed > 0 {
		p.rates.Store(&fresh)
		logrus.Warnf("%s: %d stale rates removed, now %d rates", p.cfg.Name, removed, len(fresh))
	}
}

// logRefreshed logs the benchmark subset of a fresh snapshot: USD
// quotes plus the majors quoted against BTC.
func (p *Provider) logRefreshed(rates []domain.ExchangeRate) {
	for _, r := range rates {
		switch {
		case r.CounterCurrency == "USD",
			r.BaseCurrency == "XMR", r.BaseCurrency == "ETH",
			r.BaseCurrency == "BCH", r.BaseCurrency == "USDT":
			logrus.Infof("%s %s/%s: %s", p.cfg.Name, r.BaseCurrency, r.CounterCurrency, r.Price)
		}
	}
}
