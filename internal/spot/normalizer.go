package spot

import (
	"time"

	"pricenode/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// invertedPriceScale is the number of fractional digits kept when a
// price is reciprocated, rounded half-up.
const invertedPriceScale = 8

var one = decimal.NewFromInt(1)

// normalize turns retrieved tickers into canonical exchange rates.
// Tickers outside the desired pairs and tickers without a last price
// are dropped. A fiat pair whose counter is itself a supported crypto
// currency carries a stablecoin quoted fiat-style; the canonical model
// wants crypto assets denominated in BTC or XMR, so such a ticker is
// inverted: base and counter swap and the price is reciprocated.
func (p *Provider) normalize(tickers []domain.Ticker, fiatPairs, cryptoPairs []domain.CurrencyPair) []domain.ExchangeRate {
	fiatSet := pairSet(fiatPairs)
	cryptoSet := pairSet(cryptoPairs)
	crypto := p.universe.Crypto(p.excluded)
	now := p.now()

	rates := make([]domain.ExchangeRate, 0, len(tickers))
	for _, t := range tickers {
		_, desiredFiat := fiatSet[t.Pair]
		_, desiredCrypto := cryptoSet[t.Pair]
		if !desiredFiat && !desiredCrypto {
			continue
		}
		if !t.Last.Valid {
			// no quote available for this pair
			continue
		}

		base := p.catalog.Canonicalize(t.Pair.Base)
		counter := p.catalog.Canonicalize(t.Pair.Counter)
		price := t.Last.Decimal

		if _, stablecoin := crypto[counter]; desiredFiat && stablecoin {
			if price.IsZero() {
				logrus.Warnf("%s: %s has zero last price, skipping", p.cfg.Name, t.Pair)
				continue
			}
			price = one.DivRound(t.Last.Decimal, invertedPriceScale)
			base, counter = counter, base
			logrus.Infof("%s inverted, price translated from %s to %s", t.Pair, t.Last.Decimal, price)
		}

		ts := t.Timestamp
		if ts.IsZero() {
			// some venues don't provide timestamps
			ts = now
		}

		rates = append(rates, domain.ExchangeRate{
			BaseCurrency:    base,
			CounterCurrency: counter,
			Price:           price,
			Timestamp:       ts,
			Provider:        p.cfg.Name,
		})
	}
	return rates
}

// clearTimestamps marks every rate with the "unknown, never stale"
// sentinel. Applied at wiring level for venues known to never report
// observation times.
func clearTimestamps(rates []domain.ExchangeRate) {
	for i := range rates {
		rates[i].Timestamp = time.Time{}
	}
}
