package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyPair is an ordered (base, counter) pair of uppercase currency
// codes, e.g. BTC/USD. Equality is structural.
type CurrencyPair struct {
	Base    string
	Counter string
}

func (p CurrencyPair) String() string {
	return p.Base + "/" + p.Counter
}

// Ticker is a point-in-time quote for one pair as reported by a venue.
// Last is absent when the venue has no quote for the pair; a zero
// Timestamp means the venue did not report an observation time.
type Ticker struct {
	Pair      CurrencyPair
	Last      decimal.NullDecimal
	Timestamp time.Time
}

// ExchangeRate is the canonical rate record published to the aggregation
// service. A zero Timestamp is the "unknown, never stale" sentinel.
type ExchangeRate struct {
	BaseCurrency    string
	CounterCurrency string
	Price           decimal.Decimal
	Timestamp       time.Time
	Provider        string
}
