package adapters

import (
	"context"

	"pricenode/internal/domain"
)

// VenueClient is the capability set a trading venue must expose to the
// rate pipeline. Tickers is the bulk operation: a nil or empty pairs
// argument asks for all available tickers, a non-empty one acts as a
// filter. Implementations report a categorically missing bulk operation
// with domain.ErrBulkNotSupported.
type VenueClient interface {
	TradablePairs(ctx context.Context) ([]domain.CurrencyPair, error)
	Tickers(ctx context.Context, pairs []domain.CurrencyPair) ([]domain.Ticker, error)
	Ticker(ctx context.Context, pair domain.CurrencyPair) (domain.Ticker, error)
}

// CurrencyCatalog is the currency metadata collaborator.
type CurrencyCatalog interface {
	FiatCodes() []string
	CryptoCodes() []string
	IsFiat(code string) bool
	IsCrypto(code string) bool
	Canonicalize(code string) string
}
