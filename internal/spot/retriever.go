package spot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pricenode/internal/domain"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// retrieveTickers fetches tickers for the desired pairs. Bulk retrieval
// is preferred: one call is faster and stays below venue API rate
// limits. A venue without a bulk operation, or one that answers an
// unfiltered bulk request with nothing, degrades to per-pair retrieval.
// Any other failure aborts the whole cycle: partial data must never
// reach the aggregation service, so the result is nil and the provider
// publishes an empty set.
func (p *Provider) retrieveTickers(ctx context.Context, fiatPairs, cryptoPairs []domain.CurrencyPair) []domain.Ticker {
	desired := make([]domain.CurrencyPair, 0, len(fiatPairs)+len(cryptoPairs))
	desired = append(desired, fiatPairs...)
	desired = append(desired, cryptoPairs...)

	// Some venues ignore a pair filter during bulk retrieval, some
	// require one and fail without it, some honor it. Providers that
	// need the filter say so via config; everyone else asks for all
	// available tickers.
	var filter []domain.CurrencyPair
	if p.cfg.RequiresExplicitFilter {
		filter = desired
	}

	tickers, err := p.venue.Tickers(ctx, filter)
	if err == nil && len(tickers) == 0 {
		err = domain.ErrNoTickers
	}

	switch {
	case err == nil:
		return tickers
	case errors.Is(err, domain.ErrBulkNotSupported), errors.Is(err, domain.ErrNoTickers):
		logrus.WithError(err).Infof("%s: falling back to sequential ticker retrieval", p.cfg.Name)
		return p.retrieveSequential(ctx, desired)
	default:
		logrus.WithError(err).Errorf("%s: could not query tickers", p.cfg.Name)
		return nil
	}
}

// retrieveSequential issues one ticker call per pair. The loop is
// serial and optionally delayed between calls: bursts get pricenode IPs
// throttled on some venues. A failing pair is skipped, the rest
// continue.
func (p *Provider) retrieveSequential(ctx context.Context, pairs []domain.CurrencyPair) []domain.Ticker {
	tickers := make([]domain.Ticker, 0, len(pairs))
	var errs error
	for _, cp := range pairs {
		if p.cfg.CallDelay > 0 {
			select {
			case <-ctx.Done():
				errs = multierror.Append(errs, ctx.Err())
				logrus.WithError(errs).Warnf("%s: sequential ticker retrieval interrupted", p.cfg.Name)
				return tickers
			case <-time.After(p.cfg.CallDelay):
			}
		}

		t, err := p.venue.Ticker(ctx, cp)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", cp, err))
			continue
		}
		tickers = append(tickers, t)
	}
	if errs != nil {
		logrus.WithError(errs).Warnf("%s: some tickers could not be retrieved", p.cfg.Name)
	}
	return tickers
}
