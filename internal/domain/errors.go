package domain

import "errors"

var (
	// ErrBulkNotSupported is returned by a venue client whose bulk ticker
	// operation is categorically unavailable.
	ErrBulkNotSupported = errors.New("bulk ticker retrieval not supported by venue")

	// ErrNoTickers marks a bulk call that succeeded but carried no data,
	// a strong hint the venue wants an explicit pair filter.
	ErrNoTickers = errors.New("no tickers retrieved, venue may require explicit filter during bulk retrieval")
)
