package spot

import "pricenode/internal/domain"

// desiredPairs intersects the venue's tradable pairs with the supported
// universe and splits them into two disjoint lists:
//
//   - fiat pairs, CRYPTO-FIAT shaped: base is BTC, or base is XMR with a
//     non-BTC counter. The counter must be a supported fiat currency or,
//     to admit stablecoins quoted fiat-style, a supported crypto one
//     (after canonicalization); the normalizer inverts the latter.
//   - crypto pairs, CRYPTO-BTC shaped: counter is BTC and the base is a
//     supported crypto currency.
//
// The venue's list can change between polls, so this runs every cycle.
func desiredPairs(
	all []domain.CurrencyPair,
	fiat, crypto map[string]struct{},
	canonicalize func(string) string,
) (fiatPairs, cryptoPairs []domain.CurrencyPair) {
	for _, cp := range all {
		if cp.Base == "BTC" || (cp.Base == "XMR" && cp.Counter != "BTC") {
			_, fiatCounter := fiat[cp.Counter]
			_, cryptoCounter := crypto[canonicalize(cp.Counter)]
			if fiatCounter || cryptoCounter {
				fiatPairs = append(fiatPairs, cp)
			}
			continue
		}
		if cp.Counter == "BTC" {
			if _, ok := crypto[cp.Base]; ok {
				cryptoPairs = append(cryptoPairs, cp)
			}
		}
	}
	return fiatPairs, cryptoPairs
}

func pairSet(pairs []domain.CurrencyPair) map[domain.CurrencyPair]struct{} {
	s := make(map[domain.CurrencyPair]struct{}, len(pairs))
	for _, cp := range pairs {
		s[cp] = struct{}{}
	}
	return s
}
