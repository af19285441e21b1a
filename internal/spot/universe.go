package spot

import (
	"maps"
	"strings"

	"pricenode/internal/adapters"

	"github.com/sirupsen/logrus"
)

// Universe holds the process-wide supported-currency sets. It is built
// once in app wiring, is immutable afterwards, and is shared by every
// provider instance; per-provider exclusions are applied on each read.
type Universe struct {
	fiat   map[string]struct{}
	crypto map[string]struct{}
}

// ResolveUniverse computes the global fiat and crypto sets from the
// catalog minus the configured exclusion lists. Exclusion entries that
// the catalog does not recognize as fiat resp. crypto are ignored.
func ResolveUniverse(cat adapters.CurrencyCatalog, excludedFiat, excludedCrypto string) *Universe {
	fiatExcluded := parseExclusions(excludedFiat, cat.IsFiat)
	fiat := make(map[string]struct{})
	for _, code := range cat.FiatCodes() {
		if _, ok := fiatExcluded[code]; ok {
			continue
		}
		fiat[code] = struct{}{}
	}
	logrus.Infof("fiat currencies excluded: %d, supported: %d", len(fiatExcluded), len(fiat))

	cryptoExcluded := parseExclusions(excludedCrypto, cat.IsCrypto)
	crypto := make(map[string]struct{})
	for _, code := range cat.CryptoCodes() {
		if _, ok := cryptoExcluded[code]; ok {
			continue
		}
		crypto[cat.Canonicalize(code)] = struct{}{}
	}
	// XMR is skipped by the catalog because it is a pricing denominator,
	// but it must stay quotable no matter what the exclusions say.
	crypto["XMR"] = struct{}{}
	logrus.Infof("crypto currencies excluded: %d, supported: %d", len(cryptoExcluded), len(crypto))

	return &Universe{fiat: fiat, crypto: crypto}
}

// Fiat returns the global fiat set minus the given per-provider
// exclusions. The result is a fresh copy on every call.
func (u *Universe) Fiat(excluded map[string]struct{}) map[string]struct{} {
	return minus(u.fiat, excluded)
}

// Crypto returns the global crypto set minus the given per-provider
// exclusions. The result is a fresh copy on every call.
func (u *Universe) Crypto(excluded map[string]struct{}) map[string]struct{} {
	return minus(u.crypto, excluded)
}

func minus(set, excluded map[string]struct{}) map[string]struct{} {
	if len(excluded) == 0 {
		return maps.Clone(set)
	}
	out := make(map[string]struct{}, len(set))
	for code := range set {
		if _, ok := excluded[code]; ok {
			continue
		}
		out[code] = struct{}{}
	}
	return out
}

// parseExclusions splits a comma-separated, case-insensitive exclusion
// list, keeping only entries the valid predicate recognizes.
func parseExclusions(raw string, valid func(string) bool) map[string]struct{} {
	out := make(map[string]struct{})
	for _, entry := range strings.Split(raw, ",") {
		code := strings.ToUpper(strings.TrimSpace(entry))
		if code == "" || !valid(code) {
			continue
		}
		out[code] = struct{}{}
	}
	return out
}

// parseProviderExclusions extracts the codes excluded for one provider
// from a comma-separated list of provider:code entries. Entries that do
// not match the expected shape are skipped silently.
func parseProviderExclusions(raw, providerName string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) != 2 || !strings.EqualFold(parts[0], providerName) {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(parts[1]))
		if code == "" {
			continue
		}
		out[code] = struct{}{}
	}
	return out
}
