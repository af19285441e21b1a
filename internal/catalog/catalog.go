package catalog

import (
	"maps"
	"slices"
	"strings"
)

// Catalog is the currency metadata collaborator: which codes are fiat,
// which are crypto, and how venue-suffixed crypto codes map to their
// base form. All lookups are case-insensitive; all listings are sorted.
type Catalog struct {
	fiatSet   map[string]struct{}
	cryptoSet map[string]struct{}
	fiatLst   []string
	cryptoLst []string
}

func New(fiatCodes, cryptoCodes []string) *Catalog {
	fiatSet := toSet(fiatCodes)
	cryptoSet := toSet(cryptoCodes)

	fiatLst := slices.Sorted(maps.Keys(fiatSet))
	cryptoLst := slices.Sorted(maps.Keys(cryptoSet))

	return &Catalog{
		fiatSet:   fiatSet,
		cryptoSet: cryptoSet,
		fiatLst:   fiatLst,
		cryptoLst: cryptoLst,
	}
}

// FiatCodes returns all fiat codes in sorted order.
func (c *Catalog) FiatCodes() []string {
	return slices.Clone(c.fiatLst)
}

// CryptoCodes returns all crypto codes in sorted order. XMR is not
// listed here: it is a pricing denominator, not a quotable asset, and
// the universe resolver re-adds it explicitly.
func (c *Catalog) CryptoCodes() []string {
	return slices.Clone(c.cryptoLst)
}

func (c *Catalog) IsFiat(code string) bool {
	_, ok := c.fiatSet[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

func (c *Catalog) IsCrypto(code string) bool {
	_, ok := c.cryptoSet[c.Canonicalize(code)]
	return ok
}

// Canonicalize strips a venue-specific suffix from a crypto code, e.g.
// USDT-ERC20 -> USDT. Fiat codes pass through unchanged.
func (c *Catalog) Canonicalize(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if base, _, found := strings.Cut(code, "-"); found && base != "" {
		return base
	}
	return code
}

func toSet(codes []string) map[string]struct{} {
	s := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		s[code] = struct{}{}
	}
	return s
}
