package catalog

// Default returns the built-in currency catalog. The lists mirror the
// currencies the aggregation service can consume; deployments narrow
// them down via the exclusion lists in config rather than editing these.
func Default() *Catalog {
	return New(defaultFiatCodes, defaultCryptoCodes)
}

var defaultFiatCodes = []string{
	"AED", "AUD", "BRL", "CAD", "CHF", "CLP", "CNY", "CZK", "DKK", "EUR",
	"GBP", "HKD", "HUF", "IDR", "ILS", "INR", "JPY", "KRW", "MXN", "MYR",
	"NGN", "NOK", "NZD", "PHP", "PLN", "RON", "RUB", "SEK", "SGD", "THB",
	"TRY", "TWD", "UAH", "USD", "VND", "ZAR",
}

// XMR is intentionally absent, see Catalog.CryptoCodes.
var defaultCryptoCodes = []string{
	"ADA", "BCH", "BNB", "BTC", "DAI", "DASH", "DOGE", "DOT", "EOS",
	"ETC", "ETH", "LTC", "SOL", "TRX", "TUSD", "USDC", "USDT", "XLM",
	"XRP", "ZEC",
}
