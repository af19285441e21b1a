package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"pricenode/internal/domain"
)

// RateSource is the read side of a provider instance.
type RateSource interface {
	Name() string
	Rates() []domain.ExchangeRate
	SupportedFiatCurrencies() []string
	SupportedCryptoCurrencies() []string
}

type Handler struct {
	names   []string
	sources map[string]RateSource
}

func NewRateHandler(sources []RateSource) *Handler {
	h := &Handler{sources: make(map[string]RateSource, len(sources))}
	for _, src := range sources {
		h.names = append(h.names, src.Name())
		h.sources[strings.ToLower(src.Name())] = src
	}
	return h
}

func (h *Handler) source(name string) (RateSource, bool) {
	src, ok := h.sources[strings.ToLower(name)]
	return src, ok
}

type RateView struct {
	BaseCurrency    string `json:"baseCurrency"`
	CounterCurrency string `json:"counterCurrency"`
	Price           string `json:"price"`
	Timestamp       int64  `json:"timestamp"` // unix millis, 0 = unknown
	Provider        string `json:"provider"`
}

func toViews(rates []domain.ExchangeRate) []RateView {
	views := make([]RateView, 0, len(rates))
	for _, r := range rates {
		var ts int64
		if !r.Timestamp.IsZero() {
			ts = r.Timestamp.UnixMilli()
		}
		views = append(views, RateView{
			BaseCurrency:    r.BaseCurrency,
			CounterCurrency: r.CounterCurrency,
			Price:           r.Price.String(),
			Timestamp:       ts,
			Provider:        r.Provider,
		})
	}
	return views
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(payload)
}
