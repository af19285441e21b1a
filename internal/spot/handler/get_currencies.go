package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type GetCurrenciesResponse struct {
	Fiat   []string `json:"fiat"`
	Crypto []string `json:"crypto"`
}

// GetSupportedCurrencies returns the currency codes one provider may
// quote, after global and provider-specific exclusions.
func (h *Handler) GetSupportedCurrencies(w http.ResponseWriter, r *http.Request) {
	src, ok := h.source(chi.URLParam(r, "provider"))
	if !ok {
		writeError(w, http.StatusNotFound, "provider not found")
		return
	}
	writeJSON(w, GetCurrenciesResponse{
		Fiat:   src.SupportedFiatCurrencies(),
		Crypto: src.SupportedCryptoCurrencies(),
	})
}
