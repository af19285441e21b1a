package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type GetRatesResponse struct {
	Rates []RateView `json:"rates"`
}

// GetAllRates returns the published snapshots of every provider.
func (h *Handler) GetAllRates(w http.ResponseWriter, _ *http.Request) {
	res := GetRatesResponse{Rates: []RateView{}}
	for _, name := range h.names {
		src, _ := h.source(name)
		res.Rates = append(res.Rates, toViews(src.Rates())...)
	}
	writeJSON(w, res)
}

// GetProviderRates returns one provider's published snapshot.
func (h *Handler) GetProviderRates(w http.ResponseWriter, r *http.Request) {
	src, ok := h.source(chi.URLParam(r, "provider"))
	if !ok {
		writeError(w, http.StatusNotFound, "provider not found")
		return
	}
	writeJSON(w, GetRatesResponse{Rates: toViews(src.Rates())})
}
