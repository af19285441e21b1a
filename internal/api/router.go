package api

import (
	"pricenode/internal/spot/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(rateHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	router.Get("/api/v1/rates", rateHandler.GetAllRates)
	router.Get("/api/v1/rates/{provider}", rateHandler.GetProviderRates)
	router.Get("/api/v1/providers/{provider}/currencies", rateHandler.GetSupportedCurrencies)
	return router
}
