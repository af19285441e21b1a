package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pricenode/internal/adapters/httpclient"
	"pricenode/internal/api"
	"pricenode/internal/catalog"
	"pricenode/internal/config"
	httpserver "pricenode/internal/platform/http"
	"pricenode/internal/spot"
	"pricenode/internal/spot/handler"

	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts the scheduler and the
// HTTP server.
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}

	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("Config initialization successful")

	if len(appCfg.Providers) == 0 {
		return errors.New("no providers configured")
	}

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The supported-currency universe is resolved exactly once, up
	// front, and shared by every provider instance.
	cat := catalog.Default()
	universe := spot.ResolveUniverse(cat, appCfg.Currency.FiatExcluded, appCfg.Currency.CryptoExcluded)

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	staleAfter := time.Duration(appCfg.Pruning.StaleAfterSeconds) * time.Second

	providers := make([]*spot.Provider, 0, len(appCfg.Providers))
	sources := make([]handler.RateSource, 0, len(appCfg.Providers))
	for _, pc := range appCfg.Providers {
		venue, venueErr := httpclient.NewVenueClient(
			baseHTTPClient,
			pc.BaseURL,
			time.Duration(pc.SymbolCacheTTLSeconds)*time.Second,
		)
		if venueErr != nil {
			logrus.WithError(venueErr).Errorf("Failed to create venue client for %s", pc.Name)
			return venueErr
		}
		defer venue.Close()

		p := spot.NewProvider(spot.Config{
			Name:                   pc.Name,
			Prefix:                 pc.Prefix,
			RefreshInterval:        time.Duration(pc.RefreshIntervalSec) * time.Second,
			CallDelay:              time.Duration(pc.CallDelayMillis) * time.Millisecond,
			RequiresExplicitFilter: pc.RequiresFilter,
			UnknownTimestamp:       pc.UnknownTimestamp,
			StaleAfter:             staleAfter,
		}, venue, cat, universe, appCfg.Currency.ExcludedByProvider)

		providers = append(providers, p)
		sources = append(sources, p)
	}
	logrus.Infof("%d providers configured", len(providers))

	// Scheduler: one poll job per provider plus the stale-rate pruning job
	scheduler := spot.NewScheduler(providers, time.Duration(appCfg.Pruning.PruneIntervalSeconds)*time.Second)
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("Scheduler activation successful")

	// Handlers and router
	rateHandler := handler.NewRateHandler(sources)
	router := api.NewRouter(rateHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
