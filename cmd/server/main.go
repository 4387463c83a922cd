package main

import (
	"net/http"
	"os"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appservice "github.com/YanaYakovleva2018/exchange-chat-relay/internal/application/service"
	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/config"
	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/infrastructure/api"
	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/infrastructure/cache"
	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/infrastructure/db"
	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/infrastructure/journal"
	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/infrastructure/logger"
	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/infrastructure/metrics"
	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/infrastructure/middleware"
	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/infrastructure/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log := logger.NewJSONLogger(os.Stdout, logger.ParseLevel(cfg.LogConfig.LogLevel))
	logger.SetDefaultLogger(log)

	log.Info("Starting exchange chat relay", map[string]interface{}{
		"env":  cfg.Env,
		"addr": cfg.Addr(),
	})

	// Journal: a bad path is a startup failure, not a runtime surprise
	reportJournal := journal.NewFileJournal(cfg.Journal.Path, log)
	if err := reportJournal.Verify(); err != nil {
		log.Fatal("Journal path is not writable", map[string]interface{}{
			"path":  cfg.Journal.Path,
			"error": err.Error(),
		})
	}

	// Quote history
	if err := os.MkdirAll(cfg.Storage.BadgerDir, 0755); err != nil {
		log.Fatal("Failed to create storage directory", map[string]interface{}{
			"dir":   cfg.Storage.BadgerDir,
			"error": err.Error(),
		})
	}

	badgerOpts := badger.DefaultOptions(cfg.Storage.BadgerDir)
	badgerOpts.Logger = nil // Disable Badger's default logger

	badgerDB, err := badger.Open(badgerOpts)
	if err != nil {
		log.Fatal("Failed to open quote storage", map[string]interface{}{
			"dir":   cfg.Storage.BadgerDir,
			"error": err.Error(),
		})
	}
	defer func() {
		if err := badgerDB.Close(); err != nil {
			log.Error("Error closing quote storage", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	cacheTTL, err := time.ParseDuration(cfg.Storage.CacheTTL)
	if err != nil {
		log.Warn("Invalid cache TTL, using 1h", map[string]interface{}{
			"cache_ttl": cfg.Storage.CacheTTL,
		})
		cacheTTL = time.Hour
	}

	// Exchange pipeline
	rateClient := api.NewRateClient(cfg.RateSource.BaseURL, nil, log)
	rateRepo := db.NewBadgerRateRepository(badgerDB)
	quoteCache := cache.NewQuoteCache(cacheTTL)
	exchangeService := appservice.NewExchangeService(
		rateClient, rateRepo, quoteCache,
		cfg.RateSource.Currencies, cfg.RateSource.MaxDays, log)

	// Relay
	relayMetrics := metrics.NewRelayMetrics()
	nameGen, err := ws.NewNameGenerator()
	if err != nil {
		log.Fatal("Failed to init name generator", map[string]interface{}{
			"error": err.Error(),
		})
	}

	registry := ws.NewRegistry()
	hub := ws.NewHub(registry, log, relayMetrics)
	handler := ws.NewHandler(registry, hub, exchangeService, reportJournal, nameGen, log, relayMetrics)

	// Routes
	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	handler.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	log.Info("Relay listening", map[string]interface{}{
		"addr": cfg.Addr(),
	})
	if err := http.ListenAndServe(cfg.Addr(), router); err != nil {
		log.Fatal("Server terminated", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
