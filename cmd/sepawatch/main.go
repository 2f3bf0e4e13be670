package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"sepawatch/internal/cache"
	"sepawatch/internal/collector"
	"sepawatch/internal/config"
	"sepawatch/internal/dataset"
	"sepawatch/internal/requalify"
	"sepawatch/internal/server"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	log.Info().Msg("sepawatch starting")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	// Load candidate dataset. A load failure is fatal: the dashboard never
	// serves a partial list.
	rows, err := dataset.Load(cfg.Dataset.CSVPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Dataset.CSVPath).Msg("load candidate list")
	}
	log.Info().Int("candidates", len(rows)).Str("path", cfg.Dataset.CSVPath).Msg("candidate list loaded")

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewEODFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Info().Str("source", fetcher.Name()).Msg("market data source")

	// Init analysis cache
	var store cache.Store
	if cfg.Cache.SQLitePath != "" {
		ss, err := cache.NewSQLiteStore(cfg.Cache.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite cache failed, using noop")
			store = cache.NewNoopStore()
		} else {
			store = ss
			defer ss.Close()
		}
	} else {
		store = cache.NewNoopStore()
	}

	pruner := cache.NewPruner(store, cfg.TTL())
	if err := pruner.Start(cfg.Cache.PruneCron); err != nil {
		log.Fatal().Err(err).Msg("register prune task")
	}
	defer pruner.Stop()

	// Wire the dashboard server
	rq := requalify.New(fetcher)
	handlers := server.NewHandlers(rows, rq, store, cfg.TTL())
	srv := server.New(server.DefaultConfig(cfg.Server.Addr), handlers)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("dashboard server failed")
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("sepawatch stopped")
}
