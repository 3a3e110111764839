package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"laborstats/internal/bls"
	"laborstats/internal/config"
	"laborstats/internal/db"
	"laborstats/internal/fetcher"
	"laborstats/internal/freshness"
	"laborstats/internal/jobs"
	"laborstats/internal/metrics"
	"laborstats/internal/models"
	"laborstats/internal/quota"
	"laborstats/internal/resolver"
	"laborstats/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load YAML config: %v", err)
	}

	// Initialize the cache database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Quota backing: durable by default, in-process when configured
	var quotaStore quota.Store
	if cfg.QuotaBackend == "memory" {
		log.Println("Using in-memory quota tracking (does not survive restarts)")
		quotaStore = quota.NewMemoryStore()
	} else {
		quotaStore = db.NewQuotaStore(database)
	}

	// Resolver with catalog extras from the YAML overlay
	extra := make(map[string]resolver.Indicator)
	if yamlCfg != nil {
		for _, ind := range yamlCfg.Indicators {
			extra[ind.Key] = resolver.Indicator{SeriesID: ind.SeriesID, Title: ind.Title}
		}
	}
	res := resolver.New(extra)

	// Freshness windows, with YAML overrides per cadence
	windows := make(map[models.Cadence]freshness.Window)
	if yamlCfg != nil {
		for cadence, w := range yamlCfg.Freshness {
			interval, grace, err := w.ParseWindow()
			if err != nil {
				log.Fatalf("Invalid freshness config: %v", err)
			}
			windows[models.Cadence(cadence)] = freshness.Window{Interval: interval, Grace: grace}
		}
	}
	policy := freshness.NewPolicy(windows)

	// Upstream client; tier is selected here from credential presence
	client := bls.New(bls.Options{
		APIKey:      cfg.BLSAPIKey,
		Quota:       quotaStore,
		MaxInFlight: cfg.MaxInFlightFetches,
		BaseURL:     cfg.BLSAPIURL,
	})

	orchestrator := fetcher.New(res, database, client, policy, cfg.FetchTimeout)

	metrics.Init(quotaStore, client.Tier().Name, client.Tier().DailyCap)

	// Background catalog warming
	if cfg.RefreshEnabled {
		keys := []string{}
		if yamlCfg != nil && len(yamlCfg.RefreshIndicators) > 0 {
			keys = yamlCfg.RefreshIndicators
		} else {
			for _, info := range res.Indicators() {
				keys = append(keys, info.Key)
			}
		}
		refresher := jobs.NewRefresher(orchestrator, keys, cfg.RefreshInterval)
		go refresher.Start(ctx)
	}

	// HTTP server
	srv := server.New(cfg)
	srv.RegisterRoutes(database, res, orchestrator, client, quotaStore)

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
