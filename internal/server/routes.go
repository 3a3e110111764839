package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"laborstats/internal/bls"
	"laborstats/internal/db"
	"laborstats/internal/fetcher"
	"laborstats/internal/handlers/api"
	"laborstats/internal/quota"
	"laborstats/internal/resolver"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(database *db.DB, res *resolver.Resolver, orchestrator *fetcher.Orchestrator, client *bls.Client, quotaStore quota.Store) {
	queryHandler := api.NewQueryHandler(orchestrator)
	catalogHandler := api.NewCatalogHandler(res)
	seriesHandler := api.NewSeriesHandler(database)
	healthHandler := api.NewHealthHandler(database)
	quotaHandler := api.NewQuotaHandler(quotaStore, client.Tier().Name, client.Tier().DailyCap)

	// The single consumer-facing query operation
	s.App.Post("/api/query", queryHandler.Query)

	// Catalog and cache reads
	s.App.Get("/api/indicators", catalogHandler.Indicators)
	s.App.Get("/api/states", catalogHandler.States)
	s.App.Get("/api/series/:id", seriesHandler.Get)
	s.App.Get("/api/quota", quotaHandler.Show)

	// Probes and metrics
	s.App.Get("/healthz", healthHandler.Live)
	s.App.Get("/readyz", healthHandler.Ready)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
