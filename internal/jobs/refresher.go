package jobs

import (
	"context"
	"log"
	"time"

	"laborstats/internal/fetcher"
	"laborstats/internal/models"
)

// Refresher performs background warm refreshes of the national indicator
// catalog. It drives the same orchestrator as live queries, so freshness
// policy and quota admission apply: a fresh cache makes a pass a no-op, and
// quota exhaustion simply leaves gaps for the next pass.
type Refresher struct {
	orchestrator *fetcher.Orchestrator
	indicators   []string
	interval     time.Duration
}

// NewRefresher creates a refresher over the given indicator keys.
func NewRefresher(orchestrator *fetcher.Orchestrator, indicators []string, interval time.Duration) *Refresher {
	return &Refresher{
		orchestrator: orchestrator,
		indicators:   indicators,
		interval:     interval,
	}
}

// Start begins the background refresh loop.
func (r *Refresher) Start(ctx context.Context) {
	log.Printf("Catalog refresher started (interval: %v, indicators: %d)", r.interval, len(r.indicators))

	// Run immediately on start
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Catalog refresher stopped")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// refresh runs one warm pass over the configured indicators.
func (r *Refresher) refresh(ctx context.Context) {
	if len(r.indicators) == 0 {
		return
	}

	queries := make([]models.Query, len(r.indicators))
	for i, key := range r.indicators {
		queries[i] = models.Query{Indicator: key}
	}

	result, err := r.orchestrator.Query(ctx, queries, 0, 0)
	if err != nil {
		log.Printf("Catalog refresher: pass failed: %v", err)
		return
	}

	var fetched, gaps int
	for _, sr := range result.Results {
		for _, obs := range sr.Observations {
			if obs.Provenance == models.ProvenanceFetched {
				fetched++
			}
		}
		gaps += len(sr.Gaps)
	}
	if fetched > 0 || gaps > 0 {
		log.Printf("Catalog refresher: fetched %d observations, %d gaps remain", fetched, gaps)
	}
}
