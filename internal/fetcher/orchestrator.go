// Package fetcher coordinates query serving: resolve logical queries, compute
// cache coverage and freshness, fetch only the gaps through the quota-aware
// client, write fresh observations back through the cache, and return one
// merged result per series with provenance and explicit gap markers.
//
// The orchestrator itself is stateless across calls; all mutable state lives
// in the cache and quota stores.
package fetcher

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"laborstats/internal/freshness"
	"laborstats/internal/metrics"
	"laborstats/internal/models"
	"laborstats/internal/quota"
	"laborstats/internal/resolver"
)

// Cache is the persistent partitioned observation store. Any error from it
// degrades the affected series to cache-less operation rather than failing
// the query.
type Cache interface {
	GetRange(ctx context.Context, seriesID string, from, to models.Period) ([]models.Observation, error)
	UpsertBatch(ctx context.Context, seriesID string, observations []models.Observation) error
	Coverage(ctx context.Context, seriesID string, expected []models.Period) ([]models.Period, error)
	OldestFetch(ctx context.Context, seriesID string, from, to models.Period) (time.Time, error)
}

// Client fetches observations from the upstream API, returning a possibly
// partial result map alongside an error when quota runs out mid-call.
type Client interface {
	Fetch(ctx context.Context, seriesIDs []string, startYear, endYear int) (map[string][]models.Observation, error)
}

// Orchestrator serves queries. Each call is an independent transaction; no
// ordering is guaranteed across concurrent calls beyond the cache's
// partition-level consistency.
type Orchestrator struct {
	resolver *resolver.Resolver
	cache    Cache
	client   Client
	policy   *freshness.Policy
	timeout  time.Duration
	now      func() time.Time
}

// New creates an orchestrator. Timeout bounds each query call end to end;
// zero means 30 seconds.
func New(res *resolver.Resolver, cache Cache, client Client, policy *freshness.Policy, timeout time.Duration) *Orchestrator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Orchestrator{
		resolver: res,
		cache:    cache,
		client:   client,
		policy:   policy,
		timeout:  timeout,
		now:      time.Now,
	}
}

// seriesPlan tracks the per-series state across the query pipeline.
type seriesPlan struct {
	query      models.Query
	series     *models.Series
	resolveErr error
	expected   []models.Period
	cached     []models.Observation
	cacheDown  bool
	needsFetch bool
	stale      bool
}

// Query resolves, plans, fetches, writes back, and merges. Partial problems
// (resolution failures, quota exhaustion, upstream errors, cache outage)
// never fail the call; they surface per series as errors and gaps.
func (o *Orchestrator) Query(ctx context.Context, queries []models.Query, startYear, endYear int) (*models.QueryResult, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	now := o.now()
	if endYear == 0 {
		// The latest complete year; in-progress years publish with a lag.
		endYear = now.Year() - 1
	}
	if startYear == 0 {
		startYear = endYear - 2
	}

	metrics.QueryHandled()

	plans := make([]*seriesPlan, len(queries))
	for i, q := range queries {
		plan := &seriesPlan{query: q}
		plans[i] = plan

		series, err := o.resolver.Resolve(q)
		if err != nil {
			plan.resolveErr = err
			continue
		}
		plan.series = series
		plan.expected = models.PeriodsInRange(series.Cadence, startYear, endYear)
		if len(plan.expected) == 0 {
			continue
		}
		o.planCoverage(ctx, plan, now)
	}

	// Collect the distinct series that need a live fetch. The upstream API
	// works in whole year ranges, so a series with any gap or a stale window
	// is fetched over the full requested range.
	fetchIDs := make([]string, 0, len(plans))
	seen := make(map[string]bool)
	for _, plan := range plans {
		if plan.series != nil && plan.needsFetch && !seen[plan.series.ID] {
			seen[plan.series.ID] = true
			fetchIDs = append(fetchIDs, plan.series.ID)
		}
	}

	var fetched map[string][]models.Observation
	var fetchErr error
	if len(fetchIDs) > 0 {
		fetched, fetchErr = o.client.Fetch(ctx, fetchIDs, startYear, endYear)
		if fetchErr != nil {
			slog.Warn("upstream fetch incomplete",
				"requested_series", len(fetchIDs), "fetched_series", len(fetched), "error", fetchErr)
		}
	}

	result := &models.QueryResult{
		RequestID: uuid.New(),
		StartYear: startYear,
		EndYear:   endYear,
		Results:   make([]models.SeriesResult, len(plans)),
	}
	for i, plan := range plans {
		result.Results[i] = o.assemble(ctx, plan, fetched, fetchErr)
	}
	return result, nil
}

// planCoverage fills the plan's cached window, staleness, and fetch decision.
// Cache errors degrade the series to "no cache": always fetch, skip
// write-back.
func (o *Orchestrator) planCoverage(ctx context.Context, plan *seriesPlan, now time.Time) {
	series := plan.series
	from := plan.expected[0]
	to := plan.expected[len(plan.expected)-1]

	missing, err := o.cache.Coverage(ctx, series.ID, plan.expected)
	if err != nil {
		slog.Warn("cache degraded, proceeding without it", "series_id", series.ID, "error", err)
		plan.cacheDown = true
		plan.needsFetch = true
		return
	}

	oldest, err := o.cache.OldestFetch(ctx, series.ID, from, to)
	if err != nil {
		slog.Warn("cache degraded, proceeding without it", "series_id", series.ID, "error", err)
		plan.cacheDown = true
		plan.needsFetch = true
		return
	}

	hasCached := len(missing) < len(plan.expected)
	plan.stale = hasCached && !o.policy.IsFresh(series.Cadence, oldest, now)
	plan.needsFetch = plan.stale || len(missing) > 0

	// A stale window is refreshed as a unit, so its cached values are
	// demoted to gaps and not merged into the result.
	if hasCached && !plan.stale {
		cached, err := o.cache.GetRange(ctx, series.ID, from, to)
		if err != nil {
			slog.Warn("cache degraded, proceeding without it", "series_id", series.ID, "error", err)
			plan.cacheDown = true
			plan.needsFetch = true
			return
		}
		plan.cached = cached
	}
}

// assemble write-backs fresh data for a series and merges cached + fetched
// observations into one period-ordered result with provenance annotations.
func (o *Orchestrator) assemble(ctx context.Context, plan *seriesPlan, fetched map[string][]models.Observation, fetchErr error) models.SeriesResult {
	res := models.SeriesResult{Query: plan.query, Series: plan.series}
	if plan.resolveErr != nil {
		res.Error = plan.resolveErr.Error()
		return res
	}

	expected := make(map[string]bool, len(plan.expected))
	for _, p := range plan.expected {
		expected[p.Key()] = true
	}

	merged := make(map[string]models.AnnotatedObservation, len(plan.expected))
	for _, obs := range plan.cached {
		if expected[obs.Period.Key()] {
			merged[obs.Period.Key()] = models.AnnotatedObservation{Observation: obs, Provenance: models.ProvenanceCache}
		}
	}

	fresh, fetchedOK := fetched[plan.series.ID]
	if fetchedOK {
		// Write-through before returning, so a repeated identical query is
		// fully cache-served. The write includes extras outside the expected
		// set (e.g. annual averages); the result does not.
		if plan.cacheDown {
			slog.Warn("skipping write-back, cache degraded", "series_id", plan.series.ID)
		} else if err := o.cache.UpsertBatch(ctx, plan.series.ID, fresh); err != nil {
			slog.Warn("write-back failed", "series_id", plan.series.ID, "error", err)
		}
		for _, obs := range fresh {
			if expected[obs.Period.Key()] {
				merged[obs.Period.Key()] = models.AnnotatedObservation{Observation: obs, Provenance: models.ProvenanceFetched}
			}
		}
	}

	var cacheHits, fetchedCount int
	for _, p := range plan.expected {
		if obs, ok := merged[p.Key()]; ok {
			res.Observations = append(res.Observations, obs)
			if obs.Provenance == models.ProvenanceCache {
				cacheHits++
			} else {
				fetchedCount++
			}
		} else {
			res.Gaps = append(res.Gaps, p)
		}
	}
	sort.Slice(res.Observations, func(i, j int) bool {
		return res.Observations[i].Period.Before(res.Observations[j].Period)
	})
	metrics.CacheObservations(string(models.ProvenanceCache), cacheHits)
	metrics.CacheObservations(string(models.ProvenanceFetched), fetchedCount)

	// A series we tried to fetch but got nothing back carries the fetch
	// diagnostic so the caller can tell a quota gap from missing history.
	if plan.needsFetch && !fetchedOK && fetchErr != nil {
		if errors.Is(fetchErr, quota.ErrExceeded) {
			res.Error = "daily upstream quota exceeded; data reported as gaps"
		} else {
			res.Error = fetchErr.Error()
		}
	}
	return res
}
