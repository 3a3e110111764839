package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"laborstats/internal/quota"
)

var (
	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "laborstats_upstream_requests_total",
			Help: "Upstream API calls by tier and outcome",
		},
		[]string{"tier", "outcome"},
	)

	cacheObservations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "laborstats_cache_observations_total",
			Help: "Observations served from cache vs freshly fetched",
		},
		[]string{"provenance"},
	)

	queriesHandled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "laborstats_queries_total",
			Help: "Orchestrated query calls handled",
		},
	)

	quotaUsedDesc = prometheus.NewDesc(
		"laborstats_quota_used_today",
		"Upstream requests used today by tier",
		[]string{"tier"},
		nil,
	)

	quotaCapDesc = prometheus.NewDesc(
		"laborstats_quota_daily_cap",
		"Daily upstream request cap by tier",
		[]string{"tier"},
		nil,
	)
)

// QuotaCollector is a custom Prometheus collector that reads today's quota
// usage from the store on each scrape.
type QuotaCollector struct {
	store    quota.Store
	tierName string
	dailyCap int
}

// Describe sends the metric descriptors to the channel.
func (c *QuotaCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- quotaUsedDesc
	ch <- quotaCapDesc
}

// Collect queries the quota store for today's usage and emits it.
func (c *QuotaCollector) Collect(ch chan<- prometheus.Metric) {
	used, err := c.store.Usage(context.Background(), quota.Day(time.Now()))
	if err != nil {
		slog.Error("failed to collect quota metrics", "error", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(quotaUsedDesc, prometheus.GaugeValue, float64(used), c.tierName)
	ch <- prometheus.MustNewConstMetric(quotaCapDesc, prometheus.GaugeValue, float64(c.dailyCap), c.tierName)
}

var initOnce sync.Once

// Init registers the counters and the quota collector.
// Must be called once at startup.
func Init(store quota.Store, tierName string, dailyCap int) {
	initOnce.Do(func() {
		prometheus.MustRegister(upstreamRequests, cacheObservations, queriesHandled)
		prometheus.MustRegister(&QuotaCollector{store: store, tierName: tierName, dailyCap: dailyCap})
	})
}

// UpstreamRequest records one upstream call attempt outcome.
func UpstreamRequest(tier, outcome string) {
	upstreamRequests.WithLabelValues(tier, outcome).Inc()
}

// CacheObservations records n observations served with the given provenance.
func CacheObservations(provenance string, n int) {
	if n > 0 {
		cacheObservations.WithLabelValues(provenance).Add(float64(n))
	}
}

// QueryHandled records one orchestrated query call.
func QueryHandled() {
	queriesHandled.Inc()
}
