// Package freshness decides whether a series' cached window is still usable
// or must be refetched. Staleness is evaluated per series, not per
// observation: upstream responses cover whole time ranges, so a series'
// cached window is refreshed as a unit.
package freshness

import (
	"time"

	"laborstats/internal/models"
)

// Window is the cadence interval plus a grace period absorbing the source's
// typical publication lag. Both are configuration, not computed.
type Window struct {
	Interval time.Duration
	Grace    time.Duration
}

// Policy maps each cadence to its freshness window.
type Policy struct {
	windows map[models.Cadence]Window
}

// DefaultWindows are the publication windows used when the config overlay
// does not override them.
var DefaultWindows = map[models.Cadence]Window{
	models.CadenceMonthly:   {Interval: 30 * 24 * time.Hour, Grace: 5 * 24 * time.Hour},
	models.CadenceQuarterly: {Interval: 91 * 24 * time.Hour, Grace: 14 * 24 * time.Hour},
	models.CadenceAnnual:    {Interval: 365 * 24 * time.Hour, Grace: 30 * 24 * time.Hour},
}

// NewPolicy builds a policy from per-cadence windows. Cadences missing from
// the map fall back to the default windows.
func NewPolicy(windows map[models.Cadence]Window) *Policy {
	merged := make(map[models.Cadence]Window, len(DefaultWindows))
	for cadence, w := range DefaultWindows {
		merged[cadence] = w
	}
	for cadence, w := range windows {
		merged[cadence] = w
	}
	return &Policy{windows: merged}
}

// IsFresh reports whether a cached window fetched at fetchedAt is still
// valid at now for a series with the given cadence. A zero fetchedAt (no
// cached data) is never fresh.
func (p *Policy) IsFresh(cadence models.Cadence, fetchedAt, now time.Time) bool {
	if fetchedAt.IsZero() {
		return false
	}
	w, ok := p.windows[cadence]
	if !ok {
		w = DefaultWindows[models.CadenceMonthly]
	}
	return now.Sub(fetchedAt) < w.Interval+w.Grace
}
