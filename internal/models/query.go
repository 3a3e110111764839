package models

import "github.com/google/uuid"

// Query describes one logical series request: either a pre-registered
// national indicator key, or a geography (state/county by name, abbreviation,
// or FIPS code) plus a LAUS measure.
type Query struct {
	Indicator string `json:"indicator,omitempty"`
	Geography string `json:"geography,omitempty"`
	Measure   string `json:"measure,omitempty"`
	// Seasonal selects seasonally adjusted state series when true.
	// County series are never seasonally adjusted.
	Seasonal bool `json:"seasonally_adjusted,omitempty"`
}

// SeriesResult is the outcome for one requested series within a query:
// the merged observations with provenance, any periods that could not be
// filled, and a per-series error when resolution or fetching failed.
type SeriesResult struct {
	Query        Query                  `json:"query"`
	Series       *Series                `json:"series,omitempty"`
	Observations []AnnotatedObservation `json:"observations,omitempty"`
	Gaps         []Period               `json:"gaps,omitempty"`
	Error        string                 `json:"error,omitempty"`
}

// QueryResult is the full result of one orchestrated query call. Partial
// failures never abort the call; each affected series carries its own error
// or gap markers instead.
type QueryResult struct {
	RequestID uuid.UUID      `json:"request_id"`
	StartYear int            `json:"start_year"`
	EndYear   int            `json:"end_year"`
	Results   []SeriesResult `json:"results"`
}
