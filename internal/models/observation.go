package models

import "time"

// Provenance records where an observation in a query result came from.
type Provenance string

const (
	ProvenanceCache   Provenance = "cache"
	ProvenanceFetched Provenance = "fetched"
)

// Observation is one data point of a series: the value published for a
// single (series, period) pair.
type Observation struct {
	SeriesID  string    `json:"series_id"`
	Period    Period    `json:"period"`
	Value     float64   `json:"value"`
	Footnotes string    `json:"footnotes,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// AnnotatedObservation is an observation in a query result, annotated with
// its provenance (served from cache vs freshly fetched).
type AnnotatedObservation struct {
	Observation
	Provenance Provenance `json:"provenance"`
}
