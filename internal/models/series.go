package models

// GeographyKind is the geographic scope of a series.
type GeographyKind string

const (
	GeographyNational GeographyKind = "national"
	GeographyState    GeographyKind = "state"
	GeographyCounty   GeographyKind = "county"
)

// Series is the resolved identity of one measurable quantity. The canonical
// upstream series ID is the sole identity key; everything else is
// descriptive.
type Series struct {
	ID        string        `json:"series_id"`
	Title     string        `json:"title"`
	Geography GeographyKind `json:"geography"`
	Measure   string        `json:"measure,omitempty"`
	Cadence   Cadence       `json:"cadence"`
}
