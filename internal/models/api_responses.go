package models

// IndicatorInfo describes one entry of the national indicator catalog.
type IndicatorInfo struct {
	Key      string `json:"key"`
	SeriesID string `json:"series_id"`
	Title    string `json:"title"`
}

// StateInfo describes one state with its FIPS code and an example LAUS
// series ID.
type StateInfo struct {
	State           string `json:"state"`
	Abbreviation    string `json:"abbreviation"`
	FIPS            string `json:"fips"`
	ExampleSeriesID string `json:"example_series_id"`
}

// QuotaInfo reports current upstream quota usage.
type QuotaInfo struct {
	Tier     string `json:"tier"`
	Day      string `json:"day"`
	Used     int    `json:"used"`
	DailyCap int    `json:"daily_cap"`
}
