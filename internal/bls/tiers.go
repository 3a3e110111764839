package bls

// API endpoints. v2 requires a registration key; v1 is public but more
// limited.
const (
	APIV1URL = "https://api.bls.gov/publicAPI/v1/timeseries/data/"
	APIV2URL = "https://api.bls.gov/publicAPI/v2/timeseries/data/"
)

// Tier is one access level of the upstream API, with its per-request batch
// size and daily request cap.
type Tier struct {
	Name           string
	URL            string
	MaxSeriesBatch int
	DailyCap       int
}

var (
	// TierUnkeyed is the public v1 tier.
	TierUnkeyed = Tier{Name: "unkeyed", URL: APIV1URL, MaxSeriesBatch: 25, DailyCap: 25}
	// TierKeyed is the registered v2 tier.
	TierKeyed = Tier{Name: "keyed", URL: APIV2URL, MaxSeriesBatch: 50, DailyCap: 500}
)

// TierFor selects the tier for a credential. Selection happens once at
// client construction, not per call.
func TierFor(apiKey string) Tier {
	if apiKey != "" {
		return TierKeyed
	}
	return TierUnkeyed
}
