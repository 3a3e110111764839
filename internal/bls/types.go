package bls

// request is the upstream request payload: a list of series IDs plus a year
// range, and the registration key on the keyed tier.
type request struct {
	SeriesID        []string `json:"seriesid"`
	StartYear       string   `json:"startyear"`
	EndYear         string   `json:"endyear"`
	RegistrationKey string   `json:"registrationkey,omitempty"`
}

// response is the upstream response envelope.
type response struct {
	Status  string   `json:"status"`
	Message []string `json:"message"`
	Results struct {
		Series []responseSeries `json:"series"`
	} `json:"Results"`
}

type responseSeries struct {
	SeriesID string          `json:"seriesID"`
	Data     []responsePoint `json:"data"`
}

type responsePoint struct {
	Year      string             `json:"year"`
	Period    string             `json:"period"`
	Value     string             `json:"value"`
	Footnotes []responseFootnote `json:"footnotes"`
}

type responseFootnote struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

const statusSucceeded = "REQUEST_SUCCEEDED"
