package resolver

import (
	"errors"
	"testing"

	"laborstats/internal/models"
)

func TestResolveStateIdentity(t *testing.T) {
	// Every input form referring to the same place must yield the same FIPS
	// and therefore byte-identical series IDs.
	tests := []struct {
		name   string
		inputs []string
		fips   string
	}{
		{"ohio", []string{"Ohio", "ohio", "OH", "oh", "39"}, "39"},
		{"california", []string{"California", "CA", "06", "6"}, "06"},
		{"district of columbia", []string{"District of Columbia", "DC", "11"}, "11"},
		{"puerto rico", []string{"Puerto Rico", "PR", "72"}, "72"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, input := range tt.inputs {
				fips, _, ok := ResolveState(input)
				if !ok {
					t.Fatalf("ResolveState(%q) failed", input)
				}
				if fips != tt.fips {
					t.Errorf("ResolveState(%q) fips = %q, want %q", input, fips, tt.fips)
				}
				ids = append(ids, BuildStateSeriesID(fips, "03", false))
			}
			for _, id := range ids[1:] {
				if id != ids[0] {
					t.Errorf("series ids differ across input forms: %q vs %q", ids[0], id)
				}
			}
		})
	}
}

func TestResolveStateUnknown(t *testing.T) {
	for _, input := range []string{"", "Atlantis", "XX", "99", "123"} {
		if _, _, ok := ResolveState(input); ok {
			t.Errorf("ResolveState(%q) = ok, want failure", input)
		}
	}
}

func TestBuildSeriesIDs(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"state adjusted", BuildStateSeriesID("39", "03", true), "LASST390000000000003"},
		{"state unadjusted", BuildStateSeriesID("39", "03", false), "LAUST390000000000003"},
		{"state labor force", BuildStateSeriesID("06", "06", true), "LASST060000000000006"},
		{"county", BuildCountySeriesID("39049", "03"), "LAUCN390490000000003"},
		{"county employment", BuildCountySeriesID("06037", "05"), "LAUCN060370000000005"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
			if len(tt.got) != 20 {
				t.Errorf("series id %q length = %d, want 20", tt.got, len(tt.got))
			}
		})
	}
}

func TestResolveQueries(t *testing.T) {
	r := New(nil)

	tests := []struct {
		name      string
		query     models.Query
		wantID    string
		wantGeo   models.GeographyKind
		wantError ResolutionErrorKind
	}{
		{
			name:    "national indicator",
			query:   models.Query{Indicator: "unemployment-rate"},
			wantID:  "LNS14000000",
			wantGeo: models.GeographyNational,
		},
		{
			name:    "indicator is case-insensitive",
			query:   models.Query{Indicator: " Unemployment-Rate "},
			wantID:  "LNS14000000",
			wantGeo: models.GeographyNational,
		},
		{
			name:    "state by name with default measure",
			query:   models.Query{Geography: "Ohio"},
			wantID:  "LAUST390000000000003",
			wantGeo: models.GeographyState,
		},
		{
			name:    "state seasonally adjusted",
			query:   models.Query{Geography: "OH", Seasonal: true},
			wantID:  "LASST390000000000003",
			wantGeo: models.GeographyState,
		},
		{
			name:    "state labor force by fips",
			query:   models.Query{Geography: "39", Measure: "labor-force"},
			wantID:  "LAUST390000000000006",
			wantGeo: models.GeographyState,
		},
		{
			name:    "county by fips",
			query:   models.Query{Geography: "39049"},
			wantID:  "LAUCN390490000000003",
			wantGeo: models.GeographyCounty,
		},
		{
			name:      "unknown indicator",
			query:     models.Query{Indicator: "gdp-growth"},
			wantError: UnknownIndicator,
		},
		{
			name:      "unknown geography",
			query:     models.Query{Geography: "Atlantis"},
			wantError: UnknownGeography,
		},
		{
			name:      "unknown measure",
			query:     models.Query{Geography: "Ohio", Measure: "happiness"},
			wantError: UnknownMeasure,
		},
		{
			name:      "empty query",
			query:     models.Query{},
			wantError: EmptyQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := r.Resolve(tt.query)
			if tt.wantError != "" {
				var resErr *ResolutionError
				if !errors.As(err, &resErr) {
					t.Fatalf("Resolve() error = %v, want ResolutionError", err)
				}
				if resErr.Kind != tt.wantError {
					t.Errorf("Resolve() error kind = %q, want %q", resErr.Kind, tt.wantError)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if series.ID != tt.wantID {
				t.Errorf("Resolve() series id = %q, want %q", series.ID, tt.wantID)
			}
			if series.Geography != tt.wantGeo {
				t.Errorf("Resolve() geography = %q, want %q", series.Geography, tt.wantGeo)
			}
		})
	}
}

func TestCatalogExtras(t *testing.T) {
	r := New(map[string]Indicator{
		"real-earnings": {SeriesID: "CES0500000032", Title: "Real Average Hourly Earnings"},
	})

	series, err := r.Resolve(models.Query{Indicator: "real-earnings"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if series.ID != "CES0500000032" {
		t.Errorf("Resolve() series id = %q, want CES0500000032", series.ID)
	}
}

func TestIndicatorsAndStates(t *testing.T) {
	r := New(nil)

	indicators := r.Indicators()
	if len(indicators) != 36 {
		t.Errorf("Indicators() length = %d, want 36", len(indicators))
	}
	for i := 1; i < len(indicators); i++ {
		if indicators[i-1].Key >= indicators[i].Key {
			t.Errorf("Indicators() not sorted at %d: %q >= %q", i, indicators[i-1].Key, indicators[i].Key)
		}
	}

	states := r.States()
	if len(states) != 52 {
		t.Errorf("States() length = %d, want 52", len(states))
	}

	matches := r.SearchIndicators("unemployment")
	if len(matches) == 0 {
		t.Error("SearchIndicators(unemployment) returned nothing")
	}
	for _, m := range matches {
		if m.SeriesID == "" {
			t.Errorf("search result %q missing series id", m.Key)
		}
	}
}
