package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"laborstats/internal/quota"
	"laborstats/internal/resolver"
)

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("failed to decode envelope: %v (%s)", err, body)
	}
	return env
}

func TestIndicatorsEndpoint(t *testing.T) {
	app := fiber.New()
	handler := NewCatalogHandler(resolver.New(nil))
	app.Get("/api/indicators", handler.Indicators)

	req, _ := http.NewRequest("GET", "/api/indicators", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp)
	if env.Status != "ok" {
		t.Fatalf("envelope status = %q, want ok", env.Status)
	}
	var indicators []struct {
		Key      string `json:"key"`
		SeriesID string `json:"series_id"`
	}
	if err := json.Unmarshal(env.Data, &indicators); err != nil {
		t.Fatalf("failed to decode indicators: %v", err)
	}
	if len(indicators) != 36 {
		t.Errorf("indicators = %d, want 36", len(indicators))
	}
}

func TestIndicatorsSearch(t *testing.T) {
	app := fiber.New()
	handler := NewCatalogHandler(resolver.New(nil))
	app.Get("/api/indicators", handler.Indicators)

	req, _ := http.NewRequest("GET", "/api/indicators?q=unemployment", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	env := decodeEnvelope(t, resp)
	var indicators []struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(env.Data, &indicators); err != nil {
		t.Fatalf("failed to decode indicators: %v", err)
	}
	if len(indicators) == 0 {
		t.Fatal("search returned no indicators")
	}
	for _, ind := range indicators {
		if !strings.Contains(strings.ToLower(ind.Key), "unemploy") {
			t.Errorf("unexpected search hit %q", ind.Key)
		}
	}
}

func TestStatesEndpoint(t *testing.T) {
	app := fiber.New()
	handler := NewCatalogHandler(resolver.New(nil))
	app.Get("/api/states", handler.States)

	req, _ := http.NewRequest("GET", "/api/states", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	env := decodeEnvelope(t, resp)
	var states []struct {
		State string `json:"state"`
		FIPS  string `json:"fips"`
	}
	if err := json.Unmarshal(env.Data, &states); err != nil {
		t.Fatalf("failed to decode states: %v", err)
	}
	if len(states) != 52 {
		t.Errorf("states = %d, want 52 (50 states + DC + PR)", len(states))
	}
}

func TestQuotaEndpoint(t *testing.T) {
	store := quota.NewMemoryStore()
	day := quota.Day(time.Now())
	for i := 0; i < 3; i++ {
		if _, err := store.Reserve(context.Background(), day, 25); err != nil {
			t.Fatalf("Reserve() error = %v", err)
		}
	}

	app := fiber.New()
	handler := NewQuotaHandler(store, "unkeyed", 25)
	app.Get("/api/quota", handler.Show)

	req, _ := http.NewRequest("GET", "/api/quota", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	env := decodeEnvelope(t, resp)
	var info struct {
		Tier     string `json:"tier"`
		Used     int    `json:"used"`
		DailyCap int    `json:"daily_cap"`
	}
	if err := json.Unmarshal(env.Data, &info); err != nil {
		t.Fatalf("failed to decode quota info: %v", err)
	}
	if info.Tier != "unkeyed" || info.Used != 3 || info.DailyCap != 25 {
		t.Errorf("quota info = %+v, want unkeyed 3/25", info)
	}
}

func TestQueryValidation(t *testing.T) {
	// Validation failures return before the orchestrator is touched.
	app := fiber.New()
	handler := NewQueryHandler(nil)
	app.Post("/api/query", handler.Query)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"queries": [`},
		{"no queries", `{"queries": []}`},
		{"inverted year range", `{"queries": [{"indicator": "unemployment-rate"}], "start_year": 2022, "end_year": 2020}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("POST", "/api/query", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != 400 {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if env := decodeEnvelope(t, resp); env.Error == "" {
				t.Error("error envelope should carry a message")
			}
		})
	}
}
