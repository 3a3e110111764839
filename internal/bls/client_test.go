package bls

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"laborstats/internal/quota"
)

// newTestServer returns a server that echoes one data point per requested
// series, plus the call counter.
func newTestServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("malformed request payload: %v", err)
		}
		writeSeriesResponse(w, req.SeriesID)
	}))
	t.Cleanup(ts.Close)
	return ts, &calls
}

func writeSeriesResponse(w http.ResponseWriter, seriesIDs []string) {
	var series []map[string]any
	for _, id := range seriesIDs {
		series = append(series, map[string]any{
			"seriesID": id,
			"data": []map[string]any{
				{"year": "2022", "period": "M01", "value": "3.4", "footnotes": []map[string]string{{"text": "preliminary"}}},
				{"year": "2022", "period": "M02", "value": "-", "footnotes": []map[string]string{}},
			},
		})
	}
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "REQUEST_SUCCEEDED",
		"Results": map[string]any{"series": series},
	})
}

func newTestClient(url string, apiKey string, store quota.Store, maxInFlight int) *Client {
	c := New(Options{APIKey: apiKey, Quota: store, BaseURL: url, MaxInFlight: maxInFlight})
	c.backoffBase = time.Millisecond
	return c
}

func TestTierSelection(t *testing.T) {
	if tier := TierFor(""); tier.Name != "unkeyed" || tier.MaxSeriesBatch != 25 || tier.DailyCap != 25 {
		t.Errorf("TierFor(\"\") = %+v, want unkeyed 25/25", tier)
	}
	if tier := TierFor("secret"); tier.Name != "keyed" || tier.MaxSeriesBatch != 50 || tier.DailyCap != 500 {
		t.Errorf("TierFor(key) = %+v, want keyed 50/500", tier)
	}
}

func TestFetchBatching(t *testing.T) {
	ts, calls := newTestServer(t)
	c := newTestClient(ts.URL, "", quota.NewMemoryStore(), 2)

	// 30 series on the unkeyed tier (batch limit 25) means two upstream calls.
	ids := make([]string, 30)
	for i := range ids {
		ids[i] = fmt.Sprintf("LNS14%09d", i)
	}

	results, err := c.Fetch(t.Context(), ids, 2022, 2022)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("upstream calls = %d, want 2", got)
	}
	if len(results) != 30 {
		t.Errorf("fetched series = %d, want 30", len(results))
	}
	for id, observations := range results {
		// The "-" value point is skipped during parsing.
		if len(observations) != 1 {
			t.Fatalf("series %s observations = %d, want 1", id, len(observations))
		}
		obs := observations[0]
		if obs.Period.Key() != "2022M01" || obs.Value != 3.4 || obs.Footnotes != "preliminary" {
			t.Errorf("unexpected observation %+v", obs)
		}
	}
}

func TestQuotaEnforcement(t *testing.T) {
	ts, calls := newTestServer(t)
	store := quota.NewMemoryStore()
	c := newTestClient(ts.URL, "", store, 1)

	// Exhaust the daily cap before the fetch.
	day := quota.Day(time.Now())
	for i := 0; i < c.tier.DailyCap; i++ {
		if _, err := store.Reserve(t.Context(), day, c.tier.DailyCap); err != nil {
			t.Fatalf("Reserve() #%d error = %v", i, err)
		}
	}

	results, err := c.Fetch(t.Context(), []string{"LNS14000000"}, 2022, 2022)
	if !errors.Is(err, quota.ErrExceeded) {
		t.Errorf("Fetch() error = %v, want ErrExceeded", err)
	}
	if len(results) != 0 {
		t.Errorf("fetched series = %d, want 0", len(results))
	}
	if got := calls.Load(); got != 0 {
		t.Errorf("upstream calls = %d, want 0 (no network I/O past the cap)", got)
	}
}

func TestTooManyRequestsAbortsRemainingBatches(t *testing.T) {
	var calls atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, "", quota.NewMemoryStore(), 1)

	ids := make([]string, 30) // two batches on the unkeyed tier
	for i := range ids {
		ids[i] = fmt.Sprintf("LNS14%09d", i)
	}

	_, err := c.Fetch(t.Context(), ids, 2022, 2022)
	if !errors.Is(err, quota.ErrExceeded) {
		t.Errorf("Fetch() error = %v, want ErrExceeded", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1 (429 aborts un-issued batches)", got)
	}
}

func TestTransientRetry(t *testing.T) {
	var calls atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeSeriesResponse(w, []string{"LNS14000000"})
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, "", quota.NewMemoryStore(), 1)

	results, err := c.Fetch(t.Context(), []string{"LNS14000000"}, 2022, 2022)
	if err != nil {
		t.Fatalf("Fetch() after retries error = %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("upstream calls = %d, want 3 (two retries)", got)
	}
	if len(results["LNS14000000"]) == 0 {
		t.Error("expected observations after successful retry")
	}
}

func TestTransientRetryExhausted(t *testing.T) {
	var calls atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, "", quota.NewMemoryStore(), 1)

	_, err := c.Fetch(t.Context(), []string{"LNS14000000"}, 2022, 2022)
	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) || upstreamErr.Kind != Transient {
		t.Fatalf("Fetch() error = %v, want transient UpstreamError", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("upstream calls = %d, want 3 (bounded retries)", got)
	}
}

func TestRejectedNotRetried(t *testing.T) {
	var calls atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, "", quota.NewMemoryStore(), 1)

	_, err := c.Fetch(t.Context(), []string{"LNS14000000"}, 2022, 2022)
	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) || upstreamErr.Kind != Rejected {
		t.Fatalf("Fetch() error = %v, want rejected UpstreamError", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1 (4xx is not retried)", got)
	}
}

func TestStatusNotSucceededIsRejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "REQUEST_NOT_PROCESSED",
			"message": []string{"invalid series"},
		})
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, "", quota.NewMemoryStore(), 1)

	_, err := c.Fetch(t.Context(), []string{"BOGUS"}, 2022, 2022)
	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) || upstreamErr.Kind != Rejected {
		t.Fatalf("Fetch() error = %v, want rejected UpstreamError", err)
	}
}

func TestRegistrationKeyInPayload(t *testing.T) {
	var gotKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		json.NewDecoder(r.Body).Decode(&req)
		gotKey = req.RegistrationKey
		writeSeriesResponse(w, req.SeriesID)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, "secret", quota.NewMemoryStore(), 1)
	if c.Tier().Name != "keyed" {
		t.Fatalf("tier = %q, want keyed", c.Tier().Name)
	}

	if _, err := c.Fetch(t.Context(), []string{"LNS14000000"}, 2022, 2022); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if gotKey != "secret" {
		t.Errorf("registration key = %q, want %q", gotKey, "secret")
	}
}
