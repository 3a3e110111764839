// Package bls is the quota-aware client for the BLS public timeseries API.
// The access tier (unkeyed v1 vs keyed v2) is selected once at construction
// from credential presence; requests are batched to the tier's per-request
// series limit and admitted against the daily request budget before any
// network I/O happens.
package bls

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"laborstats/internal/metrics"
	"laborstats/internal/models"
	"laborstats/internal/quota"
)

// Client fetches observations from the upstream API. It does not touch the
// observation cache; write-back is the orchestrator's job.
type Client struct {
	tier        Tier
	apiKey      string
	client      *http.Client
	quota       quota.Store
	maxInFlight int
	maxAttempts int
	backoffBase time.Duration
	now         func() time.Time
}

// Options configures a Client.
type Options struct {
	// APIKey selects the keyed tier when non-empty.
	APIKey string
	// Quota is the daily request counter; required.
	Quota quota.Store
	// MaxInFlight bounds concurrent upstream calls within one Fetch.
	// Defaults to 4.
	MaxInFlight int
	// BaseURL overrides the tier URL (tests, proxies).
	BaseURL string
	// HTTPClient defaults to a client with a 30s timeout.
	HTTPClient *http.Client
}

// New creates a client. Tier selection happens here, not per call.
func New(opts Options) *Client {
	tier := TierFor(opts.APIKey)
	if opts.BaseURL != "" {
		tier.URL = opts.BaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	maxInFlight := opts.MaxInFlight
	if maxInFlight <= 0 {
		maxInFlight = 4
	}
	slog.Info("BLS client initialized",
		"tier", tier.Name, "batch_size", tier.MaxSeriesBatch, "daily_cap", tier.DailyCap)
	return &Client{
		tier:        tier,
		apiKey:      opts.APIKey,
		client:      httpClient,
		quota:       opts.Quota,
		maxInFlight: maxInFlight,
		maxAttempts: 3,
		backoffBase: 500 * time.Millisecond,
		now:         time.Now,
	}
}

// Tier returns the tier selected at construction.
func (c *Client) Tier() Tier {
	return c.tier
}

// Fetch retrieves observations for the given series over a year range.
// Series IDs are partitioned into tier-sized batches, fanned out bounded by
// the in-flight limit, and each batch is admitted against the daily quota
// before its network call. On quota exhaustion the remaining un-issued
// batches fail fast; batches already fetched are kept, so the returned map
// may be partial alongside a non-nil error.
func (c *Client) Fetch(ctx context.Context, seriesIDs []string, startYear, endYear int) (map[string][]models.Observation, error) {
	if len(seriesIDs) == 0 {
		return map[string][]models.Observation{}, nil
	}

	var batches [][]string
	for start := 0; start < len(seriesIDs); start += c.tier.MaxSeriesBatch {
		end := min(start+c.tier.MaxSeriesBatch, len(seriesIDs))
		batches = append(batches, seriesIDs[start:end])
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		results   = make(map[string][]models.Observation)
		exhausted atomic.Bool
		fetchErr  error
	)
	sem := make(chan struct{}, c.maxInFlight)

	for _, batch := range batches {
		wg.Add(1)
		go func(batch []string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if exhausted.Load() {
				return
			}
			if _, err := c.quota.Reserve(ctx, quota.Day(c.now()), c.tier.DailyCap); err != nil {
				if errors.Is(err, quota.ErrExceeded) {
					exhausted.Store(true)
					metrics.UpstreamRequest(c.tier.Name, "quota_exceeded")
					return
				}
				mu.Lock()
				if fetchErr == nil {
					fetchErr = fmt.Errorf("quota admission: %w", err)
				}
				mu.Unlock()
				return
			}

			fetched, err := c.fetchBatch(ctx, batch, startYear, endYear)
			if err != nil {
				if errors.Is(err, quota.ErrExceeded) {
					exhausted.Store(true)
					return
				}
				mu.Lock()
				if fetchErr == nil {
					fetchErr = err
				}
				mu.Unlock()
				return
			}

			mu.Lock()
			for id, observations := range fetched {
				results[id] = observations
			}
			mu.Unlock()
		}(batch)
	}
	wg.Wait()

	if exhausted.Load() {
		return results, quota.ErrExceeded
	}
	return results, fetchErr
}

// fetchBatch issues one upstream call with bounded exponential backoff on
// transient failures. A 429 response signals quota exhaustion for the whole
// Fetch; other 4xx responses are not retried.
func (c *Client) fetchBatch(ctx context.Context, seriesIDs []string, startYear, endYear int) (map[string][]models.Observation, error) {
	payload, err := json.Marshal(request{
		SeriesID:        seriesIDs,
		StartYear:       strconv.Itoa(startYear),
		EndYear:         strconv.Itoa(endYear),
		RegistrationKey: c.apiKey,
	})
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := c.backoffBase << (attempt - 1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		parsed, err := c.doRequest(ctx, payload)
		if err == nil {
			metrics.UpstreamRequest(c.tier.Name, "success")
			return parsed, nil
		}

		var upstreamErr *UpstreamError
		if errors.As(err, &upstreamErr) && upstreamErr.Kind == Transient {
			lastErr = err
			metrics.UpstreamRequest(c.tier.Name, "transient_error")
			slog.Warn("transient upstream failure, retrying",
				"attempt", attempt+1, "series_count", len(seriesIDs), "error", err)
			continue
		}
		if errors.Is(err, quota.ErrExceeded) {
			metrics.UpstreamRequest(c.tier.Name, "quota_exceeded")
		} else {
			metrics.UpstreamRequest(c.tier.Name, "rejected")
		}
		return nil, err
	}
	return nil, lastErr
}

func (c *Client) doRequest(ctx context.Context, payload []byte) (map[string][]models.Observation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tier.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Kind: Transient, Message: err.Error()}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		io.Copy(io.Discard, resp.Body)
		return nil, quota.ErrExceeded
	case resp.StatusCode >= 500:
		io.Copy(io.Discard, resp.Body)
		return nil, &UpstreamError{Kind: Transient, StatusCode: resp.StatusCode, Message: resp.Status}
	case resp.StatusCode >= 400:
		io.Copy(io.Discard, resp.Body)
		return nil, &UpstreamError{Kind: Rejected, StatusCode: resp.StatusCode, Message: resp.Status}
	}

	var envelope response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, &UpstreamError{Kind: Transient, Message: "malformed response: " + err.Error()}
	}
	if envelope.Status != statusSucceeded {
		return nil, &UpstreamError{Kind: Rejected, Message: envelope.Status + ": " + strings.Join(envelope.Message, "; ")}
	}

	return c.parseSeries(envelope), nil
}

// parseSeries converts the response envelope into observations. Points with
// unparseable values (the source publishes "-" for unavailable cells) are
// skipped rather than surfaced as errors.
func (c *Client) parseSeries(envelope response) map[string][]models.Observation {
	fetchedAt := c.now().UTC()
	out := make(map[string][]models.Observation, len(envelope.Results.Series))
	for _, series := range envelope.Results.Series {
		var observations []models.Observation
		for _, point := range series.Data {
			period, err := models.ParsePeriod(point.Year + point.Period)
			if err != nil {
				slog.Warn("skipping point with invalid period",
					"series_id", series.SeriesID, "year", point.Year, "period", point.Period)
				continue
			}
			value, err := strconv.ParseFloat(point.Value, 64)
			if err != nil {
				continue
			}
			var notes []string
			for _, fn := range point.Footnotes {
				if fn.Text != "" {
					notes = append(notes, fn.Text)
				}
			}
			observations = append(observations, models.Observation{
				SeriesID:  series.SeriesID,
				Period:    period,
				Value:     value,
				Footnotes: strings.Join(notes, ", "),
				FetchedAt: fetchedAt,
			})
		}
		out[series.SeriesID] = observations
	}
	return out
}
