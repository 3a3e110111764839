package bls

import "fmt"

// UpstreamErrorKind classifies upstream API failures.
type UpstreamErrorKind string

const (
	// Rejected: a non-retryable upstream refusal (4xx other than 429, or a
	// non-succeeded response status).
	Rejected UpstreamErrorKind = "rejected"
	// Transient: a network error or 5xx response; retried with bounded
	// backoff before surfacing.
	Transient UpstreamErrorKind = "transient"
)

// UpstreamError reports an upstream API failure after retry handling.
type UpstreamError struct {
	Kind       UpstreamErrorKind
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream %s: %s", e.Kind, e.Message)
}
