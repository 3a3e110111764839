// Package quota tracks the daily upstream request budget. The counter is
// keyed by UTC day, so the day boundary reset is implicit: a new day starts
// a new counter. Admission is check-and-increment, atomic across concurrent
// callers, and the cap is enforced rather than merely observed.
package quota

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrExceeded is returned when an admission would exceed the daily cap.
var ErrExceeded = errors.New("daily request quota exceeded")

// Store is a daily request counter. Reserve atomically admits one request
// for the given UTC day if fewer than cap have been admitted, returning the
// new count; it returns ErrExceeded without incrementing otherwise.
type Store interface {
	Reserve(ctx context.Context, day string, cap int) (int, error)
	Usage(ctx context.Context, day string) (int, error)
}

// Day formats a time as the UTC day key.
func Day(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// MemoryStore is an in-process Store. It does not survive restarts; use the
// Postgres-backed store when the host is ephemeral across invocations.
type MemoryStore struct {
	mu   sync.Mutex
	day  string
	used int
}

// NewMemoryStore returns an empty in-process counter.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Reserve admits one request for day, resetting the counter when the day
// key advances.
func (s *MemoryStore) Reserve(_ context.Context, day string, cap int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.day != day {
		s.day = day
		s.used = 0
	}
	if s.used >= cap {
		return s.used, ErrExceeded
	}
	s.used++
	return s.used, nil
}

// Usage reports how many requests have been admitted for day.
func (s *MemoryStore) Usage(_ context.Context, day string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.day != day {
		return 0, nil
	}
	return s.used, nil
}
