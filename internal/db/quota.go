package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"laborstats/internal/quota"
)

// QuotaStore is the durable, Postgres-backed daily request counter. The row
// is keyed by UTC day, so the counter survives process restarts and resets
// exactly once when the day boundary advances.
type QuotaStore struct {
	db *DB
}

// NewQuotaStore returns a quota store backed by this database.
func NewQuotaStore(database *DB) *QuotaStore {
	return &QuotaStore{db: database}
}

// Reserve atomically admits one request for day if fewer than cap have been
// admitted. The single conditional upsert makes check-and-increment atomic
// across concurrent callers; when the cap is reached no row is returned and
// the counter is left untouched.
func (s *QuotaStore) Reserve(ctx context.Context, day string, cap int) (int, error) {
	query := `
		INSERT INTO quota_usage (day, used) VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET used = quota_usage.used + 1
		WHERE quota_usage.used < $2
		RETURNING used
	`
	var used int
	err := s.db.Pool.QueryRow(ctx, query, day, cap).Scan(&used)
	if errors.Is(err, pgx.ErrNoRows) {
		return cap, quota.ErrExceeded
	}
	if err != nil {
		return 0, err
	}
	return used, nil
}

// Usage reports how many requests have been admitted for day.
func (s *QuotaStore) Usage(ctx context.Context, day string) (int, error) {
	var used int
	err := s.db.Pool.QueryRow(ctx, `SELECT used FROM quota_usage WHERE day = $1`, day).Scan(&used)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return used, nil
}
