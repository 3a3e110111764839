package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"laborstats/internal/models"
)

// observationColumns is the standard column list for observation queries.
const observationColumns = `series_id, period_key, value, footnotes, fetched_at`

// scanObservations scans rows into a slice of Observations, parsing the
// stored row key back into a Period.
func scanObservations(rows pgx.Rows) ([]models.Observation, error) {
	defer rows.Close()

	var observations []models.Observation
	for rows.Next() {
		var obs models.Observation
		var key string
		if err := rows.Scan(&obs.SeriesID, &key, &obs.Value, &obs.Footnotes, &obs.FetchedAt); err != nil {
			return nil, err
		}
		period, err := models.ParsePeriod(key)
		if err != nil {
			return nil, err
		}
		obs.Period = period
		observations = append(observations, obs)
	}

	return observations, rows.Err()
}

// GetRange retrieves cached observations for a series between from and to
// inclusive, ordered by period. The result may be a strict, partial, or
// empty subset of the range; absence of a period means unknown, never
// "known to be empty".
func (d *DB) GetRange(ctx context.Context, seriesID string, from, to models.Period) ([]models.Observation, error) {
	query := `
		SELECT ` + observationColumns + `
		FROM observations
		WHERE series_id = $1 AND period_key >= $2 AND period_key <= $3
		ORDER BY period_key ASC
	`
	rows, err := d.Pool.Query(ctx, query, seriesID, from.Key(), to.Key())
	if err != nil {
		return nil, err
	}
	return scanObservations(rows)
}

// UpsertBatch writes observations for one series partition. Writing the same
// (series, period) twice replaces the prior value, so refetches overwrite
// and never duplicate. Upserts to different series partitions do not
// interfere; within a partition the primary key serializes writers
// (last write wins per period).
func (d *DB) UpsertBatch(ctx context.Context, seriesID string, observations []models.Observation) error {
	if len(observations) == 0 {
		return nil
	}

	query := `
		INSERT INTO observations (series_id, period_key, value, footnotes, fetched_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (series_id, period_key)
		DO UPDATE SET value = EXCLUDED.value, footnotes = EXCLUDED.footnotes, fetched_at = EXCLUDED.fetched_at
	`

	batch := &pgx.Batch{}
	for _, obs := range observations {
		fetchedAt := obs.FetchedAt
		if fetchedAt.IsZero() {
			fetchedAt = time.Now().UTC()
		}
		batch.Queue(query, seriesID, obs.Period.Key(), obs.Value, obs.Footnotes, fetchedAt)
	}

	results := d.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for range observations {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// Coverage returns the subset of expected periods that are missing from the
// series partition, in period order. It drives gap computation in the
// orchestrator.
func (d *DB) Coverage(ctx context.Context, seriesID string, expected []models.Period) ([]models.Period, error) {
	if len(expected) == 0 {
		return nil, nil
	}

	from, to := expected[0], expected[0]
	for _, p := range expected[1:] {
		if p.Before(from) {
			from = p
		}
		if to.Before(p) {
			to = p
		}
	}

	query := `
		SELECT period_key
		FROM observations
		WHERE series_id = $1 AND period_key >= $2 AND period_key <= $3
	`
	rows, err := d.Pool.Query(ctx, query, seriesID, from.Key(), to.Key())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	present := make(map[string]struct{})
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		present[key] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var missing []models.Period
	for _, p := range expected {
		if _, ok := present[p.Key()]; !ok {
			missing = append(missing, p)
		}
	}
	return missing, nil
}

// OldestFetch returns the oldest fetched_at of the cached observations for a
// series within the range, or the zero time when nothing is cached. The
// freshness policy evaluates the whole cached window against this timestamp.
func (d *DB) OldestFetch(ctx context.Context, seriesID string, from, to models.Period) (time.Time, error) {
	query := `
		SELECT MIN(fetched_at)
		FROM observations
		WHERE series_id = $1 AND period_key >= $2 AND period_key <= $3
	`
	var oldest *time.Time
	if err := d.Pool.QueryRow(ctx, query, seriesID, from.Key(), to.Key()).Scan(&oldest); err != nil {
		return time.Time{}, err
	}
	if oldest == nil {
		return time.Time{}, nil
	}
	return *oldest, nil
}
