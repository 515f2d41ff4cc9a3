package store

import (
	"context"
	"database/sql"
	"time"
)

// BasicStats holds aggregated statistics for a time period.
type BasicStats struct {
	EventCount        int      `json:"event_count"`
	DamageEventCount  int      `json:"damage_event_count"`
	HealEventCount    int      `json:"heal_event_count"`
	ParseFailureCount int64    `json:"parse_failure_count"`
	RecentSources     []string `json:"recent_sources"`
	LastEventAt       *string  `json:"last_event_at,omitempty"`
}

// GetBasicStats retrieves basic statistics for the specified time range.
func (s *Store) GetBasicStats(ctx context.Context, since, until time.Time) (*BasicStats, error) {
	stats := &BasicStats{
		RecentSources: []string{},
	}

	sinceStr := since.UTC().Format(TimeFormat)
	untilStr := until.UTC().Format(TimeFormat)

	// Get aggregated counts in a single query
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) AS event_count,
			COALESCE(SUM(CASE WHEN type LIKE '%_DAMAGE' THEN 1 ELSE 0 END), 0) AS damage_count,
			COALESCE(SUM(CASE WHEN type LIKE '%_HEAL' THEN 1 ELSE 0 END), 0) AS heal_count
		FROM events
		WHERE ts >= ? AND ts < ?
	`, sinceStr, untilStr).
		Scan(&stats.EventCount, &stats.DamageEventCount, &stats.HealEventCount)
	if err != nil {
		return nil, err
	}

	failureCount, err := s.CountParseFailures(ctx)
	if err != nil {
		return nil, err
	}
	stats.ParseFailureCount = failureCount

	// Get recent unique damage sources (last 5 seen)
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT source_name FROM events
		WHERE source_name IS NOT NULL AND source_name != ''
		ORDER BY ts DESC
		LIMIT 5
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		stats.RecentSources = append(stats.RecentSources, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Get last event timestamp
	var lastTs sql.NullString
	err = s.db.QueryRowContext(ctx, `
		SELECT ts FROM events
		ORDER BY ts DESC, id DESC
		LIMIT 1
	`).Scan(&lastTs)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if lastTs.Valid {
		stats.LastEventAt = &lastTs.String
	}

	return stats, nil
}

// GetTodayBoundary returns the start and end times for "today" in local time.
func GetTodayBoundary() (since, until time.Time) {
	now := time.Now()
	y, m, d := now.Date()
	loc := now.Location()
	since = time.Date(y, m, d, 0, 0, 0, 0, loc)
	until = since.AddDate(0, 0, 1)
	return since, until
}
