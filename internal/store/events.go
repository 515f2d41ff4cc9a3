package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

// InsertRecord inserts a flattened event into the database.
// Returns the inserted ID if successful, or 0 if the record was a duplicate.
// Uses ON CONFLICT(dedupe_key) DO NOTHING for deduplication.
// On success, sets rec.ID to the inserted row's ID.
func (s *Store) InsertRecord(ctx context.Context, rec *Record) (id int64, inserted bool, err error) {
	if err := validateRecord(rec); err != nil {
		return 0, false, err
	}

	const query = `
	INSERT INTO events
	(ts, type, source_name, target_name, spell_id, spell_name, amount, critical, dedupe_key, ingested_at, schema_version)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(dedupe_key) DO NOTHING
	`

	row := recordToRow(rec)
	result, err := s.db.ExecContext(ctx, query,
		row.Ts,
		row.Type,
		row.SourceName,
		row.TargetName,
		row.SpellID,
		row.SpellName,
		row.Amount,
		row.Critical,
		row.DedupeKey,
		row.IngestedAt,
		row.SchemaVersion,
	)
	if err != nil {
		return 0, false, fmt.Errorf("insert record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("rows affected: %w", err)
	}

	if rowsAffected > 0 {
		id, err = result.LastInsertId()
		if err != nil {
			return 0, false, fmt.Errorf("last insert id: %w", err)
		}
		rec.ID = id
		return id, true, nil
	}

	return 0, false, nil
}

// QueryFilter contains filter options for querying records.
type QueryFilter struct {
	Since  *time.Time
	Until  *time.Time
	Type   *string
	Source *string
	Limit  int
	Cursor *string
}

// QueryResult contains the result of a query.
type QueryResult struct {
	Items      []Record
	NextCursor *string
}

// QueryRecords queries records with optional filters and cursor-based pagination.
func (s *Store) QueryRecords(ctx context.Context, f QueryFilter) (QueryResult, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultLimit
	} else if limit > maxLimit {
		limit = maxLimit
	}

	var (
		sb   strings.Builder
		args []any
	)

	sb.WriteString(`
SELECT id, ts, type, source_name, target_name, spell_id, spell_name, amount, critical, dedupe_key, ingested_at, schema_version
FROM events
WHERE 1=1
`)

	if f.Since != nil {
		sb.WriteString(" AND ts >= ?")
		args = append(args, f.Since.UTC().Format(TimeFormat))
	}
	if f.Until != nil {
		sb.WriteString(" AND ts < ?")
		args = append(args, f.Until.UTC().Format(TimeFormat))
	}
	if f.Type != nil && *f.Type != "" {
		sb.WriteString(" AND type = ?")
		args = append(args, *f.Type)
	}
	if f.Source != nil && *f.Source != "" {
		sb.WriteString(" AND source_name = ?")
		args = append(args, *f.Source)
	}

	// Cursor handling (composite cursor: ts|id)
	if f.Cursor != nil && *f.Cursor != "" {
		cursorTime, cursorID, err := decodeCursor(*f.Cursor)
		if err != nil {
			return QueryResult{}, fmt.Errorf("decode cursor: %w", err)
		}
		sb.WriteString(" AND (ts > ? OR (ts = ? AND id > ?))")
		cursorTimeStr := cursorTime.UTC().Format(TimeFormat)
		args = append(args, cursorTimeStr, cursorTimeStr, cursorID)
	}

	sb.WriteString(" ORDER BY ts ASC, id ASC")
	sb.WriteString(" LIMIT ?")
	args = append(args, limit+1) // fetch one extra to detect next page

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return QueryResult{}, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	items := make([]Record, 0, limit+1)
	for rows.Next() {
		var r eventRow
		if err := rows.Scan(
			&r.ID, &r.Ts, &r.Type, &r.SourceName, &r.TargetName,
			&r.SpellID, &r.SpellName, &r.Amount, &r.Critical,
			&r.DedupeKey, &r.IngestedAt, &r.SchemaVersion,
		); err != nil {
			return QueryResult{}, fmt.Errorf("scan record: %w", err)
		}
		rec, err := r.toRecord()
		if err != nil {
			return QueryResult{}, err
		}
		items = append(items, *rec)
	}
	if err := rows.Err(); err != nil {
		return QueryResult{}, fmt.Errorf("rows error: %w", err)
	}

	var nextCursor *string
	if len(items) > limit {
		last := items[limit-1]
		items = items[:limit]
		c := encodeCursor(last.Ts, last.ID)
		nextCursor = &c
	}

	return QueryResult{Items: items, NextCursor: nextCursor}, nil
}

// DamageTotal holds a per-source damage aggregate.
type DamageTotal struct {
	SourceName string
	Total      int64
	Hits       int64
}

// DamageTotals aggregates damage amounts per source over a time range,
// highest total first.
func (s *Store) DamageTotals(ctx context.Context, since, until time.Time) ([]DamageTotal, error) {
	const query = `
	SELECT source_name, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS hits
	FROM events
	WHERE type LIKE '%_DAMAGE'
	  AND source_name IS NOT NULL
	  AND amount IS NOT NULL
	  AND ts >= ? AND ts < ?
	GROUP BY source_name
	ORDER BY total DESC, source_name ASC
	`

	rows, err := s.db.QueryContext(ctx, query,
		since.UTC().Format(TimeFormat), until.UTC().Format(TimeFormat))
	if err != nil {
		return nil, fmt.Errorf("damage totals: %w", err)
	}
	defer rows.Close()

	var totals []DamageTotal
	for rows.Next() {
		var t DamageTotal
		if err := rows.Scan(&t.SourceName, &t.Total, &t.Hits); err != nil {
			return nil, fmt.Errorf("scan damage total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return totals, nil
}

// GetLastEventTime returns the timestamp of the most recent record.
// Returns zero time if no records exist.
func (s *Store) GetLastEventTime(ctx context.Context) (time.Time, error) {
	const query = `SELECT ts FROM events ORDER BY ts DESC, id DESC LIMIT 1`

	var ts string
	err := s.db.QueryRowContext(ctx, query).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("get last event time: %w", err)
	}

	t, err := time.Parse(TimeFormat, ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", ts, err)
	}

	return t, nil
}

// CountRecords returns the total number of records in the database.
func (s *Store) CountRecords(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM events`

	var count int64
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}
