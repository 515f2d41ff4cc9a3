package store

import (
	"context"
	"fmt"
)

// CurrentSchemaVersion is the current database schema version.
const CurrentSchemaVersion = 1

// migrate runs database migrations.
func (s *Store) migrate(ctx context.Context) error {
	if err := s.createEventsTable(ctx); err != nil {
		return err
	}
	if err := s.createParseFailuresTable(ctx); err != nil {
		return err
	}
	if err := s.createMetadataTable(ctx); err != nil {
		return err
	}
	return nil
}

func (s *Store) createEventsTable(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS events (
		id             INTEGER PRIMARY KEY,
		ts             TEXT NOT NULL,
		type           TEXT NOT NULL,
		source_name    TEXT,
		target_name    TEXT,
		spell_id       INTEGER,
		spell_name     TEXT,
		amount         INTEGER,
		critical       INTEGER NOT NULL DEFAULT 0,
		dedupe_key     TEXT NOT NULL,
		ingested_at    TEXT NOT NULL,
		schema_version INTEGER NOT NULL,
		UNIQUE(dedupe_key)
	);

	CREATE INDEX IF NOT EXISTS idx_events_ts ON events(ts);
	CREATE INDEX IF NOT EXISTS idx_events_type_ts ON events(type, ts);
	CREATE INDEX IF NOT EXISTS idx_events_ts_id ON events(ts, id);
	CREATE INDEX IF NOT EXISTS idx_events_source ON events(source_name);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create events table: %w", err)
	}
	return nil
}

func (s *Store) createParseFailuresTable(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS parse_failures (
		id         INTEGER PRIMARY KEY,
		ts         TEXT NOT NULL,
		raw_line   TEXT NOT NULL,
		error_msg  TEXT NOT NULL,
		dedupe_key TEXT NOT NULL,
		UNIQUE(dedupe_key)
	);

	CREATE INDEX IF NOT EXISTS idx_parse_failures_ts ON parse_failures(ts);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create parse_failures table: %w", err)
	}
	return nil
}

func (s *Store) createMetadataTable(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS metadata (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create metadata table: %w", err)
	}
	return nil
}
