package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/emeraldwake/wowlog/internal/combatlog"
)

// Record is the flattened, persisted form of a combat event. The full
// payload tree is not stored; the row keeps the fields the query surface
// needs (type, actors, spell, amount).
type Record struct {
	ID         int64
	Ts         time.Time
	Type       string
	SourceName *string
	TargetName *string
	SpellID    *uint64
	SpellName  *string
	Amount     *int64
	Critical   bool
	DedupeKey  string
	IngestedAt time.Time
}

// NewRecord flattens a parsed event into its persisted form. The dedupe key
// is derived from the row content, so replaying the same log file inserts
// each line once.
func NewRecord(ev *combatlog.Event) *Record {
	r := &Record{
		Ts:         ev.Timestamp,
		IngestedAt: time.Now(),
	}

	switch payload := ev.Payload.(type) {
	case combatlog.StandardPayload:
		r.Type = payload.Name
		if payload.Source != nil {
			r.SourceName = &payload.Source.Name
		}
		if payload.Target != nil {
			r.TargetName = &payload.Target.Name
		}
		if spell := payloadSpell(payload.Prefix); spell != nil {
			r.SpellID = &spell.ID
			r.SpellName = &spell.Name
		}
		r.Amount, r.Critical = payloadAmount(payload.Suffix)
	case combatlog.SpecialPayload:
		r.Type = payload.Name
	}

	r.DedupeKey = sha256Hex(r.canonical())
	return r
}

// payloadSpell extracts the spell identity a prefix carries, if any.
func payloadSpell(prefix combatlog.Prefix) *combatlog.SpellInfo {
	switch p := prefix.(type) {
	case combatlog.RangePrefix:
		return &p.Spell
	case combatlog.SpellPrefix:
		return p.Spell
	case combatlog.SpellPeriodicPrefix:
		return &p.Spell
	case combatlog.SpellBuildingPrefix:
		return &p.Spell
	default:
		return nil
	}
}

// payloadAmount extracts the primary magnitude of a suffix, if any.
func payloadAmount(suffix combatlog.Suffix) (*int64, bool) {
	switch sfx := suffix.(type) {
	case combatlog.DamageSuffix:
		amount := int64(sfx.Amount)
		return &amount, sfx.Critical
	case combatlog.DamageLandedSuffix:
		amount := int64(sfx.Amount)
		return &amount, sfx.Critical
	case combatlog.HealSuffix:
		amount := int64(sfx.Amount)
		return &amount, sfx.Critical
	case combatlog.AbsorbedSuffix:
		amount := sfx.AbsorbedAmount
		return &amount, sfx.Critical
	case combatlog.EnergizeSuffix:
		amount := int64(sfx.Amount)
		return &amount, false
	default:
		return nil, false
	}
}

// canonical builds the string the dedupe key hashes. Field order is fixed;
// changing it invalidates existing keys.
func (r *Record) canonical() string {
	parts := []string{
		r.Ts.UTC().Format(TimeFormat),
		r.Type,
		deref(r.SourceName),
		deref(r.TargetName),
	}
	if r.SpellID != nil {
		parts = append(parts, strconv.FormatUint(*r.SpellID, 10))
	}
	if r.Amount != nil {
		parts = append(parts, strconv.FormatInt(*r.Amount, 10))
	}
	return strings.Join(parts, "|")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// eventRow is the internal type representing a database row.
type eventRow struct {
	ID            int64
	Ts            string
	Type          string
	SourceName    sql.NullString
	TargetName    sql.NullString
	SpellID       sql.NullInt64
	SpellName     sql.NullString
	Amount        sql.NullInt64
	Critical      bool
	DedupeKey     string
	IngestedAt    string
	SchemaVersion int
}

// toRecord converts a database row to a Record.
func (r *eventRow) toRecord() (*Record, error) {
	ts, err := time.Parse(TimeFormat, r.Ts)
	if err != nil {
		return nil, fmt.Errorf("parse ts %q: %w", r.Ts, err)
	}

	ingestedAt, err := time.Parse(TimeFormat, r.IngestedAt)
	if err != nil {
		return nil, fmt.Errorf("parse ingested_at %q: %w", r.IngestedAt, err)
	}

	rec := &Record{
		ID:         r.ID,
		Ts:         ts,
		Type:       r.Type,
		Critical:   r.Critical,
		DedupeKey:  r.DedupeKey,
		IngestedAt: ingestedAt,
	}

	if r.SourceName.Valid {
		rec.SourceName = &r.SourceName.String
	}
	if r.TargetName.Valid {
		rec.TargetName = &r.TargetName.String
	}
	if r.SpellID.Valid {
		id := uint64(r.SpellID.Int64)
		rec.SpellID = &id
	}
	if r.SpellName.Valid {
		rec.SpellName = &r.SpellName.String
	}
	if r.Amount.Valid {
		rec.Amount = &r.Amount.Int64
	}

	return rec, nil
}

// recordToRow converts a Record to a database row.
func recordToRow(rec *Record) *eventRow {
	r := &eventRow{
		ID:            rec.ID,
		Ts:            rec.Ts.UTC().Format(TimeFormat),
		Type:          rec.Type,
		Critical:      rec.Critical,
		DedupeKey:     rec.DedupeKey,
		IngestedAt:    rec.IngestedAt.UTC().Format(TimeFormat),
		SchemaVersion: CurrentSchemaVersion,
	}

	if rec.SourceName != nil {
		r.SourceName = sql.NullString{String: *rec.SourceName, Valid: true}
	}
	if rec.TargetName != nil {
		r.TargetName = sql.NullString{String: *rec.TargetName, Valid: true}
	}
	if rec.SpellID != nil {
		r.SpellID = sql.NullInt64{Int64: int64(*rec.SpellID), Valid: true}
	}
	if rec.SpellName != nil {
		r.SpellName = sql.NullString{String: *rec.SpellName, Valid: true}
	}
	if rec.Amount != nil {
		r.Amount = sql.NullInt64{Int64: *rec.Amount, Valid: true}
	}

	return r
}

// validateRecord checks that required fields are set.
func validateRecord(rec *Record) error {
	if rec.Type == "" {
		return fmt.Errorf("%w: type is required", ErrInvalidRecord)
	}
	if rec.DedupeKey == "" {
		return fmt.Errorf("%w: dedupe_key is required", ErrInvalidRecord)
	}
	if rec.Ts.IsZero() {
		return fmt.Errorf("%w: ts is required", ErrInvalidRecord)
	}
	if rec.IngestedAt.IsZero() {
		return fmt.Errorf("%w: ingested_at is required", ErrInvalidRecord)
	}
	return nil
}
