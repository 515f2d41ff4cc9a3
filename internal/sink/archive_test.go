package sink

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/emeraldwake/wowlog/internal/combatlog"
	"github.com/emeraldwake/wowlog/internal/store"
)

func openArchive(t *testing.T) (*Archive, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "archive.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewArchive(st, nil), st
}

func TestArchiveHandleEvent(t *testing.T) {
	archive, st := openArchive(t)
	ctx := context.Background()

	ev := parseLine(t, missLine)
	if err := archive.HandleEvent(ctx, ev); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	// Replaying the same line is not an error and not a second row.
	if err := archive.HandleEvent(ctx, ev); err != nil {
		t.Fatalf("HandleEvent replay: %v", err)
	}

	count, err := st.CountRecords(ctx)
	if err != nil {
		t.Fatalf("CountRecords: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	result, err := st.QueryRecords(ctx, store.QueryFilter{})
	if err != nil {
		t.Fatalf("QueryRecords: %v", err)
	}
	rec := result.Items[0]
	if rec.Type != "SWING_MISSED" {
		t.Errorf("type = %q, want SWING_MISSED", rec.Type)
	}
	wantTs := time.Date(2024, 4, 6, 14, 2, 7, 362000000, time.UTC)
	if !rec.Ts.Equal(wantTs) {
		t.Errorf("ts = %v, want %v", rec.Ts, wantTs)
	}
}

func TestArchiveHandleParseFailure(t *testing.T) {
	archive, st := openArchive(t)
	ctx := context.Background()

	fields := []string{"garbage line"}
	parseErr := &combatlog.FieldSplitError{Field: "garbage line"}
	if err := archive.HandleParseFailure(ctx, fields, parseErr); err != nil {
		t.Fatalf("HandleParseFailure: %v", err)
	}

	count, err := st.CountParseFailures(ctx)
	if err != nil {
		t.Fatalf("CountParseFailures: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
