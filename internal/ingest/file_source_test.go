package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleLog = `4/6 14:01:52.697  ZONE_CHANGE,2549,"Amirdrassil, the Dream's Hope",14
4/6 14:02:07.362  SWING_MISSED,Player-1335-0A264B4C,Sonike-Ysondre,0x514,0x0,Creature-0-1469-2549-12530-209333-000011428A,Gnarlroot,0x10a48,0x0,MISS,1
`

func collectLines(t *testing.T, source LineSource) [][]string {
	t.Helper()
	lines, errs, err := source.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	var out [][]string
	for lines != nil || errs != nil {
		select {
		case fields, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			out = append(out, fields)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			t.Fatalf("unexpected source error: %v", err)
		}
	}
	return out
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "WoWCombatLog.txt")
	if err := os.WriteFile(path, []byte(sampleLog), 0o644); err != nil {
		t.Fatal(err)
	}

	records := collectLines(t, NewFileSource(path))
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}

	// The quoted zone name keeps its internal comma.
	if got := records[0][2]; got != "Amirdrassil, the Dream's Hope" {
		t.Errorf("zone name = %q, want quoted value intact", got)
	}
	if got := len(records[1]); got != 11 {
		t.Errorf("swing record fields = %d, want 11", got)
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	_, _, err := NewFileSource(filepath.Join(t.TempDir(), "absent.txt")).Start(context.Background())
	if err == nil {
		t.Fatal("Start() error = nil, want open failure")
	}
}

func TestReaderSource(t *testing.T) {
	records := collectLines(t, NewReaderSource(strings.NewReader(sampleLog)))
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if got := records[1][0]; got != "4/6 14:02:07.362  SWING_MISSED" {
		t.Errorf("first field = %q", got)
	}
}

func TestTokenizeLine(t *testing.T) {
	fields, err := tokenizeLine(`4/6 14:01:52.697  ZONE_CHANGE,2549,"Amirdrassil, the Dream's Hope",14`)
	if err != nil {
		t.Fatalf("tokenizeLine() error = %v", err)
	}
	if len(fields) != 4 {
		t.Fatalf("fields = %d, want 4", len(fields))
	}
}
