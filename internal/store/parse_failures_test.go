package store

import (
	"context"
	"os"
	"testing"
)

func TestInsertParseFailure(t *testing.T) {
	store := openTestStore(t)
	defer store.Close()

	ctx := context.Background()
	rawLine := `4/6 14:02:07.362  SWING_BOGUS,Player-1335-0A264B4C`
	errorMsg := "unknown event prefix SWING_BOGUS"

	// First insert should succeed
	inserted, err := store.InsertParseFailure(ctx, rawLine, errorMsg)
	if err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if !inserted {
		t.Error("first insert should return inserted=true")
	}

	// Second insert with same rawLine should be deduplicated
	inserted, err = store.InsertParseFailure(ctx, rawLine, errorMsg)
	if err != nil {
		t.Fatalf("second insert failed: %v", err)
	}
	if inserted {
		t.Error("second insert should return inserted=false (duplicate)")
	}

	count, err := store.CountParseFailures(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestInsertParseFailure_DifferentLines(t *testing.T) {
	store := openTestStore(t)
	defer store.Close()

	ctx := context.Background()

	lines := []string{
		"garbage line 1",
		"garbage line 2",
		"garbage line 3",
	}

	for _, line := range lines {
		inserted, err := store.InsertParseFailure(ctx, line, "error")
		if err != nil {
			t.Fatalf("insert failed for %q: %v", line, err)
		}
		if !inserted {
			t.Errorf("insert should return inserted=true for %q", line)
		}
	}

	count, err := store.CountParseFailures(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 rows, got %d", count)
	}
}

func TestInsertParseFailure_Validation(t *testing.T) {
	store := openTestStore(t)
	defer store.Close()

	// Empty rawLine should fail
	if _, err := store.InsertParseFailure(context.Background(), "", "error"); err == nil {
		t.Error("expected error for empty rawLine")
	}
}

func TestInsertParseFailure_EmptyErrorMsg(t *testing.T) {
	store := openTestStore(t)
	defer store.Close()

	// Empty error message should be allowed
	inserted, err := store.InsertParseFailure(context.Background(), "some line", "")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if !inserted {
		t.Error("insert should succeed with empty error message")
	}
}

func TestSha256Hex(t *testing.T) {
	// Test deterministic hashing
	input := "test input"
	hash1 := sha256Hex(input)
	hash2 := sha256Hex(input)

	if hash1 != hash2 {
		t.Errorf("sha256Hex is not deterministic: %s != %s", hash1, hash2)
	}

	// Test expected length (64 hex chars for 256 bits)
	if len(hash1) != 64 {
		t.Errorf("expected hash length 64, got %d", len(hash1))
	}

	// Test different inputs produce different hashes
	hash3 := sha256Hex("different input")
	if hash1 == hash3 {
		t.Error("different inputs should produce different hashes")
	}
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
