package sink

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emeraldwake/wowlog/internal/combatlog"
)

const missLine = `4/6 14:02:07.362  SWING_MISSED,Player-1335-0A264B4C,Sonike-Ysondre,0x514,0x0,` +
	`Creature-0-1469-2549-12530-209333-000011428A,Gnarlroot,0x10a48,0x0,MISS,1`

func parseLine(t *testing.T, line string) *combatlog.Event {
	t.Helper()
	parser := combatlog.NewParser(combatlog.WithYear(2024))
	ev, err := parser.Parse(strings.Split(line, ","))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return ev
}

func TestConsole(t *testing.T) {
	var out, errOut strings.Builder
	console := NewConsole(&out, &errOut)

	ev := parseLine(t, missLine)
	if err := console.HandleEvent(context.Background(), ev); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	line := out.String()
	for _, want := range []string{"SWING_MISSED", "Sonike-Ysondre", "Gnarlroot"} {
		if !strings.Contains(line, want) {
			t.Errorf("output %q missing %q", line, want)
		}
	}
	if errOut.Len() != 0 {
		t.Errorf("error writer got %q, want empty", errOut.String())
	}

	badFields := []string{"not a line"}
	if err := console.HandleParseFailure(context.Background(), badFields, &combatlog.FieldSplitError{Field: "not a line"}); err != nil {
		t.Fatalf("HandleParseFailure: %v", err)
	}
	if !strings.Contains(errOut.String(), "not a line") {
		t.Errorf("error output %q missing raw line", errOut.String())
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	goodPath := filepath.Join(dir, "good.txt")
	failedPath := filepath.Join(dir, "failed.txt")

	sink, err := NewFile(goodPath, failedPath)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	if err := sink.HandleEvent(context.Background(), parseLine(t, missLine)); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if err := sink.HandleParseFailure(context.Background(), []string{"garbage"}, &combatlog.FieldSplitError{Field: "garbage"}); err != nil {
		t.Fatalf("HandleParseFailure: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	good, err := os.ReadFile(goodPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(good), "SWING_MISSED") {
		t.Errorf("good file %q missing event", good)
	}

	failed, err := os.ReadFile(failedPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(failed), "garbage") {
		t.Errorf("failed file %q missing raw line", failed)
	}
}

func TestTally(t *testing.T) {
	sink := NewTally(nil)

	damageLine := `4/6 14:02:09.005  SPELL_DAMAGE,Player-1335-0A264B4C,Sonike-Ysondre,0x514,0x0,` +
		`Creature-0-1469-2549-12530-209333-000011428A,Gnarlroot,0x10a48,0x0,` +
		`32175,Chaos Strike,0x7f,Creature-0-1469-2549-12530-209333-000011428A,0000000000000000,` +
		`215973594,219066616,0,0,5043,0,3,0,100,0,3295.43,13209.26,2232,4.9095,73,` +
		`6727,4614,-1,32,0,0,0,nil,nil,nil`

	if err := sink.HandleEvent(context.Background(), parseLine(t, damageLine)); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	totals := sink.State().Totals()
	if len(totals) != 1 {
		t.Fatalf("totals = %d entries, want 1", len(totals))
	}
	if totals[0].Name != "Sonike-Ysondre" || totals[0].Damage != 6727 {
		t.Errorf("entry = %+v", totals[0])
	}

	// Failures never reach the tally.
	if err := sink.HandleParseFailure(context.Background(), []string{"bad"}, nil); err != nil {
		t.Fatalf("HandleParseFailure: %v", err)
	}
	if sink.State().SourceCount() != 1 {
		t.Errorf("source count changed after failure")
	}
}

func TestNull(t *testing.T) {
	var n Null
	if err := n.HandleEvent(context.Background(), parseLine(t, missLine)); err != nil {
		t.Errorf("HandleEvent: %v", err)
	}
	if err := n.HandleParseFailure(context.Background(), nil, nil); err != nil {
		t.Errorf("HandleParseFailure: %v", err)
	}
}
