package sink

import (
	"context"

	"github.com/emeraldwake/wowlog/internal/combatlog"
	"github.com/emeraldwake/wowlog/internal/tally"
)

// Tally feeds events into a damage accumulation state. Parse failures are
// ignored; a bad line cannot contribute damage.
type Tally struct {
	state *tally.State
}

// NewTally creates a tally sink around the given state. A nil state gets a
// fresh one.
func NewTally(state *tally.State) *Tally {
	if state == nil {
		state = tally.New()
	}
	return &Tally{state: state}
}

// State exposes the underlying accumulation state for reporting.
func (t *Tally) State() *tally.State {
	return t.state
}

func (t *Tally) HandleEvent(_ context.Context, ev *combatlog.Event) error {
	t.state.Update(ev)
	return nil
}

func (t *Tally) HandleParseFailure(context.Context, []string, error) error {
	return nil
}
