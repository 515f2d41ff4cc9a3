package sink

import (
	"context"

	"github.com/emeraldwake/wowlog/internal/combatlog"
)

// Null discards everything. Useful for benchmarking the parse path.
type Null struct{}

func (Null) HandleEvent(context.Context, *combatlog.Event) error       { return nil }
func (Null) HandleParseFailure(context.Context, []string, error) error { return nil }
