package sink

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/emeraldwake/wowlog/internal/combatlog"
)

// Console writes event summaries to one writer and parse failures to
// another, typically stdout and stderr. Safe for concurrent use.
type Console struct {
	mu  sync.Mutex
	out io.Writer
	err io.Writer
}

// NewConsole creates a console sink.
func NewConsole(out, errOut io.Writer) *Console {
	return &Console{out: out, err: errOut}
}

// HandleEvent writes one summary line.
func (c *Console) HandleEvent(_ context.Context, ev *combatlog.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintln(c.out, summarize(ev))
	return err
}

// HandleParseFailure writes the raw line and its error.
func (c *Console) HandleParseFailure(_ context.Context, fields []string, parseErr error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.err, "parse failure: %v: %s\n", parseErr, strings.Join(fields, ","))
	return err
}
