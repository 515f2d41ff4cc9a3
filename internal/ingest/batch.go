package ingest

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/emeraldwake/wowlog/internal/combatlog"
)

// Result is the outcome of parsing one line. Exactly one of Event and Err
// is set.
type Result struct {
	Fields []string
	Event  *combatlog.Event
	Err    error
}

// ParseBatch parses a slice of tokenized lines in parallel. Lines carry no
// cross-line dependency, so the work is a data-parallel map; results come
// back in input order. workers <= 0 means one worker per CPU.
func ParseBatch(ctx context.Context, parser *combatlog.Parser, lines [][]string, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, len(lines))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for idx, fields := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		idx, fields := idx, fields
		g.Go(func() error {
			event, err := parser.Parse(fields)
			results[idx] = Result{Fields: fields, Event: event, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
