package sink

import (
	"context"
	"log/slog"
	"strings"

	"github.com/emeraldwake/wowlog/internal/combatlog"
	"github.com/emeraldwake/wowlog/internal/store"
)

// Archive persists events and parse failures to a SQLite store. Duplicate
// lines are silently skipped by the store's dedupe key.
type Archive struct {
	store  *store.Store
	logger *slog.Logger
}

// NewArchive creates an archive sink. A nil logger falls back to the
// default.
func NewArchive(st *store.Store, logger *slog.Logger) *Archive {
	if logger == nil {
		logger = slog.Default()
	}
	return &Archive{store: st, logger: logger}
}

// HandleEvent flattens and inserts one event.
func (a *Archive) HandleEvent(ctx context.Context, ev *combatlog.Event) error {
	rec := store.NewRecord(ev)
	_, inserted, err := a.store.InsertRecord(ctx, rec)
	if err != nil {
		return err
	}
	if !inserted {
		a.logger.Debug("duplicate event skipped", "type", rec.Type, "ts", rec.Ts)
	}
	return nil
}

// HandleParseFailure records the raw line and its error.
func (a *Archive) HandleParseFailure(ctx context.Context, fields []string, parseErr error) error {
	_, err := a.store.InsertParseFailure(ctx, strings.Join(fields, ","), parseErr.Error())
	return err
}
