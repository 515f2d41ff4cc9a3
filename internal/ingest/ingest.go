package ingest

import (
	"context"
	"errors"
	"log/slog"

	"github.com/emeraldwake/wowlog/internal/combatlog"
)

// EventSink consumes parse results. Implementations must tolerate being
// called from a single goroutine in line order.
type EventSink interface {
	HandleEvent(ctx context.Context, ev *combatlog.Event) error
	HandleParseFailure(ctx context.Context, fields []string, parseErr error) error
}

// Ingester pulls tokenized lines from a source, parses them, and fans the
// results out to sinks. A malformed line never stops the stream.
type Ingester struct {
	source LineSource
	parser *combatlog.Parser
	sinks  []EventSink
	logger *slog.Logger
}

// Option configures an Ingester.
type Option func(*Ingester)

// WithLogger sets the logger for the Ingester.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Ingester) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithParser sets the parser. Without it a default parser is used.
func WithParser(parser *combatlog.Parser) Option {
	return func(i *Ingester) {
		if parser != nil {
			i.parser = parser
		}
	}
}

// New creates an Ingester feeding the given sinks.
func New(source LineSource, sinks []EventSink, opts ...Option) *Ingester {
	i := &Ingester{
		source: source,
		parser: combatlog.NewParser(),
		sinks:  sinks,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run starts the ingestion loop. Blocks until ctx is cancelled or the
// source closes. Returns ctx.Err() on cancellation, nil on clean source
// shutdown.
func (i *Ingester) Run(ctx context.Context) error {
	lines, errs, err := i.source.Start(ctx)
	if err != nil {
		return err
	}
	if lines == nil || errs == nil {
		return errors.New("source returned nil channel")
	}

	i.logger.Info("ingestion started")
	defer i.logger.Info("ingestion stopped")

	// Nil-channel pattern: nil each channel when closed, exit when both
	// are nil.
	for lines != nil || errs != nil {
		select {
		case fields, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			i.handleLine(ctx, fields)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			i.logger.Warn("source error", "error", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// handleLine parses one line and routes the result.
func (i *Ingester) handleLine(ctx context.Context, fields []string) {
	event, err := i.parser.Parse(fields)
	if err != nil {
		i.dispatchFailure(ctx, fields, err)
		return
	}
	for _, sink := range i.sinks {
		if err := sink.HandleEvent(ctx, event); err != nil {
			i.logger.Error("sink rejected event", "error", err)
		}
	}
}

// dispatchFailure routes a parse failure to every sink. The innermost cause
// is what sinks record; the raw fields travel alongside.
func (i *Ingester) dispatchFailure(ctx context.Context, fields []string, parseErr error) {
	var lineErr *combatlog.LineError
	if errors.As(parseErr, &lineErr) {
		parseErr = lineErr.Err
	}
	for _, sink := range i.sinks {
		if err := sink.HandleParseFailure(ctx, fields, parseErr); err != nil {
			i.logger.Error("sink rejected parse failure", "error", err)
		}
	}
}
