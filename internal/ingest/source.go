// Package ingest feeds tokenized combat-log lines from files, live-tailed
// files, or arbitrary readers into the parser and fans the results out to
// sinks.
package ingest

import "context"

// Default buffer sizes for channels.
const (
	DefaultLineBufferSize  = 256
	DefaultErrorBufferSize = 16
)

// LineSource abstracts line production for testing.
// Implementations close both channels when ctx is cancelled or the source
// is exhausted. The error channel may receive multiple non-fatal errors
// during operation.
type LineSource interface {
	Start(ctx context.Context) (<-chan []string, <-chan error, error)
}

// ReadError wraps a tokenizer failure with the position it occurred at.
type ReadError struct {
	Line int
	Err  error
}

func (e *ReadError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "read error"
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
