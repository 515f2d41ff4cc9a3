package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
)

// FileSource reads a complete combat-log file and emits one tokenized
// record per line.
type FileSource struct {
	path           string
	logger         *slog.Logger
	lineBufferSize int
	errBufferSize  int
}

// SourceOption configures a line source.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	logger         *slog.Logger
	lineBufferSize int
	errBufferSize  int
}

// WithSourceLogger sets the logger for the source. A nil logger is ignored
// and the default logger is retained.
func WithSourceLogger(logger *slog.Logger) SourceOption {
	return func(c *sourceConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLineBufferSize sets the line channel buffer size.
func WithLineBufferSize(size int) SourceOption {
	return func(c *sourceConfig) { c.lineBufferSize = size }
}

// WithErrorBufferSize sets the error channel buffer size.
func WithErrorBufferSize(size int) SourceOption {
	return func(c *sourceConfig) { c.errBufferSize = size }
}

func newSourceConfig(opts []SourceOption) sourceConfig {
	c := sourceConfig{
		logger:         slog.Default(),
		lineBufferSize: DefaultLineBufferSize,
		errBufferSize:  DefaultErrorBufferSize,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.lineBufferSize < 1 {
		c.lineBufferSize = 1
	}
	if c.errBufferSize < 1 {
		c.errBufferSize = 1
	}
	return c
}

// NewFileSource creates a FileSource for the file at path.
func NewFileSource(path string, opts ...SourceOption) *FileSource {
	c := newSourceConfig(opts)
	return &FileSource{
		path:           path,
		logger:         c.logger,
		lineBufferSize: c.lineBufferSize,
		errBufferSize:  c.errBufferSize,
	}
}

// Start begins reading the file. Both channels close at EOF or when ctx is
// cancelled.
func (s *FileSource) Start(ctx context.Context) (<-chan []string, <-chan error, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("reading combat log", "path", s.path)

	lineCh := make(chan []string, s.lineBufferSize)
	errCh := make(chan error, s.errBufferSize)

	go func() {
		defer close(lineCh)
		defer close(errCh)
		defer f.Close()
		pumpRecords(ctx, f, lineCh, errCh)
	}()

	return lineCh, errCh, nil
}

// ReaderSource emits tokenized records from an arbitrary reader, typically
// standard input.
type ReaderSource struct {
	r              io.Reader
	lineBufferSize int
	errBufferSize  int
}

// NewReaderSource creates a ReaderSource wrapping r.
func NewReaderSource(r io.Reader, opts ...SourceOption) *ReaderSource {
	c := newSourceConfig(opts)
	return &ReaderSource{
		r:              r,
		lineBufferSize: c.lineBufferSize,
		errBufferSize:  c.errBufferSize,
	}
}

// Start begins reading. Both channels close at EOF or when ctx is cancelled.
func (s *ReaderSource) Start(ctx context.Context) (<-chan []string, <-chan error, error) {
	lineCh := make(chan []string, s.lineBufferSize)
	errCh := make(chan error, s.errBufferSize)

	go func() {
		defer close(lineCh)
		defer close(errCh)
		pumpRecords(ctx, s.r, lineCh, errCh)
	}()

	return lineCh, errCh, nil
}

// newRecordReader builds a csv reader tuned for the combat-log dialect:
// variable field counts per record and unescaped quotes inside names.
func newRecordReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false
	return cr
}

// pumpRecords streams csv records into lineCh until EOF, a cancelled ctx,
// or an unrecoverable reader failure. Per-record tokenizer failures go to
// errCh and reading continues.
func pumpRecords(ctx context.Context, r io.Reader, lineCh chan<- []string, errCh chan<- error) {
	cr := newRecordReader(r)
	lineNum := 0
	for {
		record, err := cr.Read()
		lineNum++
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			select {
			case errCh <- &ReadError{Line: lineNum, Err: err}:
			case <-ctx.Done():
				return
			}
			continue
		}
		select {
		case lineCh <- record:
		case <-ctx.Done():
			return
		}
	}
}
