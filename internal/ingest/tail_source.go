package ingest

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/nxadm/tail"
)

// TailSource follows a combat-log file as the game appends to it, surviving
// truncation and rotation.
type TailSource struct {
	path           string
	fromStart      bool
	poll           bool
	logger         *slog.Logger
	lineBufferSize int
	errBufferSize  int
}

// TailOption configures a TailSource.
type TailOption func(*TailSource)

// WithReplayFromStart replays the whole file before following new writes.
// The default starts at the current end of file.
func WithReplayFromStart() TailOption {
	return func(s *TailSource) { s.fromStart = true }
}

// WithPolling uses filesystem polling instead of inotify. Needed on network
// mounts where change notification is unreliable.
func WithPolling() TailOption {
	return func(s *TailSource) { s.poll = true }
}

// WithTailLogger sets the logger for the source. A nil logger is ignored.
func WithTailLogger(logger *slog.Logger) TailOption {
	return func(s *TailSource) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTailBufferSizes sets the line and error channel buffer sizes.
func WithTailBufferSizes(lines, errs int) TailOption {
	return func(s *TailSource) {
		if lines >= 1 {
			s.lineBufferSize = lines
		}
		if errs >= 1 {
			s.errBufferSize = errs
		}
	}
}

// NewTailSource creates a TailSource for the file at path.
func NewTailSource(path string, opts ...TailOption) *TailSource {
	s := &TailSource{
		path:           path,
		logger:         slog.Default(),
		lineBufferSize: DefaultLineBufferSize,
		errBufferSize:  DefaultErrorBufferSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins following the file. Both channels close when ctx is
// cancelled.
func (s *TailSource) Start(ctx context.Context) (<-chan []string, <-chan error, error) {
	cfg := tail.Config{
		Follow: true,
		ReOpen: true,
		Poll:   s.poll,
		Logger: tail.DiscardingLogger,
	}
	if !s.fromStart {
		cfg.Location = &tail.SeekInfo{Whence: io.SeekEnd}
	}

	t, err := tail.TailFile(s.path, cfg)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("following combat log",
		"path", s.path,
		"from_start", s.fromStart,
	)

	lineCh := make(chan []string, s.lineBufferSize)
	errCh := make(chan error, s.errBufferSize)

	go func() {
		defer close(lineCh)
		defer close(errCh)
		defer t.Cleanup()

		go func() {
			<-ctx.Done()
			_ = t.Stop()
		}()

		for line := range t.Lines {
			if line.Err != nil {
				select {
				case errCh <- &ReadError{Line: line.Num, Err: line.Err}:
				case <-ctx.Done():
					return
				}
				continue
			}
			if strings.TrimSpace(line.Text) == "" {
				continue
			}

			fields, err := tokenizeLine(line.Text)
			if err != nil {
				select {
				case errCh <- &ReadError{Line: line.Num, Err: err}:
				case <-ctx.Done():
					return
				}
				continue
			}

			select {
			case lineCh <- fields:
			case <-ctx.Done():
				return
			}
		}
	}()

	return lineCh, errCh, nil
}

// tokenizeLine splits one raw log line with the same csv dialect the batch
// readers use.
func tokenizeLine(text string) ([]string, error) {
	return newRecordReader(strings.NewReader(text)).Read()
}
