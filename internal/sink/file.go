package sink

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/emeraldwake/wowlog/internal/combatlog"
)

// File writes event summaries to one file and failed raw lines to another.
// Writes are buffered; call Close to flush.
type File struct {
	mu        sync.Mutex
	good      *os.File
	failed    *os.File
	goodBuf   *bufio.Writer
	failedBuf *bufio.Writer
}

// NewFile creates a file sink writing to the two given paths. Existing
// content is truncated.
func NewFile(goodPath, failedPath string) (*File, error) {
	good, err := os.Create(goodPath)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", goodPath, err)
	}
	failed, err := os.Create(failedPath)
	if err != nil {
		good.Close()
		return nil, fmt.Errorf("create %s: %w", failedPath, err)
	}
	return &File{
		good:      good,
		failed:    failed,
		goodBuf:   bufio.NewWriter(good),
		failedBuf: bufio.NewWriter(failed),
	}, nil
}

// HandleEvent writes one summary line to the good file.
func (f *File) HandleEvent(_ context.Context, ev *combatlog.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := fmt.Fprintln(f.goodBuf, summarize(ev))
	return err
}

// HandleParseFailure writes the raw line and its error to the failed file.
func (f *File) HandleParseFailure(_ context.Context, fields []string, parseErr error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := fmt.Fprintf(f.failedBuf, "%s\t%v\n", strings.Join(fields, ","), parseErr)
	return err
}

// Close flushes buffers and closes both files.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var firstErr error
	for _, flush := range []func() error{f.goodBuf.Flush, f.failedBuf.Flush, f.good.Close, f.failed.Close} {
		if err := flush(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
