// Package main provides the entry point for wowlog, a combat log parser.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/emeraldwake/wowlog/internal/combatlog"
	"github.com/emeraldwake/wowlog/internal/config"
	"github.com/emeraldwake/wowlog/internal/ingest"
	"github.com/emeraldwake/wowlog/internal/singleinstance"
	"github.com/emeraldwake/wowlog/internal/sink"
	"github.com/emeraldwake/wowlog/internal/store"
	"github.com/emeraldwake/wowlog/internal/tally"
	"github.com/emeraldwake/wowlog/internal/version"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Flags override environment values.
	path := flag.String("path", cfg.LogPath, "combat log file to read, or - for stdin")
	mode := flag.String("mode", cfg.ReadMode, "read mode: process or watch")
	output := flag.String("output", cfg.OutputMode, "output mode: std, file or none")
	goodPath := flag.String("good", cfg.GoodPath, "output file for parsed events (file output)")
	failedPath := flag.String("failed", cfg.FailedPath, "output file for failed lines (file output)")
	year := flag.Int("year", cfg.Year, "year assumed for timestamps")
	dbPath := flag.String("db", cfg.DatabasePath, "SQLite archive path; 'auto' uses the data directory")
	tallyFlag := flag.Bool("tally", cfg.Tally, "print per-source damage totals at exit")
	fromStart := flag.Bool("from-start", cfg.FromStart, "watch mode: replay the file before following")
	poll := flag.Bool("poll", cfg.Poll, "watch mode: poll instead of using inotify")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("wowlog", version.String())
		return nil
	}

	cfg.LogPath = *path
	cfg.ReadMode = *mode
	cfg.OutputMode = *output
	cfg.GoodPath = *goodPath
	cfg.FailedPath = *failedPath
	cfg.Year = *year
	cfg.DatabasePath = *dbPath
	cfg.Tally = *tallyFlag
	cfg.FromStart = *fromStart
	cfg.Poll = *poll

	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.LogPath == "" {
		return errors.New("no combat log path given (flag -path or WOWLOG_PATH)")
	}
	if cfg.LogPath == "-" && cfg.ReadMode == config.ReadModeWatch {
		return errors.New("watch mode cannot read stdin")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// One watcher per archive keeps two instances from racing on the
	// database (Windows: mutex, other: no-op).
	if cfg.ReadMode == config.ReadModeWatch {
		release, ok, err := singleinstance.AcquireLock()
		if err != nil {
			return fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return errors.New("another instance is already running")
		}
		defer release()
	}

	source, err := buildSource(cfg, logger)
	if err != nil {
		return err
	}

	sinks, cleanup, tallyState, err := buildSinks(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	parser := combatlog.NewParser(combatlog.WithYear(cfg.Year))
	ingester := ingest.New(source, sinks,
		ingest.WithParser(parser),
		ingest.WithLogger(logger),
	)

	logger.Info("starting", "version", version.String(), "path", cfg.LogPath, "mode", cfg.ReadMode)
	if err := ingester.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if tallyState != nil {
		printTotals(tallyState)
	}
	return nil
}

func buildSource(cfg config.Config, logger *slog.Logger) (ingest.LineSource, error) {
	if cfg.LogPath == "-" {
		return ingest.NewReaderSource(os.Stdin), nil
	}

	if cfg.ReadMode == config.ReadModeWatch {
		var opts []ingest.TailOption
		opts = append(opts, ingest.WithTailLogger(logger))
		if cfg.FromStart {
			opts = append(opts, ingest.WithReplayFromStart())
		}
		if cfg.Poll {
			opts = append(opts, ingest.WithPolling())
		}
		return ingest.NewTailSource(cfg.LogPath, opts...), nil
	}

	return ingest.NewFileSource(cfg.LogPath, ingest.WithSourceLogger(logger)), nil
}

// buildSinks assembles the sink list for the configured output mode plus the
// optional tally and archive. The returned cleanup closes whatever needs
// closing, in reverse build order.
func buildSinks(cfg config.Config, logger *slog.Logger) ([]ingest.EventSink, func(), *tally.State, error) {
	var (
		sinks   []ingest.EventSink
		closers []func()
		tallySt *tally.State
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.OutputMode {
	case config.OutputStd:
		sinks = append(sinks, sink.NewConsole(os.Stdout, os.Stderr))
	case config.OutputFile:
		fileSink, err := sink.NewFile(cfg.GoodPath, cfg.FailedPath)
		if err != nil {
			return nil, nil, nil, err
		}
		closers = append(closers, func() {
			if err := fileSink.Close(); err != nil {
				logger.Error("close file sink", "error", err)
			}
		})
		sinks = append(sinks, fileSink)
	case config.OutputNone:
		sinks = append(sinks, sink.Null{})
	}

	if cfg.Tally {
		tallySink := sink.NewTally(nil)
		tallySt = tallySink.State()
		sinks = append(sinks, tallySink)
	}

	if cfg.DatabasePath != "" {
		dbPath := cfg.DatabasePath
		if dbPath == "auto" {
			if _, err := config.EnsureDataDir(); err != nil {
				cleanup()
				return nil, nil, nil, err
			}
			p, err := config.DefaultDatabasePath()
			if err != nil {
				cleanup()
				return nil, nil, nil, err
			}
			dbPath = p
		}
		st, err := store.Open(dbPath)
		if err != nil {
			cleanup()
			return nil, nil, nil, fmt.Errorf("open archive: %w", err)
		}
		closers = append(closers, func() {
			if _, err := st.VacuumIfNeeded(context.Background()); err != nil {
				logger.Warn("vacuum", "error", err)
			}
			if err := st.Close(); err != nil {
				logger.Error("close archive", "error", err)
			}
		})
		sinks = append(sinks, sink.NewArchive(st, logger))
		logger.Info("archiving events", "db", dbPath)
	}

	return sinks, cleanup, tallySt, nil
}

func printTotals(state *tally.State) {
	totals := state.Totals()
	if len(totals) == 0 {
		fmt.Println("no damage recorded")
		return
	}
	if enc := state.CurrentEncounter(); enc != nil {
		fmt.Printf("damage totals for %s:\n", enc.Name)
	} else {
		fmt.Println("damage totals:")
	}
	for _, entry := range totals {
		fmt.Printf("%12d  %s (%d hits, %d crits)\n", entry.Damage, entry.Name, entry.Hits, entry.Crits)
	}
}
