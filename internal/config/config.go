// Package config provides runtime configuration for wowlog. Values come
// from environment variables, optionally seeded from a .env file; flags in
// the command layer override them.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Read modes.
const (
	ReadModeProcess = "process"
	ReadModeWatch   = "watch"
)

// Output modes.
const (
	OutputStd  = "std"
	OutputFile = "file"
	OutputNone = "none"
)

// ErrInvalidConfig is returned when a configuration value fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the runtime configuration.
type Config struct {
	// LogPath is the combat log file to read.
	LogPath string `env:"WOWLOG_PATH"`

	// ReadMode selects one-shot processing or live tailing.
	ReadMode string `env:"WOWLOG_READ_MODE" envDefault:"process"`

	// OutputMode selects where parse results go.
	OutputMode string `env:"WOWLOG_OUTPUT" envDefault:"std"`

	// GoodPath and FailedPath are the output files for OutputFile mode.
	GoodPath   string `env:"WOWLOG_GOOD_PATH"`
	FailedPath string `env:"WOWLOG_FAILED_PATH"`

	// Year is assumed for every timestamp; the log format carries none.
	// Zero means the current year.
	Year int `env:"WOWLOG_YEAR"`

	// DatabasePath enables the SQLite archive when non-empty.
	DatabasePath string `env:"WOWLOG_DB_PATH"`

	// Tally enables the damage accumulation report.
	Tally bool `env:"WOWLOG_TALLY" envDefault:"false"`

	// FromStart makes watch mode replay the file before following it.
	FromStart bool `env:"WOWLOG_FROM_START" envDefault:"false"`

	// Poll makes watch mode poll instead of using inotify. Needed on some
	// network filesystems.
	Poll bool `env:"WOWLOG_POLL" envDefault:"false"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Year == 0 {
		c.Year = time.Now().Year()
	}
}

// Validate checks mode values and mode-specific requirements. LogPath is
// checked by the command layer, which may receive it as an argument instead.
func (c *Config) Validate() error {
	switch c.ReadMode {
	case ReadModeProcess, ReadModeWatch:
	default:
		return fmt.Errorf("%w: read mode %q (want %q or %q)",
			ErrInvalidConfig, c.ReadMode, ReadModeProcess, ReadModeWatch)
	}

	switch c.OutputMode {
	case OutputStd, OutputNone:
	case OutputFile:
		if c.GoodPath == "" || c.FailedPath == "" {
			return fmt.Errorf("%w: file output needs both good and failed paths", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: output mode %q (want %q, %q or %q)",
			ErrInvalidConfig, c.OutputMode, OutputStd, OutputFile, OutputNone)
	}

	if c.Year < 2000 || c.Year > 9999 {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidConfig, c.Year)
	}

	return nil
}
