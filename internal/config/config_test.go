package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ReadMode != ReadModeProcess {
		t.Errorf("ReadMode = %q, want %q", cfg.ReadMode, ReadModeProcess)
	}
	if cfg.OutputMode != OutputStd {
		t.Errorf("OutputMode = %q, want %q", cfg.OutputMode, OutputStd)
	}
	if cfg.Year != time.Now().Year() {
		t.Errorf("Year = %d, want current year", cfg.Year)
	}
	if cfg.Tally || cfg.FromStart || cfg.Poll {
		t.Errorf("boolean defaults = %+v, want all false", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("WOWLOG_PATH", "/logs/WoWCombatLog.txt")
	t.Setenv("WOWLOG_READ_MODE", "watch")
	t.Setenv("WOWLOG_OUTPUT", "none")
	t.Setenv("WOWLOG_YEAR", "2024")
	t.Setenv("WOWLOG_TALLY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogPath != "/logs/WoWCombatLog.txt" {
		t.Errorf("LogPath = %q", cfg.LogPath)
	}
	if cfg.ReadMode != ReadModeWatch {
		t.Errorf("ReadMode = %q, want watch", cfg.ReadMode)
	}
	if cfg.OutputMode != OutputNone {
		t.Errorf("OutputMode = %q, want none", cfg.OutputMode)
	}
	if cfg.Year != 2024 {
		t.Errorf("Year = %d, want 2024", cfg.Year)
	}
	if !cfg.Tally {
		t.Error("Tally = false, want true")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{ReadMode: ReadModeProcess, OutputMode: OutputStd, Year: 2024}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"bad read mode", Config{ReadMode: "stream", OutputMode: OutputStd, Year: 2024}},
		{"bad output mode", Config{ReadMode: ReadModeProcess, OutputMode: "tee", Year: 2024}},
		{"file output without paths", Config{ReadMode: ReadModeProcess, OutputMode: OutputFile, Year: 2024}},
		{"year out of range", Config{ReadMode: ReadModeProcess, OutputMode: OutputStd, Year: 24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidate_FileOutputWithPaths(t *testing.T) {
	cfg := Config{
		ReadMode:   ReadModeWatch,
		OutputMode: OutputFile,
		GoodPath:   "good.txt",
		FailedPath: "failed.txt",
		Year:       2024,
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
