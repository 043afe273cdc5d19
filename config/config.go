// Package config loads the jabdecode CLI's TOML configuration file,
// following the same default-then-overlay pattern GoSNare's config.go uses
// for its own TOML settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// LogConfig controls the zap/lumberjack logging setup.
type LogConfig struct {
	Level      string `toml:"level"`       // debug, info, warn, error
	File       string `toml:"file"`        // rotated log file path; empty = stderr only
	MaxSizeMB  int    `toml:"max_size_mb"` // lumberjack MaxSize
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// WatchConfig controls the CLI's optional fsnotify-driven directory watch
// mode, mirroring GoSNare's WatchConfig shape.
type WatchConfig struct {
	Directory    string `toml:"directory"`
	PollInterval int    `toml:"poll_interval"` // seconds, 0 = default (2s)
}

// PollDuration returns PollInterval as a time.Duration, defaulting to 2s.
func (w WatchConfig) PollDuration() time.Duration {
	if w.PollInterval > 0 {
		return time.Duration(w.PollInterval) * time.Second
	}
	return 2 * time.Second
}

// DecodeConfig holds the [decode] settings. Load parses them, but jabdecode
// does not read them: it always prints the message as text, and metadata
// decoding always rejects wc >= wr.
type DecodeConfig struct {
	OutputFormat string `toml:"output_format"` // "text" or "raw"
	StrictECL    bool   `toml:"strict_ecl"`    // reject a symbol whose wc/wr look implausible rather than trying anyway
}

// Config is the CLI's full configuration.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Watch  WatchConfig  `toml:"watch"`
	Decode DecodeConfig `toml:"decode"`
}

func defaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Decode: DecodeConfig{
			OutputFormat: "text",
			StrictECL:    true,
		},
	}
}

// Load reads and parses a TOML config file at path, returning defaults
// unchanged when the file does not exist.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
