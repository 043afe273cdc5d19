package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.Decode.OutputFormat != "text" {
		t.Errorf("Decode.OutputFormat = %q, want %q", cfg.Decode.OutputFormat, "text")
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
[log]
level = "debug"

[watch]
directory = "/tmp/incoming"
poll_interval = 5

[decode]
output_format = "raw"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Watch.Directory != "/tmp/incoming" {
		t.Errorf("Watch.Directory = %q, want %q", cfg.Watch.Directory, "/tmp/incoming")
	}
	if cfg.Watch.PollDuration().Seconds() != 5 {
		t.Errorf("Watch.PollDuration() = %v, want 5s", cfg.Watch.PollDuration())
	}
	if cfg.Decode.OutputFormat != "raw" {
		t.Errorf("Decode.OutputFormat = %q, want %q", cfg.Decode.OutputFormat, "raw")
	}
	// unset fields keep their defaults
	if cfg.Log.MaxSizeMB != 10 {
		t.Errorf("Log.MaxSizeMB = %d, want 10 (default preserved)", cfg.Log.MaxSizeMB)
	}
}
