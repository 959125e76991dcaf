package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize defaults: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Tools.FFmpeg != "ffmpeg" || cfg.Tools.FFprobe != "ffprobe" {
		t.Fatalf("unexpected default tools: %+v", cfg.Tools)
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "splice.toml")
	content := `
[paths]
temp_dir = "` + filepath.Join(dir, "work") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[tools]
ffmpeg = "/opt/ffmpeg/bin/ffmpeg"
operation_timeout = 600

[silence]
noise_floor_db = -45.0
min_silence_seconds = 5.0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Tools.FFmpeg != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("ffmpeg override lost: %q", cfg.Tools.FFmpeg)
	}
	if cfg.Tools.OperationTimeout != 600 {
		t.Fatalf("operation_timeout = %d, want 600", cfg.Tools.OperationTimeout)
	}
	if cfg.Silence.NoiseFloorDb != -45.0 || cfg.Silence.MinSilenceSeconds != 5.0 {
		t.Fatalf("silence overrides lost: %+v", cfg.Silence)
	}
	// Untouched sections keep defaults.
	if cfg.Tools.FFprobe != "ffprobe" {
		t.Fatalf("ffprobe default lost: %q", cfg.Tools.FFprobe)
	}
	if cfg.HistoryDBPath() != filepath.Join(dir, "logs", "history.db") {
		t.Fatalf("unexpected history path: %q", cfg.HistoryDBPath())
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Silence.NoiseFloorDb != defaultNoiseFloorDb {
		t.Fatalf("expected defaults, got %+v", cfg.Silence)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"positive noise floor", func(c *Config) { c.Silence.NoiseFloorDb = 3 }, "noise_floor_db"},
		{"zero min silence", func(c *Config) { c.Silence.MinSilenceSeconds = 0 }, "min_silence_seconds"},
		{"negative timeout", func(c *Config) { c.Tools.OperationTimeout = -1 }, "operation_timeout"},
		{"zero probe timeout", func(c *Config) { c.Tools.ProbeTimeout = 0 }, "probe_timeout"},
		{"empty ffprobe", func(c *Config) { c.Tools.FFprobe = "" }, "ffprobe"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			if err := cfg.normalize(); err != nil {
				t.Fatalf("normalize: %v", err)
			}
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation failure")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[tools]") {
		t.Fatalf("sample config missing tools section")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got, err := ExpandPath("~/media")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join(home, "media") {
		t.Fatalf("expanded to %q", got)
	}
}
