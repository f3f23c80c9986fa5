package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ligustah/xfer/pkg/transfer"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Units != "binary" {
		t.Errorf("expected default units binary, got %q", cfg.Units)
	}
	if cfg.BufferSize != 64*1024 {
		t.Errorf("expected default buffer size 64KiB, got %d", cfg.BufferSize)
	}
	if !cfg.Progress {
		t.Error("expected progress enabled by default")
	}
	if cfg.UpdateInterval != 500*time.Millisecond {
		t.Errorf("expected default update interval 500ms, got %v", cfg.UpdateInterval)
	}
	if cfg.HTTP.RetryAttempts != 5 {
		t.Errorf("expected default retry attempts 5, got %d", cfg.HTTP.RetryAttempts)
	}
}

func TestLoadFromYAML(t *testing.T) {
	yamlContent := `
from: input.bin
to: s3://bucket/input.bin
units: decimal
buffer_size: 1MiB
expected_size: 2.5GB
progress: false
update_interval: 250ms
http:
  retry_attempts: 10
  retry_backoff: 2s
  retry_max_backoff: 60s
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.From != "input.bin" {
		t.Errorf("expected from input.bin, got %q", cfg.From)
	}
	if cfg.To != "s3://bucket/input.bin" {
		t.Errorf("expected to s3://bucket/input.bin, got %q", cfg.To)
	}
	if cfg.Units != "decimal" {
		t.Errorf("expected units decimal, got %q", cfg.Units)
	}
	if cfg.BufferSize != 1024*1024 {
		t.Errorf("expected buffer size 1MiB, got %d", cfg.BufferSize)
	}
	if cfg.ExpectedSize != 2500*1000*1000 {
		t.Errorf("expected expected_size 2.5GB, got %d", cfg.ExpectedSize)
	}
	if cfg.Progress {
		t.Error("expected progress false")
	}
	if cfg.UpdateInterval != 250*time.Millisecond {
		t.Errorf("expected update interval 250ms, got %v", cfg.UpdateInterval)
	}
	if cfg.HTTP.RetryAttempts != 10 {
		t.Errorf("expected retry attempts 10, got %d", cfg.HTTP.RetryAttempts)
	}
	if cfg.HTTP.RetryBackoff != 2*time.Second {
		t.Errorf("expected retry backoff 2s, got %v", cfg.HTTP.RetryBackoff)
	}
	if cfg.HTTP.RetryMaxBackoff != 60*time.Second {
		t.Errorf("expected retry max backoff 60s, got %v", cfg.HTTP.RetryMaxBackoff)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("XFER_FROM", "env-input.bin")
	t.Setenv("XFER_TO", "env-output.bin")
	t.Setenv("XFER_UNITS", "decimal")
	t.Setenv("XFER_BUFFER_SIZE", "128KiB")
	t.Setenv("XFER_PROGRESS", "0")
	t.Setenv("XFER_UPDATE_INTERVAL", "1s")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.From != "env-input.bin" {
		t.Errorf("expected from env-input.bin, got %q", cfg.From)
	}
	if cfg.To != "env-output.bin" {
		t.Errorf("expected to env-output.bin, got %q", cfg.To)
	}
	if cfg.BufferSize != 128*1024 {
		t.Errorf("expected buffer size 128KiB, got %d", cfg.BufferSize)
	}
	if cfg.Progress {
		t.Error("expected progress disabled")
	}
	if cfg.UpdateInterval != time.Second {
		t.Errorf("expected update interval 1s, got %v", cfg.UpdateInterval)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without from/to")
	}

	cfg.From = "a"
	cfg.To = "b"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	cfg.Units = "metric"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown units")
	}
}

func TestUnitStyle(t *testing.T) {
	cfg := Config{Units: "decimal"}
	style, err := cfg.UnitStyle()
	if err != nil {
		t.Fatalf("UnitStyle: %v", err)
	}
	if style != transfer.Decimal {
		t.Errorf("expected Decimal, got %v", style)
	}

	cfg.Units = ""
	style, err = cfg.UnitStyle()
	if err != nil {
		t.Fatalf("UnitStyle: %v", err)
	}
	if style != transfer.Binary {
		t.Errorf("expected Binary for empty units, got %v", style)
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	base.From = "base-from"

	merged := base.Merge(Config{To: "override-to", BufferSize: 4096})

	if merged.From != "base-from" {
		t.Errorf("expected from preserved, got %q", merged.From)
	}
	if merged.To != "override-to" {
		t.Errorf("expected to overridden, got %q", merged.To)
	}
	if merged.BufferSize != 4096 {
		t.Errorf("expected buffer size overridden, got %d", merged.BufferSize)
	}
	if merged.UpdateInterval != base.UpdateInterval {
		t.Errorf("expected update interval preserved, got %v", merged.UpdateInterval)
	}
}
