package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeConfigFile(t, `
output_dir = "/data/run42"
listen_host = "192.168.100.1"
port = 5151
read_timeout = "30s"
max_cycles = 100
metrics_addr = "127.0.0.1:9100"
log_level = "debug"
`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}

	if fc.OutputDir != "/data/run42" {
		t.Errorf("OutputDir = %v, want /data/run42", fc.OutputDir)
	}
	if fc.Port != 5151 {
		t.Errorf("Port = %v, want 5151", fc.Port)
	}
	if fc.ReadTimeout != "30s" {
		t.Errorf("ReadTimeout = %v, want 30s", fc.ReadTimeout)
	}
	if fc.MaxCycles != 100 {
		t.Errorf("MaxCycles = %v, want 100", fc.MaxCycles)
	}
}

func TestLoadFileConfig_Invalid(t *testing.T) {
	path := writeConfigFile(t, `port = "not a number"`)

	if _, err := LoadFileConfig(path); err == nil {
		t.Error("LoadFileConfig accepted invalid TOML")
	}
}

func TestApplyFileConfig(t *testing.T) {
	cfg := DefaultConfig()
	fc := FileConfig{
		OutputDir:   "/data/run42",
		ListenHost:  "10.0.0.1",
		Port:        5151,
		ReadTimeout: "45s",
		LogLevel:    "warn",
	}

	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}

	if cfg.OutputDir != "/data/run42" {
		t.Errorf("OutputDir = %v, want /data/run42", cfg.OutputDir)
	}
	if cfg.Port != 5151 {
		t.Errorf("Port = %v, want 5151", cfg.Port)
	}
	if cfg.ReadTimeout != 45*time.Second {
		t.Errorf("ReadTimeout = %v, want 45s", cfg.ReadTimeout)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %v, want warn", cfg.LogLevel)
	}
}

func TestApplyFileConfig_FlagsWin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = 6000
	cfg.OutputDir = "/flag/dir"

	fc := FileConfig{OutputDir: "/file/dir", Port: 5151}
	changed := map[string]bool{"port": true, "output": true}

	if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}

	if cfg.Port != 6000 {
		t.Errorf("Port = %v, want flag value 6000", cfg.Port)
	}
	if cfg.OutputDir != "/flag/dir" {
		t.Errorf("OutputDir = %v, want flag value /flag/dir", cfg.OutputDir)
	}
}

func TestApplyFileConfig_BadDuration(t *testing.T) {
	cfg := DefaultConfig()
	fc := FileConfig{ReadTimeout: "soon"}

	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err == nil {
		t.Error("ApplyFileConfig accepted invalid duration")
	}
}

func TestFileExists(t *testing.T) {
	path := writeConfigFile(t, "")

	if !FileExists(path) {
		t.Errorf("FileExists(%s) = false", path)
	}
	if FileExists(filepath.Join(t.TempDir(), "missing.toml")) {
		t.Error("FileExists reported a missing file")
	}
}
