// ABOUTME: Tests for CLI configuration loading and env var expansion
// ABOUTME: Covers defaults, overrides, and validation failures

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  url: https://rfrp.example.com/api/v1
  timeout: 30s
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.URL != "https://rfrp.example.com/api/v1" {
		t.Errorf("server.url = %q", cfg.Server.URL)
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("server.timeout = %v, want 30s", cfg.Server.Timeout)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_RFRP_HOST", "edge.example.com")

	path := writeConfig(t, `
server:
  url: https://${TEST_RFRP_HOST}/api/v1
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.URL != "https://edge.example.com/api/v1" {
		t.Errorf("server.url = %q, want expanded host", cfg.Server.URL)
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	path := writeConfig(t, `
server:
  url: http://localhost:7000/api/v1
  timeout: soon
`)

	if _, err := Load(path); err == nil {
		t.Error("Load() should reject an unparseable timeout")
	}
}

func TestLoadDefault_NoFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	if cfg.Server.URL == "" {
		t.Error("expected a default server URL")
	}
	if cfg.Server.Timeout <= 0 {
		t.Error("expected a positive default timeout")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvServerURL, "http://10.0.0.5:7000/api/v1")
	t.Setenv(EnvTimeout, "5s")

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	if cfg.Server.URL != "http://10.0.0.5:7000/api/v1" {
		t.Errorf("server.url = %q, want env override", cfg.Server.URL)
	}
	if cfg.Server.Timeout != 5*time.Second {
		t.Errorf("server.timeout = %v, want env override", cfg.Server.Timeout)
	}
}
