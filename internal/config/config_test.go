package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleConfig = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "15s"
  write_timeout: "20s"

database:
  mysql:
    host: "db"
    port: 3306
    username: "home"
    password: "secret"
    database: "securehome"
    max_open_conns: 10
    max_idle_conns: 2
    conn_max_lifetime: "1h"
  redis:
    host: "cache"
    port: 6379
    db: 1
    pool_size: 5

ai:
  gemini:
    base_url: "https://example.test/v1"
    api_key: "file-key"
    model: "gemini-2.5-flash"

assistant:
  cache_ttl: "60s"
  min_request_interval: "1500ms"
  timezone: "America/New_York"

security:
  house_password: "file-pass"
  default_mode: "standard"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9090 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if got := cfg.Server.ReadTimeout.Std(); got != 15*time.Second {
		t.Errorf("read_timeout = %v, want 15s", got)
	}
	if got := cfg.Assistant.MinRequestInterval.Std(); got != 1500*time.Millisecond {
		t.Errorf("min_request_interval = %v, want 1.5s", got)
	}
	if got := cfg.Database.MySQL.ConnMaxLifetime.Std(); got != time.Hour {
		t.Errorf("conn_max_lifetime = %v, want 1h", got)
	}
	if cfg.Assistant.Timezone != "America/New_York" {
		t.Errorf("timezone = %q", cfg.Assistant.Timezone)
	}
	if cfg.Security.HousePassword != "file-pass" {
		t.Errorf("house_password = %q", cfg.Security.HousePassword)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("HOUSE_PASSWORD", "env-pass")

	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AI.Gemini.APIKey != "env-key" {
		t.Errorf("api_key = %q, want env override", cfg.AI.Gemini.APIKey)
	}
	if cfg.Security.HousePassword != "env-pass" {
		t.Errorf("house_password = %q, want env override", cfg.Security.HousePassword)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	bad := `
server:
  read_timeout: "fifteen seconds"
`
	if _, err := Load(writeConfig(t, bad)); err == nil {
		t.Error("Load should reject an unparseable duration")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load should fail on a missing file")
	}
}
