package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "humanizer.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGetDefaultsAreValid(t *testing.T) {
	if err := validateConfig(GetDefaults()); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
humanize:
  style: formal
  preserve: ["人工智能", "深度学习"]
server:
  port: 9090
  read_timeout: 5s
rate_limit:
  burst: 5
cache:
  default_ttl: 5m
batch:
  workers: 8
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Humanize.Style != "formal" {
		t.Errorf("style = %q", cfg.Humanize.Style)
	}
	if cfg.Humanize.Variability != "medium" {
		t.Errorf("variability default lost: %q", cfg.Humanize.Variability)
	}
	if len(cfg.Humanize.Preserve) != 2 || cfg.Humanize.Preserve[1] != "深度学习" {
		t.Errorf("preserve = %v", cfg.Humanize.Preserve)
	}
	if cfg.Server.Port != 9090 || cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("write timeout default lost: %v", cfg.Server.WriteTimeout)
	}
	if cfg.RateLimit.Burst != 5 || cfg.RateLimit.RequestsPerSecond != 10 {
		t.Errorf("rate limit = %+v", cfg.RateLimit)
	}
	if cfg.Cache.DefaultTTL != 5*time.Minute {
		t.Errorf("cache ttl = %v", cfg.Cache.DefaultTTL)
	}
	if cfg.Batch.Workers != 8 || cfg.Batch.BatchSize != 100 {
		t.Errorf("batch = %+v", cfg.Batch)
	}
	if !cfg.WebSocket.Events.BroadcastRuns {
		t.Error("nested websocket default lost")
	}
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("HUMANIZER_HUMANIZE_VARIABILITY", "high")
	t.Setenv("HUMANIZER_SERVER_PORT", "7070")

	cfg, err := Load(writeConfig(t, "humanize:\n  style: creative\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Humanize.Variability != "high" {
		t.Errorf("variability = %q, want high", cfg.Humanize.Variability)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Humanize.Style != "creative" {
		t.Errorf("style = %q", cfg.Humanize.Style)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"style":       "humanize:\n  style: poetic\n",
		"variability": "humanize:\n  variability: extreme\n",
		"level":       "logging:\n  level: loud\n",
		"format":      "logging:\n  format: xml\n",
		"port":        "server:\n  port: 70000\n",
		"rate":        "rate_limit:\n  requests_per_second: 0\n",
		"workers":     "batch:\n  workers: 0\n",
		"cache":       "cache:\n  enabled: true\n  redis_url: \"\"\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
				t.Fatalf("expected invalid configuration error, got %v", err)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestWatchReloads(t *testing.T) {
	path := writeConfig(t, "humanize:\n  style: casual\n")
	loader := NewLoader(nil)
	if _, err := loader.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}

	changed := make(chan *Config, 4)
	loader.Watch(func(c *Config) { changed <- c })

	// give the watcher a moment to register before editing the file
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("humanize:\n  style: formal\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-changed:
			if c.Humanize.Style == "formal" {
				return
			}
		case <-deadline:
			t.Fatal("config change not observed")
		}
	}
}
