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
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "mongodb:\n  uri: mongodb://localhost:27017\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 8080 {
		t.Errorf("got server %s:%d, want 0.0.0.0:8080", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("got cache backend %q, want memory", cfg.Cache.Backend)
	}
	if cfg.Cache.ListTTL != 5*time.Minute || cfg.Cache.StatsTTL != 10*time.Minute {
		t.Errorf("got TTLs %v/%v, want 5m/10m", cfg.Cache.ListTTL, cfg.Cache.StatsTTL)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  host: 127.0.0.1\n  port: 9090\ncache:\n  backend: redis\n  list_ttl: 30s\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9090 {
		t.Errorf("got server %s:%d, want 127.0.0.1:9090", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.ListTTL != 30*time.Second {
		t.Errorf("got backend=%q listTTL=%v, want redis/30s", cfg.Cache.Backend, cfg.Cache.ListTTL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
