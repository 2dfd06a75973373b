package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: debug
  file: /var/log/assessor.log
store:
  path: assessor.db
application:
  name: shop
  type: web backend
assessment:
  model: model.yaml
  goals: [Performance Efficiency, Reliability]
  dynamic: true
  benchmarks:
    ART: 500
metrics:
  - name: Checkout Count
    acronym: CHK
    goal: Operability
    when: attributes["event_type"] == "checkout"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logger.Level != "debug" || cfg.Logger.File != "/var/log/assessor.log" {
		t.Fatalf("unexpected logger config %+v", cfg.Logger)
	}
	if cfg.Logger.SizeMB != 100 || cfg.Logger.Backups != 5 {
		t.Fatalf("rotation defaults not filled: %+v", cfg.Logger)
	}
	if cfg.Store.Path != "assessor.db" {
		t.Fatalf("unexpected store path %q", cfg.Store.Path)
	}
	if cfg.Application.Name != "shop" || cfg.Application.Type != "web backend" {
		t.Fatalf("unexpected application %+v", cfg.Application)
	}
	if len(cfg.Assessment.Goals) != 2 || !cfg.Assessment.Dynamic {
		t.Fatalf("unexpected assessment %+v", cfg.Assessment)
	}
	if cfg.Assessment.Benchmarks["ART"] != 500 {
		t.Fatalf("benchmark override lost: %v", cfg.Assessment.Benchmarks)
	}
	if len(cfg.Metrics) != 1 || cfg.Metrics[0].Acronym != "CHK" {
		t.Fatalf("expression metrics lost: %+v", cfg.Metrics)
	}
}

func TestLoadBadLevel(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: verbose
application:
  name: shop
  type: web backend
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "logger.level") {
		t.Fatalf("expected logger.level error, got %v", err)
	}
}

func TestLoadMissingApplication(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: info
application:
  type: web backend
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "application.name") {
		t.Fatalf("expected application.name error, got %v", err)
	}
}

func TestLoadIncompleteMetric(t *testing.T) {
	path := writeConfig(t, `
application:
  name: shop
  type: web backend
metrics:
  - name: Checkout Count
    acronym: CHK
    goal: Operability
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "metrics[0]") {
		t.Fatalf("expected metric validation error, got %v", err)
	}
}

func TestLoadNegativeBenchmark(t *testing.T) {
	path := writeConfig(t, `
application:
  name: shop
  type: web backend
assessment:
  benchmarks:
    ART: -1
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "benchmarks") {
		t.Fatalf("expected benchmark error, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}
