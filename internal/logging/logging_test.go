package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielpatrickdp/quality-assessor/internal/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestSetupFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assessor.log")
	logger, closeLog := Setup(config.LoggerConfig{Level: "debug", File: path, SizeMB: 1, Backups: 1})

	logger.Info("assessment complete", "overall", 0.83)
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "assessment complete" {
		t.Fatalf("unexpected message %v", entry["msg"])
	}
	if entry["overall"] != 0.83 {
		t.Fatalf("unexpected attribute %v", entry["overall"])
	}
}

func TestSetupLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSON(&buf, slog.LevelWarn)
	logger.Info("dropped")
	logger.Warn("kept")
	if bytes.Contains(buf.Bytes(), []byte("dropped")) {
		t.Fatal("info line must be filtered at warn level")
	}
	if !bytes.Contains(buf.Bytes(), []byte("kept")) {
		t.Fatal("warn line missing")
	}
}
