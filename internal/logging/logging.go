// Package logging wires slog to either stderr or a rotating JSON log file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/danielpatrickdp/quality-assessor/internal/config"
)

// #region level

// ParseLevel maps a configuration level string to a slog level. Unknown
// strings fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// #endregion level

// #region setup

// Setup builds the process logger and installs it as slog default. With a
// file configured the output is rotated JSON via lumberjack; otherwise it
// is text on stderr. The returned closer flushes the rotating writer.
func Setup(cfg config.LoggerConfig) (*slog.Logger, func() error) {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	closer := func() error { return nil }
	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.SizeMB,
			MaxBackups: cfg.Backups,
			Compress:   true,
		}
		handler = slog.NewJSONHandler(rotating, opts)
		closer = rotating.Close
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, closer
}

// NewJSON builds a JSON logger on an arbitrary writer. Tests use it to
// capture output.
func NewJSON(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// #endregion setup
