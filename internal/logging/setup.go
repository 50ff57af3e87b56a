package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the destination and verbosity of the process logger.
type Options struct {
	Level      string // debug, info, warn, error
	File       string // empty means stdout
	MaxSizeMB  int
	MaxBackups int
}

// ParseLevel maps a level name onto slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Writer returns the sink for the given options: a rotating file when a
// path is configured, stdout otherwise.
func Writer(o Options) io.Writer {
	if o.File == "" {
		return os.Stdout
	}
	return &lumberjack.Logger{
		Filename:   o.File,
		MaxSize:    o.MaxSizeMB,
		MaxBackups: o.MaxBackups,
		Compress:   true,
	}
}

// New builds the JSON slog logger used by the server.
func New(o Options) *SlogLogger {
	h := slog.NewJSONHandler(Writer(o), &slog.HandlerOptions{Level: ParseLevel(o.Level)})
	return NewSlogLogger(slog.New(h))
}
