// Package iologger sets up the global slog logger.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gnames/bosdb/pkg/config"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// LogFile is the name of the log file in the log directory.
const LogFile = "bosdb.log"

// Init replaces the default slog logger according to cfg. With the
// "file" destination the log file in logDir is truncated.
func Init(logDir string, cfg config.LogConfig) error {
	w, err := writer(logDir, cfg.Destination)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(NewHandler(w, cfg)))
	return nil
}

// NewHandler creates a slog handler of the configured format.
func NewHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	level := parseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	switch cfg.Format {
	case "text":
		return slog.NewTextHandler(w, opts)
	case "tint":
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    !isTerminal(w),
		})
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

func writer(logDir, destination string) (io.Writer, error) {
	switch destination {
	case "stdout":
		return os.Stdout, nil
	case "file":
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, CreateLogFileError(logDir, err)
		}
		path := filepath.Join(logDir, LogFile)
		f, err := os.Create(path)
		if err != nil {
			return nil, CreateLogFileError(path, err)
		}
		return f, nil
	default:
		return os.Stderr, nil
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
