package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	logDir      = "logs"
	logFileName = "sandbox.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging returns a JSON logger into dir/sandbox.log when debug is set, a discarding one otherwise
// The terminal owns stdout and stderr, so records never go there
// An existing file over maxLogSize is renamed with a timestamp first
func setupLogging(debug bool, dir string) (*os.File, *slog.Logger) {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	if !debug {
		return nil, discard
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, discard
	}

	path := filepath.Join(dir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(dir, fmt.Sprintf("sandbox_%s.log", time.Now().Format("20060102_150405")))
		_ = os.Rename(path, rotated)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, discard
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("logging started", slog.String("path", path))
	return f, logger
}
