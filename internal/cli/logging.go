package cli

import (
	"fmt"
	"log/slog"
	"os"
)

const envLogFile = "TERMENU_LOG"

// newLogger returns a debug logger writing to path, falling back to
// $TERMENU_LOG. The terminal is in raw mode while the menu runs, so logs
// never go to stderr; without a file they are discarded.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		path = os.Getenv(envLogFile)
	}
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})).With("component", "termenu", "pid", os.Getpid())
	return logger, func() { _ = f.Close() }, nil
}
