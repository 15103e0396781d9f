package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/ai8future/actual-model/internal/config"
)

// configureLogger sets up the default slog logger based on config values.
// Diagnostics never go to stdout, which belongs to the status line.
func configureLogger(cfg config.LoggingConfig, w io.Writer) {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case config.LevelOff, "":
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}
