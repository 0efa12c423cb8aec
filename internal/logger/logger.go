package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/polkiloo/reelorders/internal/config"
)

// New creates a JSON slog.Logger honoring the configured level.
func New(cfg *config.Config) *slog.Logger {
	return newWithWriter(os.Stdout, cfg.LogLevel, cfg.Environment)
}

func newWithWriter(w io.Writer, level, environment string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(handler).With(slog.String("env", environment))
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// NewCLI creates a logger for command line tools writing to w.
func NewCLI(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
}
