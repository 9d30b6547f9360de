package obs

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// NewLogger builds the application logger: tinted human-readable output for
// local development, JSON for everything else.
func NewLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo, AddSource: true}
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "":
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level:      opts.Level,
			TimeFormat: time.RFC3339,
			AddSource:  opts.AddSource,
		}))
	default:
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
}
