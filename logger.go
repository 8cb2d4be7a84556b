package wwind

import (
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/1broseidon/wwind/internal/logging"
)

// SetLogger configures the logger for wwind and its backends. By default
// nothing is logged. Pass nil to restore silence.
//
// The headless backend renders with gg, so the logger is forwarded there too.
//
// Log levels used:
//   - [slog.LevelDebug]: protocol chatter (pings, ignored native events)
//   - [slog.LevelInfo]: backend selection and shutdown
//   - [slog.LevelWarn]: stale events, failed draws and flushes, refused drains
func SetLogger(l *slog.Logger) {
	logging.Set(l)
	gg.SetLogger(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return logging.L()
}
