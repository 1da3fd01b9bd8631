package iris

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// NewLogger returns a text logger on stderr at the given level, using "err"
// as the key for errors.
func NewLogger(level slog.Level) *slog.Logger {
	return newLogger(os.Stderr, level)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NopLogger returns a logger that discards everything.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLogLevel maps "debug", "info", "warn" and "error" to slog levels.
// Unknown names fall back to info.
func ParseLogLevel(s string) slog.Level {
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

// frameStats holds per-frame timings. Only populated in debug mode.
type frameStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	animations int
}

// debugLog reports frame timings while the iris is busy; idle frames are
// skipped to keep the log readable.
func (s *Stage) debugLog(stats frameStats) {
	if !s.debug || !s.nav.Busy() {
		return
	}
	st := s.nav.State()
	s.log.Debug("frame",
		"phase", st.Phase(),
		"index", st.Index,
		"progress", st.RingProgress,
		"update", stats.updateTime,
		"draw", stats.drawTime,
		"animations", stats.animations,
	)
}
