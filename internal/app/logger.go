package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// nopHandler discards every record. Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger installs l for the whole program, including the gg rasterizer.
// Pass nil to silence logging again. Safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
	gg.SetLogger(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog.Level.
// "off" and "none" report ok=false, meaning logging is disabled.
func ParseLevel(s string) (level slog.Level, ok bool, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "off", "none":
		return 0, false, nil
	case "":
		return slog.LevelWarn, true, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, false, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, true, nil
}

// NewLogger builds a text logger writing to w at the named level.
func NewLogger(w io.Writer, levelName string) (*slog.Logger, error) {
	level, ok, err := ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return slog.New(nopHandler{}), nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
