package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// UIHandler is a slog.Handler that forwards records into the running
// program as LogMsg, so structured logs land in the terminal widget instead
// of corrupting the alternate screen.
type UIHandler struct {
	send  func(tea.Msg)
	level slog.Level
	attrs []slog.Attr
}

// NewUIHandler creates a handler delivering records at or above level.
func NewUIHandler(send func(tea.Msg), level slog.Level) *UIHandler {
	return &UIHandler{send: send, level: level}
}

// Enabled implements slog.Handler.
func (h *UIHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle implements slog.Handler.
func (h *UIHandler) Handle(_ context.Context, rec slog.Record) error {
	var b strings.Builder
	b.WriteString(rec.Message)

	appendAttr := func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value.Any())
		return true
	}
	for _, a := range h.attrs {
		appendAttr(a)
	}
	rec.Attrs(appendAttr)

	h.send(LogMsg{
		Time:    rec.Time,
		Level:   levelName(rec.Level),
		Message: b.String(),
	})
	return nil
}

// WithAttrs implements slog.Handler.
func (h *UIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup implements slog.Handler. Groups are flattened; the widget shows
// a single line per record.
func (h *UIHandler) WithGroup(string) slog.Handler {
	return h
}

func levelName(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "error"
	case l >= slog.LevelWarn:
		return "warn"
	case l >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}

var _ slog.Handler = (*UIHandler)(nil)
