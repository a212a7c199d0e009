// Package sessionlog keeps the recent warnings and errors of the running
// session in memory for the diagnostics view.
package sessionlog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
)

// TeeHandler forwards every record to a base handler and additionally hands
// records at or above a threshold to a sink.
//
// NOTE: the threshold is independent of the base handler's level. With
// log_level set to "error" the console stays quiet about warnings, but the
// diagnostics view still lists them; that view is where a user looks after
// a shortcut failed to register.
type TeeHandler struct {
	base     slog.Handler
	sink     func(Entry)
	minLevel slog.Level
	group    string
}

// NewTeeHandler wraps base. A nil sink turns the handler into a plain
// pass-through.
func NewTeeHandler(base slog.Handler, minLevel slog.Level, sink func(Entry)) *TeeHandler {
	return &TeeHandler{base: base, sink: sink, minLevel: minLevel}
}

// Enabled reports whether either the base handler or the sink wants level.
func (h *TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level) || (h.sink != nil && level >= h.minLevel)
}

// Handle writes to the base handler first when it accepts the level. The
// sink still sees the record when the base handler fails, and the base
// error is returned.
func (h *TeeHandler) Handle(ctx context.Context, record slog.Record) error {
	var err error
	if h.base.Enabled(ctx, record.Level) {
		err = h.base.Handle(ctx, record)
	}
	if h.sink != nil && record.Level >= h.minLevel {
		h.deliver(entryFromRecord(record, h.group))
	}
	return err
}

func (h *TeeHandler) deliver(e Entry) {
	defer func() {
		if r := recover(); r != nil {
			// stderr, not slog: logging here would re-enter this handler.
			fmt.Fprintf(os.Stderr, "[session-log] sink panicked: %v\n%s\n", r, debug.Stack())
		}
	}()
	h.sink(e)
}

// WithAttrs keeps the sink and threshold.
func (h *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.base = h.base.WithAttrs(attrs)
	return &clone
}

// WithGroup extends the dot-separated source name reported in entries.
func (h *TeeHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.base = h.base.WithGroup(name)
	if h.group == "" {
		clone.group = name
	} else {
		clone.group = h.group + "." + name
	}
	return &clone
}

// entryFromRecord takes the source from the handler group, or from a leading
// "[tag]" in the message when no group is set.
func entryFromRecord(record slog.Record, group string) Entry {
	msg := record.Message
	source := group
	if source == "" && strings.HasPrefix(msg, "[") {
		if end := strings.Index(msg, "]"); end > 1 {
			source = msg[1:end]
			msg = strings.TrimSpace(msg[end+1:])
		}
	}
	var errText string
	record.Attrs(func(a slog.Attr) bool {
		if a.Key == "error" {
			errText = a.Value.String()
			return false
		}
		return true
	})
	if errText != "" {
		msg = msg + ": " + errText
	}
	return Entry{
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   msg,
		Source:    source,
	}
}
