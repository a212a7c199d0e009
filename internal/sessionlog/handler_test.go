package sessionlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

type recordingSink struct {
	mu      sync.Mutex
	entries []Entry
}

func (s *recordingSink) add(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

func (s *recordingSink) all() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("base write failed")
}

func newTestLogger(sink func(Entry)) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewTeeHandler(base, slog.LevelWarn, sink)), &buf
}

func TestTeeHandlerThreshold(t *testing.T) {
	tests := []struct {
		name     string
		log      func(l *slog.Logger)
		wantSink int
	}{
		{name: "error is captured", log: func(l *slog.Logger) { l.Error("boom") }, wantSink: 1},
		{name: "warn is captured", log: func(l *slog.Logger) { l.Warn("careful") }, wantSink: 1},
		{name: "info is not captured", log: func(l *slog.Logger) { l.Info("fyi") }, wantSink: 0},
		{name: "debug is not captured", log: func(l *slog.Logger) { l.Debug("noise") }, wantSink: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			logger, buf := newTestLogger(sink.add)
			tt.log(logger)

			if got := len(sink.all()); got != tt.wantSink {
				t.Fatalf("sink entries = %d, want %d", got, tt.wantSink)
			}
			if buf.Len() == 0 {
				t.Fatal("base handler received nothing")
			}
		})
	}
}

func TestTeeHandlerEntryFields(t *testing.T) {
	sink := &recordingSink{}
	logger, _ := newTestLogger(sink.add)

	logger.Error("[hotkey] failed to register", "error", errors.New("already taken"))

	entries := sink.all()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Source != "hotkey" {
		t.Errorf("Source = %q, want hotkey", e.Source)
	}
	if e.Message != "failed to register: already taken" {
		t.Errorf("Message = %q", e.Message)
	}
	if e.Level != "ERROR" {
		t.Errorf("Level = %q, want ERROR", e.Level)
	}
	if e.Timestamp.IsZero() {
		t.Error("Timestamp is zero")
	}
}

func TestTeeHandlerGroups(t *testing.T) {
	sink := &recordingSink{}
	logger, _ := newTestLogger(sink.add)

	logger.WithGroup("ipc").WithGroup("server").Warn("[ignored] slow client")
	logger.WithGroup("").Warn("plain")

	entries := sink.all()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Source != "ipc.server" {
		t.Errorf("grouped Source = %q, want ipc.server", entries[0].Source)
	}
	if entries[0].Message != "[ignored] slow client" {
		t.Errorf("grouped Message = %q, tag must be kept when a group is set", entries[0].Message)
	}
	if entries[1].Source != "" {
		t.Errorf("ungrouped Source = %q, want empty", entries[1].Source)
	}
}

func TestTeeHandlerWithAttrsKeepsSink(t *testing.T) {
	sink := &recordingSink{}
	logger, buf := newTestLogger(sink.add)

	logger.With("component", "toggle").Error("dropped")

	if len(sink.all()) != 1 {
		t.Fatal("sink lost after WithAttrs")
	}
	if !strings.Contains(buf.String(), "component=toggle") {
		t.Fatalf("base output = %q, want attrs", buf.String())
	}
}

func TestTeeHandlerNilSink(t *testing.T) {
	logger, buf := newTestLogger(nil)
	logger.Error("still written")
	if !strings.Contains(buf.String(), "still written") {
		t.Fatalf("base output = %q", buf.String())
	}
}

func TestTeeHandlerBaseErrorStillDelivers(t *testing.T) {
	sink := &recordingSink{}
	h := NewTeeHandler(failingHandler{slog.NewTextHandler(&bytes.Buffer{}, nil)}, slog.LevelWarn, sink.add)

	rec := slog.NewRecord(time.Now(), slog.LevelError, "write me", 0)
	if err := h.Handle(context.Background(), rec); err == nil {
		t.Fatal("Handle() expected base error")
	}
	if len(sink.all()) != 1 {
		t.Fatal("sink not called when base handler failed")
	}
}

func TestTeeHandlerSinkPanicIsContained(t *testing.T) {
	logger, buf := newTestLogger(func(Entry) { panic("sink exploded") })

	logger.Error("survives")

	if !strings.Contains(buf.String(), "survives") {
		t.Fatalf("base output = %q", buf.String())
	}
}

func TestTeeHandlerCapturesBelowBaseLevel(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError})
	sink := &recordingSink{}
	logger := slog.New(NewTeeHandler(base, slog.LevelWarn, sink.add))

	logger.Warn("[hotkey] registration failed")
	logger.Info("[app] started")

	if got := len(sink.all()); got != 1 {
		t.Fatalf("sink entries = %d, want 1", got)
	}
	if buf.Len() != 0 {
		t.Fatalf("base handler should stay quiet below its level, got %q", buf.String())
	}
}
