package main

import (
	"io"
	"log/slog"

	"quickpanel/internal/config"
	"quickpanel/internal/sessionlog"
)

// installLogger makes a text handler on w the process-wide default, with
// warnings and errors also kept in ring.
func installLogger(w io.Writer, level *slog.LevelVar, ring *sessionlog.Ring) {
	base := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(sessionlog.NewTeeHandler(base, slog.LevelWarn, ring.Add)))
}

func (a *App) applyLogLevel(name string) {
	level, ok := config.ParseLogLevel(name)
	if !ok {
		slog.Warn("[config] unknown log level, keeping info", "value", name)
	}
	if a.logLevel.Level() != level {
		a.logLevel.Set(level)
		slog.Info("[config] log level set", "level", level)
	}
}
