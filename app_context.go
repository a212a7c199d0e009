package main

import (
	"context"
	"errors"

	"quickpanel/internal/window"
)

var errNoRuntime = errors.New("host runtime not ready")

func (a *App) setRuntimeContext(ctx context.Context) {
	a.ctxMu.Lock()
	a.ctx = ctx
	a.ctxMu.Unlock()
}

func (a *App) runtimeContext() context.Context {
	a.ctxMu.RLock()
	ctx := a.ctx
	a.ctxMu.RUnlock()
	return ctx
}

// mainWindow resolves the main window. It is absent before startup and
// after shutdown.
func (a *App) mainWindow() (window.Handle, bool) {
	if a.win == nil || a.runtimeContext() == nil || a.shuttingDown.Load() {
		return nil, false
	}
	return a.win, true
}
