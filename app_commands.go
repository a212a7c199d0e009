package main

import (
	"fmt"
	"runtime/debug"

	"quickpanel/internal/sessionlog"
	"quickpanel/internal/window"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = ""

var readBuildInfoFn = debug.ReadBuildInfo

// commandError is the only error type returned to the front end. It carries
// the message text and nothing else.
type commandError string

func (e commandError) Error() string { return string(e) }

func toCommandError(err error) error {
	if err == nil {
		return nil
	}
	return commandError(err.Error())
}

// GetAppVersion returns the build version.
func (a *App) GetAppVersion() string {
	if version != "" {
		return version
	}
	if info, ok := readBuildInfoFn(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// SetWindowHeight resizes the main window to the configured width and the
// given height, then re-centers it at the top of the screen.
func (a *App) SetWindowHeight(height uint32) error {
	if height == 0 {
		return commandError("window height must be positive")
	}
	w, ok := a.mainWindow()
	if !ok {
		return toCommandError(window.ErrNotFound)
	}
	return toCommandError(window.SetHeight(w, a.cfg.Window.Width, int(height), a.cfg.Window.TopMargin))
}

// SetAppIconVisibility shows or hides the dock, taskbar or panel icon.
func (a *App) SetAppIconVisibility(visible bool) error {
	if a.icons == nil {
		return commandError("icon visibility is not available")
	}
	return toCommandError(a.icons.Apply(visible))
}

// SetAlwaysOnTop pins or unpins the main window above other windows.
func (a *App) SetAlwaysOnTop(enabled bool) error {
	w, ok := a.mainWindow()
	if !ok {
		return toCommandError(window.ErrNotFound)
	}
	if err := w.SetAlwaysOnTop(enabled); err != nil {
		return toCommandError(fmt.Errorf("failed to set always on top: %w", err))
	}
	return nil
}

// GetSessionLog returns the warnings and errors recorded since launch,
// oldest first.
func (a *App) GetSessionLog() []sessionlog.Entry {
	if a.sessionLog == nil {
		return []sessionlog.Entry{}
	}
	return a.sessionLog.Snapshot()
}

