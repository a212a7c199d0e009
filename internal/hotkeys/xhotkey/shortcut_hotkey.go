//go:build darwin || windows

package xhotkey

import (
	"context"
	"log/slog"

	"quickpanel/internal/hotkeys"

	"golang.design/x/hotkey"
)

// hotkeyShortcut wraps a golang.design/x/hotkey registration.
//
// NOTE: on macOS x/hotkey hands registration to the main dispatch queue and
// expects a Cocoa run loop to be spinning there. Wails owns that loop, so
// Register must only be called after the app has started (domReady), never
// from main before wails.Run: the call would block forever.
type hotkeyShortcut struct {
	hk   *hotkey.Hotkey
	name string
}

func newShortcut(b hotkeys.Binding) (shortcut, error) {
	mods, key, err := translate(b)
	if err != nil {
		return nil, err
	}
	return &hotkeyShortcut{hk: hotkey.New(mods, key), name: b.Normalized()}, nil
}

func (s *hotkeyShortcut) Register() error { return s.hk.Register() }

func (s *hotkeyShortcut) Unregister() error { return s.hk.Unregister() }

func (s *hotkeyShortcut) run(ctx context.Context, emit func(hotkeys.State)) {
	// Unregister closes these channels, which ends the loop.
	down := s.hk.Keydown()
	up := s.hk.Keyup()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-down:
			if !ok {
				slog.Debug("[hotkey] keydown channel closed", "binding", s.name)
				return
			}
			emit(hotkeys.StatePressed)
		case _, ok := <-up:
			if !ok {
				slog.Debug("[hotkey] keyup channel closed", "binding", s.name)
				return
			}
			emit(hotkeys.StateReleased)
		}
	}
}
