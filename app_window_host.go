package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"quickpanel/internal/platform"
	"quickpanel/internal/window"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

var (
	runtimeWindowShowFn           = runtime.WindowShow
	runtimeWindowHideFn           = runtime.WindowHide
	runtimeWindowUnminimiseFn     = runtime.WindowUnminimise
	runtimeWindowGetSizeFn        = runtime.WindowGetSize
	runtimeWindowSetSizeFn        = runtime.WindowSetSize
	runtimeWindowSetPositionFn    = runtime.WindowSetPosition
	runtimeWindowSetAlwaysOnTopFn = runtime.WindowSetAlwaysOnTop
	runtimeScreenGetAllFn         = runtime.ScreenGetAll
)

// wailsWindow implements window.Handle on the Wails runtime. Wails has no
// visibility query or focus call, so those go through the native helpers.
// Positions are relative to the monitor hosting the window, matching
// runtime.WindowSetPosition.
type wailsWindow struct {
	ctxFn  func() context.Context
	native nativeWindow

	mu          sync.Mutex
	alwaysOnTop bool
}

func newWailsWindow(ctxFn func() context.Context, native nativeWindow, alwaysOnTop bool) *wailsWindow {
	return &wailsWindow{ctxFn: ctxFn, native: native, alwaysOnTop: alwaysOnTop}
}

var _ window.Handle = (*wailsWindow)(nil)

func (w *wailsWindow) context() (context.Context, error) {
	ctx := w.ctxFn()
	if ctx == nil {
		return nil, errNoRuntime
	}
	return ctx, nil
}

func (w *wailsWindow) IsVisible() (bool, error) {
	if w.native == nil || !w.native.VisibilitySupported() {
		return false, platform.ErrUnsupported
	}
	return w.native.IsVisible()
}

func (w *wailsWindow) Show() error {
	ctx, err := w.context()
	if err != nil {
		return err
	}
	runtimeWindowShowFn(ctx)
	runtimeWindowUnminimiseFn(ctx)
	return nil
}

func (w *wailsWindow) Hide() error {
	ctx, err := w.context()
	if err != nil {
		return err
	}
	runtimeWindowHideFn(ctx)
	return nil
}

// SetFocus asks the OS to activate the window. Without native support the
// window is raised by pulsing always-on-top, then the user's setting is
// restored.
func (w *wailsWindow) SetFocus() error {
	ctx, err := w.context()
	if err != nil {
		return err
	}
	if w.native != nil {
		nativeErr := w.native.Focus()
		if nativeErr == nil {
			return nil
		}
		if !errors.Is(nativeErr, platform.ErrUnsupported) {
			slog.Debug("[window] native focus failed, raising through always-on-top", "error", nativeErr)
		}
	}
	w.mu.Lock()
	restore := w.alwaysOnTop
	w.mu.Unlock()
	runtimeWindowSetAlwaysOnTopFn(ctx, true)
	if !restore {
		runtimeWindowSetAlwaysOnTopFn(ctx, false)
	}
	return nil
}

func (w *wailsWindow) Size() (window.Size, error) {
	ctx, err := w.context()
	if err != nil {
		return window.Size{}, err
	}
	width, height := runtimeWindowGetSizeFn(ctx)
	return window.Size{Width: width, Height: height}, nil
}

func (w *wailsWindow) SetSize(size window.Size) error {
	ctx, err := w.context()
	if err != nil {
		return err
	}
	if size.Width <= 0 || size.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", size.Width, size.Height)
	}
	runtimeWindowSetSizeFn(ctx, size.Width, size.Height)
	return nil
}

func (w *wailsWindow) SetPosition(p window.Point) error {
	ctx, err := w.context()
	if err != nil {
		return err
	}
	runtimeWindowSetPositionFn(ctx, p.X, p.Y)
	return nil
}

func (w *wailsWindow) SetAlwaysOnTop(enabled bool) error {
	ctx, err := w.context()
	if err != nil {
		return err
	}
	runtimeWindowSetAlwaysOnTopFn(ctx, enabled)
	w.mu.Lock()
	w.alwaysOnTop = enabled
	w.mu.Unlock()
	return nil
}

// WorkArea returns the size of the monitor hosting the window, or of the
// primary monitor, with its origin at 0,0.
//
// NOTE: this is the full screen, not the OS work area. Wails reports no
// work area, and runtime.WindowSetPosition is relative to the current
// monitor, so only the size is meaningful. Menu bars and top panels are not
// subtracted; the configured top margin (54px by default) is what keeps the
// window clear of them. A bottom dock or taskbar does not matter because
// the window is anchored to the top.
func (w *wailsWindow) WorkArea() (window.Rect, error) {
	ctx, err := w.context()
	if err != nil {
		return window.Rect{}, err
	}
	screens, err := runtimeScreenGetAllFn(ctx)
	if err != nil {
		return window.Rect{}, fmt.Errorf("list screens: %w", err)
	}
	var chosen *runtime.Screen
	for i := range screens {
		if screens[i].IsCurrent {
			chosen = &screens[i]
			break
		}
		if screens[i].IsPrimary && chosen == nil {
			chosen = &screens[i]
		}
	}
	if chosen == nil {
		return window.Rect{}, errors.New("no screen reported")
	}
	return window.Rect{Width: chosen.Size.Width, Height: chosen.Size.Height}, nil
}

// SetSkipTaskbar lets the window serve as an iconvis.TaskbarWindow.
func (w *wailsWindow) SetSkipTaskbar(skip bool) error {
	if w.native == nil {
		return platform.ErrUnsupported
	}
	return w.native.SetSkipTaskbar(skip)
}
