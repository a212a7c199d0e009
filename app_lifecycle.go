package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"quickpanel/internal/config"
	"quickpanel/internal/hotkeys"
	"quickpanel/internal/hotkeys/xhotkey"
	"quickpanel/internal/iconvis"
	"quickpanel/internal/ipc"
	"quickpanel/internal/platform"
	"quickpanel/internal/toggle"
	"quickpanel/internal/window"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

type appRuntimeLogger interface {
	Warningf(context.Context, string, ...any)
	Infof(context.Context, string, ...any)
	Errorf(context.Context, string, ...any)
}

// wailsRuntimeLogger writes every message to slog, so it reaches the
// session log, and mirrors it to the Wails log once the runtime is up.
type wailsRuntimeLogger struct{}

func (wailsRuntimeLogger) Warningf(ctx context.Context, message string, args ...any) {
	slog.Warn("[app] " + fmt.Sprintf(message, args...))
	if ctx != nil {
		runtime.LogWarningf(ctx, message, args...)
	}
}

func (wailsRuntimeLogger) Infof(ctx context.Context, message string, args ...any) {
	slog.Info("[app] " + fmt.Sprintf(message, args...))
	if ctx != nil {
		runtime.LogInfof(ctx, message, args...)
	}
}

func (wailsRuntimeLogger) Errorf(ctx context.Context, message string, args ...any) {
	slog.Error("[app] " + fmt.Sprintf(message, args...))
	if ctx != nil {
		runtime.LogErrorf(ctx, message, args...)
	}
}

var (
	runtimeEventsEmitFn                  = runtime.EventsEmit
	runtimeQuitFn                        = runtime.Quit
	runtimeLogger       appRuntimeLogger = wailsRuntimeLogger{}
	configPathFn                         = config.DefaultPath
	loadConfigFn                         = config.Load
	watchConfigFn                        = config.Watch
)

var newIPCServerFn = func(endpoint string, h ipc.Handler) activationServer {
	return ipc.NewServer(endpoint, h)
}

var newNativeFn = func(title string) (nativeWindow, error) {
	n, err := platform.New(title)
	if err != nil {
		return nil, err
	}
	return n, nil
}

var newRegistrarFn = func(ctx context.Context) shortcutRegistrar {
	return xhotkey.New(ctx)
}

// loadConfig reads the config file once. main calls it before wails.Run
// because the window options depend on it.
func (a *App) loadConfig() {
	a.configPath = configPathFn()
	cfg, err := loadConfigFn(a.configPath)
	if err != nil {
		runtimeLogger.Warningf(a.runtimeContext(), "failed to load config from %s, using defaults: %v", a.configPath, err)
	}
	a.cfg = cfg
	a.applyLogLevel(cfg.LogLevel)
}

func (a *App) startup(ctx context.Context) {
	a.setRuntimeContext(ctx)
	if a.configPath == "" {
		a.loadConfig()
	}
	cfg := a.cfg

	native, err := newNativeFn(cfg.Window.Title)
	if err != nil {
		runtimeLogger.Warningf(ctx, "native window helpers unavailable: %v", err)
		native = nil
	}
	a.native = native
	a.win = newWailsWindow(a.runtimeContext, native, cfg.AlwaysOnTop)

	// Without a trustworthy visibility query (Windows, Wayland, no X display)
	// the front end owns show/hide and the controller only tracks the flag.
	mode := toggle.ModeDelegated
	if native != nil && native.VisibilitySupported() {
		mode = toggle.ModeNative
	}
	a.controller = toggle.NewController(mode, window.ResolverFunc(a.mainWindow), a.state, toggle.EmitterFunc(a.emitEvent))
	a.icons = iconvis.NewPlatformPolicy(activationPolicySetter{native: native}, a.taskbarWindow)

	bgCtx, cancel := context.WithCancel(ctx)
	a.bgCtx = bgCtx
	a.bgCancel = cancel

	runtimeLogger.Infof(ctx, "window toggle mode: %s, icon policy: %s", mode, a.icons.Name())
}

// domReady runs after every page load. The window is re-positioned each
// time; the background services start only on the first call, because a
// second shortcut registration would collide with the first and leak it.
// Positioning failure ends the app; shortcut failure leaves it running
// without a global shortcut.
func (a *App) domReady(ctx context.Context) {
	if err := a.positionWindow(); err != nil {
		runtimeLogger.Errorf(ctx, "failed to set up main window: %v", err)
		runtimeQuitFn(ctx)
		return
	}
	a.servicesOnce.Do(func() { a.startServices(ctx) })
}

func (a *App) startServices(ctx context.Context) {
	cfg := a.cfg

	if err := a.setupShortcut(); err != nil {
		runtimeLogger.Errorf(ctx, "global shortcut unavailable: %v", err)
		a.notifyShortcutUnavailable(err)
	}

	if err := a.icons.Apply(cfg.IconVisible); err != nil {
		runtimeLogger.Warningf(ctx, "failed to apply initial icon visibility: %v", err)
	}
	if err := a.win.SetAlwaysOnTop(cfg.AlwaysOnTop); err != nil {
		runtimeLogger.Warningf(ctx, "failed to apply initial always-on-top: %v", err)
	}

	a.startConfigWatcher()
	a.startIPCServer()
}

func (a *App) positionWindow() error {
	w, ok := a.mainWindow()
	if !ok {
		return window.ErrNotFound
	}
	return window.PositionTopCenter(w, a.cfg.Window.TopMargin)
}

func (a *App) setupShortcut() error {
	spec := a.cfg.ToggleShortcut
	if spec == "" {
		spec = hotkeys.DefaultToggleShortcut
	}
	a.registrar = newRegistrarFn(a.bgCtx)
	a.shortcuts = hotkeys.NewBridge(a.registrar)
	return a.shortcuts.Setup(spec, a.onTogglePressed)
}

func (a *App) onTogglePressed() {
	outcome := a.controller.Toggle()
	slog.Debug("[hotkey] toggle handled", "outcome", outcome)
}

func (a *App) startConfigWatcher() {
	w, err := watchConfigFn(a.bgCtx, a.configPath, a.onConfigReloaded)
	if err != nil {
		slog.Debug("[config] hot reload disabled", "path", a.configPath, "error", err)
		return
	}
	a.watcher = w
}

// onConfigReloaded applies the log level. Everything else is fixed for the
// lifetime of the process.
func (a *App) onConfigReloaded(cfg config.Config) {
	a.applyLogLevel(cfg.LogLevel)
	if cfg.ToggleShortcut != a.cfg.ToggleShortcut {
		slog.Info("[config] toggle_shortcut changed, restart to apply", "current", a.shortcuts.ActiveBinding())
	}
}

func (a *App) startIPCServer() {
	server := newIPCServerFn("", ipc.HandlerFunc(a.handleIPCRequest))
	if err := server.Start(a.bgCtx); err != nil {
		runtimeLogger.Warningf(a.runtimeContext(), "instance activation unavailable: %v", err)
		return
	}
	a.ipcServer = server
}

func (a *App) handleIPCRequest(req ipc.Request) ipc.Response {
	switch req.Command {
	case ipc.CommandActivateWindow:
		outcome := a.controller.Reveal()
		switch outcome {
		case toggle.OutcomeDropped, toggle.OutcomeQueryFailed:
			return ipc.ErrorResponse(req, outcome.String())
		}
		return ipc.Response{ID: req.ID, OK: true}
	default:
		return ipc.ErrorResponse(req, fmt.Sprintf("unknown command %q", req.Command))
	}
}

func (a *App) shutdown(ctx context.Context) {
	a.shuttingDown.Store(true)

	var errs []error
	if a.shortcuts != nil {
		if err := a.shortcuts.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close shortcut: %w", err))
		}
	}
	if a.registrar != nil {
		if err := a.registrar.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close shortcut transport: %w", err))
		}
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close config watcher: %w", err))
		}
	}
	if a.ipcServer != nil {
		if err := a.ipcServer.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop ipc server: %w", err))
		}
	}
	if a.bgCancel != nil {
		a.bgCancel()
	}
	if a.native != nil {
		if err := a.native.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close native helpers: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		runtimeLogger.Warningf(ctx, "shutdown completed with errors: %v", err)
	}
}

// emitEvent delivers a front-end event through the Wails runtime.
func (a *App) emitEvent(name string, payload any) error {
	ctx := a.runtimeContext()
	if ctx == nil {
		return errNoRuntime
	}
	runtimeEventsEmitFn(ctx, name, payload)
	return nil
}

func (a *App) taskbarWindow() (iconvis.TaskbarWindow, bool) {
	w, ok := a.mainWindow()
	if !ok {
		return nil, false
	}
	tw, ok := w.(iconvis.TaskbarWindow)
	return tw, ok
}

type activationPolicySetter struct {
	native nativeWindow
}

func (s activationPolicySetter) SetActivationPolicy(p iconvis.ActivationPolicy) error {
	if s.native == nil {
		return platform.ErrUnsupported
	}
	return s.native.SetActivationPolicy(p == iconvis.ActivationRegular)
}
