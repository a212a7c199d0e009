package main

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"quickpanel/internal/config"
	"quickpanel/internal/hotkeys"
	"quickpanel/internal/iconvis"
	"quickpanel/internal/sessionlog"
	"quickpanel/internal/toggle"
	"quickpanel/internal/visibility"
)

// nativeWindow is the slice of internal/platform the app depends on.
type nativeWindow interface {
	VisibilitySupported() bool
	IsVisible() (bool, error)
	Focus() error
	SetSkipTaskbar(skip bool) error
	SetActivationPolicy(regular bool) error
	Close() error
}

// shortcutRegistrar is a hotkeys.Registrar that owns OS resources.
type shortcutRegistrar interface {
	hotkeys.Registrar
	Close() error
}

// activationServer receives activation requests from later launches.
type activationServer interface {
	Start(ctx context.Context) error
	Stop() error
}

// App is the Wails-bound application service.
type App struct {
	// Runtime context lifecycle.
	ctx   context.Context
	ctxMu sync.RWMutex

	// cfg is written once in startup; only LogLevel changes afterwards and
	// that goes through logLevel.
	cfg        config.Config
	configPath string
	logLevel   *slog.LevelVar
	sessionLog *sessionlog.Ring

	// Window services, built in startup.
	native     nativeWindow
	win        *wailsWindow
	state      *visibility.State
	controller *toggle.Controller
	icons      iconvis.Policy

	// Background services, built by the first domReady.
	servicesOnce sync.Once
	registrar    shortcutRegistrar
	shortcuts    *hotkeys.Bridge
	watcher      *config.Watcher
	ipcServer    activationServer

	bgCtx        context.Context
	bgCancel     context.CancelFunc
	shuttingDown atomic.Bool
}

// NewApp creates the app service. logLevel and ring are shared with the
// process-wide slog handler installed by main.
func NewApp(logLevel *slog.LevelVar, ring *sessionlog.Ring) *App {
	if logLevel == nil {
		logLevel = new(slog.LevelVar)
	}
	if ring == nil {
		ring = sessionlog.NewRing(sessionlog.DefaultCapacity)
	}
	return &App{
		logLevel:   logLevel,
		sessionLog: ring,
		state:      visibility.New(),
	}
}
