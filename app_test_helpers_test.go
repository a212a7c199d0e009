package main

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"quickpanel/internal/config"
	"quickpanel/internal/hotkeys"
	"quickpanel/internal/ipc"
	"quickpanel/internal/platform"
	"quickpanel/internal/sessionlog"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// NOTE: tests in this package replace package-level function variables.
// Do not use t.Parallel() here.

type emittedEvent struct {
	name    string
	payload any
}

// fakeHost stands in for the Wails runtime window and event APIs.
type fakeHost struct {
	mu          sync.Mutex
	width       int
	height      int
	x, y        int
	alwaysOnTop []bool
	shows       int
	hides       int
	events      []emittedEvent
	screens     []runtime.Screen
	screenErr   error
	quits       int
}

func (h *fakeHost) eventNames() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, 0, len(h.events))
	for _, e := range h.events {
		names = append(names, e.name)
	}
	return names
}

func testScreen(current, primary bool, width, height int) runtime.Screen {
	s := runtime.Screen{IsCurrent: current, IsPrimary: primary}
	s.Size.Width = width
	s.Size.Height = height
	return s
}

func installFakeHost(t *testing.T) *fakeHost {
	t.Helper()
	host := &fakeHost{
		width:  config.DefaultWindowWidth,
		height: config.DefaultWindowHeight,
		screens: []runtime.Screen{testScreen(false, true, 1920, 1080)},
	}

	origShow, origHide, origUnmin := runtimeWindowShowFn, runtimeWindowHideFn, runtimeWindowUnminimiseFn
	origGetSize, origSetSize, origSetPos := runtimeWindowGetSizeFn, runtimeWindowSetSizeFn, runtimeWindowSetPositionFn
	origAOT, origScreens := runtimeWindowSetAlwaysOnTopFn, runtimeScreenGetAllFn
	origEmit, origQuit := runtimeEventsEmitFn, runtimeQuitFn
	t.Cleanup(func() {
		runtimeWindowShowFn, runtimeWindowHideFn, runtimeWindowUnminimiseFn = origShow, origHide, origUnmin
		runtimeWindowGetSizeFn, runtimeWindowSetSizeFn, runtimeWindowSetPositionFn = origGetSize, origSetSize, origSetPos
		runtimeWindowSetAlwaysOnTopFn, runtimeScreenGetAllFn = origAOT, origScreens
		runtimeEventsEmitFn, runtimeQuitFn = origEmit, origQuit
	})

	runtimeWindowShowFn = func(context.Context) {
		host.mu.Lock()
		host.shows++
		host.mu.Unlock()
	}
	runtimeWindowHideFn = func(context.Context) {
		host.mu.Lock()
		host.hides++
		host.mu.Unlock()
	}
	runtimeWindowUnminimiseFn = func(context.Context) {}
	runtimeWindowGetSizeFn = func(context.Context) (int, int) {
		host.mu.Lock()
		defer host.mu.Unlock()
		return host.width, host.height
	}
	runtimeWindowSetSizeFn = func(_ context.Context, w, h int) {
		host.mu.Lock()
		host.width, host.height = w, h
		host.mu.Unlock()
	}
	runtimeWindowSetPositionFn = func(_ context.Context, x, y int) {
		host.mu.Lock()
		host.x, host.y = x, y
		host.mu.Unlock()
	}
	runtimeWindowSetAlwaysOnTopFn = func(_ context.Context, b bool) {
		host.mu.Lock()
		host.alwaysOnTop = append(host.alwaysOnTop, b)
		host.mu.Unlock()
	}
	runtimeScreenGetAllFn = func(context.Context) ([]runtime.Screen, error) {
		host.mu.Lock()
		defer host.mu.Unlock()
		return host.screens, host.screenErr
	}
	runtimeEventsEmitFn = func(_ context.Context, name string, data ...any) {
		host.mu.Lock()
		defer host.mu.Unlock()
		var payload any
		if len(data) > 0 {
			payload = data[0]
		}
		host.events = append(host.events, emittedEvent{name: name, payload: payload})
	}
	runtimeQuitFn = func(context.Context) {
		host.mu.Lock()
		host.quits++
		host.mu.Unlock()
	}
	return host
}

// fakeNative implements nativeWindow.
type fakeNative struct {
	mu         sync.Mutex
	supported  bool
	visible    bool
	visibleErr error
	focusErr   error
	focuses    int
	skip       []bool
	skipErr    error
	policies   []bool
	policyErr  error
	closed     int
}

func (n *fakeNative) VisibilitySupported() bool { return n.supported }

func (n *fakeNative) IsVisible() (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visible, n.visibleErr
}

func (n *fakeNative) Focus() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.focuses++
	return n.focusErr
}

func (n *fakeNative) SetSkipTaskbar(skip bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.skipErr != nil {
		return n.skipErr
	}
	n.skip = append(n.skip, skip)
	return nil
}

func (n *fakeNative) SetActivationPolicy(regular bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.policyErr != nil {
		return n.policyErr
	}
	n.policies = append(n.policies, regular)
	return nil
}

func (n *fakeNative) Close() error {
	n.mu.Lock()
	n.closed++
	n.mu.Unlock()
	return nil
}

// fakeRegistrar implements shortcutRegistrar.
type fakeRegistrar struct {
	mu          sync.Mutex
	handlers    map[string]func(hotkeys.Event)
	registerErr error
	registered  []string
	closed      int
}

func (r *fakeRegistrar) OnShortcut(b hotkeys.Binding, h func(hotkeys.Event)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.handlers == nil {
		r.handlers = map[string]func(hotkeys.Event){}
	}
	r.handlers[b.Normalized()] = h
	return nil
}

func (r *fakeRegistrar) Register(b hotkeys.Binding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.registerErr != nil {
		return r.registerErr
	}
	r.registered = append(r.registered, b.Normalized())
	return nil
}

func (r *fakeRegistrar) Unregister(b hotkeys.Binding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, b.Normalized())
	return nil
}

func (r *fakeRegistrar) Close() error {
	r.mu.Lock()
	r.closed++
	r.mu.Unlock()
	return nil
}

// press simulates the OS delivering a press for the only attached binding.
func (r *fakeRegistrar) press(t *testing.T) {
	t.Helper()
	r.mu.Lock()
	var handler func(hotkeys.Event)
	for _, h := range r.handlers {
		handler = h
	}
	r.mu.Unlock()
	if handler == nil {
		t.Fatal("no shortcut handler attached")
	}
	handler(hotkeys.Event{State: hotkeys.StatePressed})
	handler(hotkeys.Event{State: hotkeys.StateReleased})
}

type fakeActivationServer struct {
	startErr error
	started  int
	stopped  int
}

func (s *fakeActivationServer) Start(context.Context) error {
	s.started++
	return s.startErr
}

func (s *fakeActivationServer) Stop() error {
	s.stopped++
	return nil
}

type lifecycleDeps struct {
	host      *fakeHost
	native    *fakeNative
	registrar *fakeRegistrar
	server    *fakeActivationServer
	notices   *[]string
}

// installLifecycleDeps replaces every constructor seam used by startup and
// domReady with a fake.
func installLifecycleDeps(t *testing.T, cfg config.Config, native *fakeNative) lifecycleDeps {
	t.Helper()
	deps := lifecycleDeps{
		host:      installFakeHost(t),
		native:    native,
		registrar: &fakeRegistrar{},
		server:    &fakeActivationServer{},
		notices:   &[]string{},
	}

	origPath, origLoad, origWatch := configPathFn, loadConfigFn, watchConfigFn
	origNative, origReg, origIPC := newNativeFn, newRegistrarFn, newIPCServerFn
	origNotify, origLogger := beeepNotifyFn, runtimeLogger
	t.Cleanup(func() {
		configPathFn, loadConfigFn, watchConfigFn = origPath, origLoad, origWatch
		newNativeFn, newRegistrarFn, newIPCServerFn = origNative, origReg, origIPC
		beeepNotifyFn, runtimeLogger = origNotify, origLogger
	})

	configPathFn = func() string { return "/tmp/quickpanel-test/config.yaml" }
	loadConfigFn = func(string) (config.Config, error) { return cfg, nil }
	watchConfigFn = func(context.Context, string, func(config.Config)) (*config.Watcher, error) {
		return nil, errors.New("watch disabled in tests")
	}
	newNativeFn = func(string) (nativeWindow, error) {
		if native == nil {
			return nil, platform.ErrUnsupported
		}
		return native, nil
	}
	newRegistrarFn = func(context.Context) shortcutRegistrar { return deps.registrar }
	newIPCServerFn = func(string, ipc.Handler) activationServer { return deps.server }
	beeepNotifyFn = func(title, message string) error {
		*deps.notices = append(*deps.notices, title+": "+message)
		return nil
	}
	runtimeLogger = silentRuntimeLogger{}
	return deps
}

type silentRuntimeLogger struct{}

func (silentRuntimeLogger) Warningf(_ context.Context, m string, a ...any) { slog.Warn(m, "args", a) }
func (silentRuntimeLogger) Infof(_ context.Context, m string, a ...any)    { slog.Info(m, "args", a) }
func (silentRuntimeLogger) Errorf(_ context.Context, m string, a ...any)   { slog.Error(m, "args", a) }

func newTestApp() *App {
	return NewApp(new(slog.LevelVar), sessionlog.NewRing(16))
}

// startTestApp runs startup and domReady against the installed fakes.
func startTestApp(t *testing.T) *App {
	t.Helper()
	app := newTestApp()
	ctx := context.Background()
	app.startup(ctx)
	app.domReady(ctx)
	t.Cleanup(func() { app.shutdown(ctx) })
	return app
}
