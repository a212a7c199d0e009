// Package xhotkey registers global shortcuts with the operating system.
//
// macOS and Windows go through golang.design/x/hotkey. Everywhere else the
// shortcut is a passive key grab on the X11 root window made with
// github.com/jezek/xgb. x/hotkey cannot be linked there: its Linux init
// panics when no X display can be opened, which would kill the process on
// Wayland or headless machines before main runs.
package xhotkey

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"quickpanel/internal/hotkeys"
	"quickpanel/internal/workerutil"
)

// shortcut is one OS-level grab of a single binding.
type shortcut interface {
	Register() error
	Unregister() error
	// run delivers key transitions to emit until ctx is done or the grab
	// goes away. Transitions are delivered one at a time.
	run(ctx context.Context, emit func(hotkeys.State))
}

// newShortcutFn builds the platform grab for a binding. Translation errors
// surface here so OnShortcut can reject bindings the platform cannot grab.
var newShortcutFn = newShortcut

type entry struct {
	grab       shortcut
	cancel     context.CancelFunc
	registered bool
}

// Registrar implements hotkeys.Registrar. Each attached binding is drained
// by one listener goroutine, so its handler never runs concurrently with
// itself.
type Registrar struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	entries map[string]*entry
}

// New creates a Registrar whose listeners stop when parent is cancelled or
// Close is called.
func New(parent context.Context) *Registrar {
	ctx, cancel := context.WithCancel(parent)
	return &Registrar{
		ctx:     ctx,
		cancel:  cancel,
		entries: map[string]*entry{},
	}
}

// OnShortcut attaches handler to b. The OS does not deliver events until
// Register is called.
func (r *Registrar) OnShortcut(b hotkeys.Binding, handler func(hotkeys.Event)) error {
	if handler == nil {
		return errors.New("handler is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[b.Normalized()]; exists {
		return fmt.Errorf("listener already attached for %s", b.Normalized())
	}

	grab, err := newShortcutFn(b)
	if err != nil {
		return err
	}
	listenCtx, cancel := context.WithCancel(r.ctx)
	r.entries[b.Normalized()] = &entry{grab: grab, cancel: cancel}

	workerutil.RunWithPanicRecovery(listenCtx, "hotkey-listener", &r.wg, func(ctx context.Context) {
		grab.run(ctx, func(state hotkeys.State) {
			handler(hotkeys.Event{Binding: b, State: state})
		})
	}, workerutil.RecoveryOptions{})
	return nil
}

// Register makes b live at the OS level.
func (r *Registrar) Register(b hotkeys.Binding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[b.Normalized()]
	if !ok {
		return fmt.Errorf("no listener attached for %s", b.Normalized())
	}
	if e.registered {
		return nil
	}
	if err := e.grab.Register(); err != nil {
		return err
	}
	e.registered = true
	return nil
}

// Unregister releases b at the OS level and stops its listener.
func (r *Registrar) Unregister(b hotkeys.Binding) error {
	r.mu.Lock()
	e, ok := r.entries[b.Normalized()]
	delete(r.entries, b.Normalized())
	r.mu.Unlock()
	if !ok {
		return nil
	}
	e.cancel()
	if !e.registered {
		return nil
	}
	return e.grab.Unregister()
}

// Close unregisters every binding and waits for the listeners to exit.
func (r *Registrar) Close() error {
	r.mu.Lock()
	entries := r.entries
	r.entries = map[string]*entry{}
	r.mu.Unlock()

	var errs []error
	for name, e := range entries {
		e.cancel()
		if !e.registered {
			continue
		}
		if err := e.grab.Unregister(); err != nil {
			errs = append(errs, fmt.Errorf("unregister %s: %w", name, err))
		}
	}
	r.cancel()
	r.wg.Wait()
	return errors.Join(errs...)
}
