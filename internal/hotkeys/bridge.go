package hotkeys

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var (
	// ErrParse marks a shortcut string that could not be parsed. It is a
	// setup error: the string is compiled in or comes from config.
	ErrParse = errors.New("invalid toggle shortcut")
	// ErrRegister marks a shortcut the OS refused, typically because another
	// process already owns the combination. The app keeps running without it.
	ErrRegister = errors.New("failed to register toggle shortcut")
)

// State is the transition carried by a shortcut event.
type State int

const (
	StatePressed State = iota
	StateReleased
)

func (s State) String() string {
	if s == StatePressed {
		return "pressed"
	}
	return "released"
}

// Event is one transition of a registered shortcut.
type Event struct {
	Binding Binding
	State   State
}

// Registrar is the OS shortcut transport.
//
// OnShortcut attaches handler to the binding's event stream without making
// the binding live; Register makes it live. Keeping them separate guarantees
// a handler exists before the OS can deliver the first press. Handlers for
// one binding are invoked one at a time.
type Registrar interface {
	OnShortcut(b Binding, handler func(Event)) error
	Register(b Binding) error
	Unregister(b Binding) error
}

// Bridge owns the single toggle shortcut of the process.
type Bridge struct {
	reg Registrar

	mu     sync.Mutex
	active *Binding // nil until Setup succeeds
}

// NewBridge creates a Bridge on top of reg.
func NewBridge(reg Registrar) *Bridge {
	return &Bridge{reg: reg}
}

// Setup parses spec, attaches a listener that calls onPress on every press
// (releases are ignored) and then registers the combination with the OS.
// Parse failures wrap ErrParse, transport failures wrap ErrRegister.
// A Bridge accepts exactly one successful Setup.
func (b *Bridge) Setup(spec string, onPress func()) error {
	if onPress == nil {
		return errors.New("onPress callback is required")
	}
	binding, err := ParseBinding(spec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	if b.reg == nil {
		return fmt.Errorf("%w: no shortcut transport available", ErrRegister)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active != nil {
		return fmt.Errorf("shortcut already bound to %s", b.active.Normalized())
	}

	handler := func(ev Event) {
		if ev.State != StatePressed {
			return
		}
		onPress()
	}
	if err := b.reg.OnShortcut(binding, handler); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRegister, binding.Normalized(), err)
	}
	if err := b.reg.Register(binding); err != nil {
		if detachErr := b.reg.Unregister(binding); detachErr != nil {
			slog.Debug("[hotkey] detach after failed registration", "binding", binding.Normalized(), "error", detachErr)
		}
		return fmt.Errorf("%w: %s: %w", ErrRegister, binding.Normalized(), err)
	}

	b.active = &binding
	slog.Info("[hotkey] global shortcut registered", "binding", binding.Normalized())
	return nil
}

// ActiveBinding returns the normalized binding string, or "" before Setup.
func (b *Bridge) ActiveBinding() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == nil {
		return ""
	}
	return b.active.Normalized()
}

// Close unregisters the shortcut. Safe to call when Setup never succeeded.
func (b *Bridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == nil {
		return nil
	}
	binding := *b.active
	b.active = nil
	if err := b.reg.Unregister(binding); err != nil {
		return fmt.Errorf("unregister %s: %w", binding.Normalized(), err)
	}
	return nil
}
