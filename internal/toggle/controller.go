// Package toggle implements the show/hide protocol for the main window.
//
// Two modes exist. In ModeNative the host reports live visibility and the
// controller shows or hides the window itself. In ModeDelegated the host
// cannot be trusted to report visibility, so the controller only flips the
// shared visibility flag and tells the front end, which performs the actual
// show/hide. The asymmetry mirrors a real host capability gap and is kept
// on purpose.
package toggle

import (
	"fmt"
	"log/slog"
	"sync"

	"quickpanel/internal/visibility"
	"quickpanel/internal/window"
)

const (
	// EventFocusTextInput asks the UI to reset and focus its input field.
	EventFocusTextInput = "focus-text-input"
	// EventToggleWindowVisibility carries the new hidden flag in ModeDelegated.
	EventToggleWindowVisibility = "toggle-window-visibility"
)

// Mode selects who decides between show and hide.
type Mode int

const (
	ModeNative Mode = iota
	ModeDelegated
)

func (m Mode) String() string {
	switch m {
	case ModeNative:
		return "native"
	case ModeDelegated:
		return "delegated"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Outcome reports what a request did.
type Outcome int

const (
	// OutcomeDropped means the main window could not be resolved.
	OutcomeDropped Outcome = iota
	// OutcomeQueryFailed means live visibility could not be read.
	OutcomeQueryFailed
	OutcomeShown
	OutcomeHidden
	// OutcomeDelegated means the flag was flipped and the UI was notified.
	OutcomeDelegated
	// OutcomeUnchanged means a reveal found the window already shown.
	OutcomeUnchanged
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDropped:
		return "dropped"
	case OutcomeQueryFailed:
		return "query-failed"
	case OutcomeShown:
		return "shown"
	case OutcomeHidden:
		return "hidden"
	case OutcomeDelegated:
		return "delegated"
	case OutcomeUnchanged:
		return "unchanged"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Emitter delivers an event to the front end.
type Emitter interface {
	Emit(name string, payload any) error
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(name string, payload any) error

// Emit calls f.
func (f EmitterFunc) Emit(name string, payload any) error {
	return f(name, payload)
}

// Controller runs toggle requests one at a time.
type Controller struct {
	mode    Mode
	windows window.Resolver
	state   *visibility.State
	emitter Emitter

	// dispatchMu serializes requests arriving from the shortcut listener and
	// from instance activation. Toggle is a read-then-act sequence against
	// the host (IsVisible, then Show or Hide); two interleaved requests would
	// both read "hidden" and both show, losing a transition. It is separate
	// from the visibility flag lock so that lock is never held across a host
	// call, which may block on the UI thread.
	dispatchMu sync.Mutex
}

// NewController builds a Controller. state may be nil in ModeNative.
func NewController(mode Mode, windows window.Resolver, state *visibility.State, emitter Emitter) *Controller {
	if state == nil {
		state = visibility.New()
	}
	return &Controller{
		mode:    mode,
		windows: windows,
		state:   state,
		emitter: emitter,
	}
}

// Mode returns the active mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Toggle flips the main window between shown and hidden.
func (c *Controller) Toggle() Outcome {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	w, ok := c.resolve()
	if !ok {
		return OutcomeDropped
	}
	if c.mode == ModeDelegated {
		return c.delegate()
	}

	visible, err := w.IsVisible()
	if err != nil {
		slog.Error("[toggle] failed to check window visibility", "error", err)
		return OutcomeQueryFailed
	}
	if visible {
		if err := w.Hide(); err != nil {
			slog.Error("[toggle] failed to hide window", "error", err)
		}
		return OutcomeHidden
	}
	c.reveal(w)
	return OutcomeShown
}

// Reveal brings the main window forward without ever hiding it.
// Used when another launch of the application asks for activation.
func (c *Controller) Reveal() Outcome {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	w, ok := c.resolve()
	if !ok {
		return OutcomeDropped
	}
	if c.mode == ModeDelegated {
		if !c.state.Read() {
			slog.Debug("[toggle] reveal skipped, window flag already shown")
			return OutcomeUnchanged
		}
		return c.delegate()
	}

	visible, err := w.IsVisible()
	if err != nil {
		slog.Error("[toggle] failed to check window visibility", "error", err)
		return OutcomeQueryFailed
	}
	if visible {
		if err := w.SetFocus(); err != nil {
			slog.Error("[toggle] failed to focus window", "error", err)
		}
		c.emit(EventFocusTextInput, map[string]any{})
		return OutcomeUnchanged
	}
	c.reveal(w)
	return OutcomeShown
}

func (c *Controller) resolve() (window.Handle, bool) {
	if c.windows == nil {
		slog.Error("[toggle] main window not found", "reason", "no resolver")
		return nil, false
	}
	w, ok := c.windows.MainWindow()
	if !ok || w == nil {
		slog.Error("[toggle] main window not found")
		return nil, false
	}
	return w, true
}

// reveal shows, focuses and notifies. Each step runs even if an earlier one
// failed.
func (c *Controller) reveal(w window.Handle) {
	if err := w.Show(); err != nil {
		slog.Error("[toggle] failed to show window", "error", err)
	}
	if err := w.SetFocus(); err != nil {
		slog.Error("[toggle] failed to focus window", "error", err)
	}
	c.emit(EventFocusTextInput, map[string]any{})
}

// delegate flips the flag and tells the front end. The payload is the new
// "hidden" value, not "visible": true asks the UI to hide itself. The flag
// starts false because the window is shown at launch, so the first press
// sends true.
//
// NOTE: emit runs after State.Toggle has released its lock. The event
// crosses into the webview and must not extend the critical section.
func (c *Controller) delegate() Outcome {
	hidden := c.state.Toggle()
	c.emit(EventToggleWindowVisibility, hidden)
	return OutcomeDelegated
}

func (c *Controller) emit(name string, payload any) {
	if c.emitter == nil {
		slog.Error("[toggle] event dropped, no emitter", "event", name)
		return
	}
	if err := c.emitter.Emit(name, payload); err != nil {
		slog.Error("[toggle] failed to emit event", "event", name, "error", err)
	}
}
