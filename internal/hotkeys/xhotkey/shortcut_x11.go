//go:build !darwin && !windows

package xhotkey

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"quickpanel/internal/hotkeys"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// lockMasks are the lock modifiers a passive grab must tolerate. Without
// them the shortcut stops working while Caps Lock or Num Lock (Mod2) is on.
var lockMasks = []uint16{
	0,
	xproto.ModMaskLock,
	xproto.ModMask2,
	xproto.ModMaskLock | xproto.ModMask2,
}

const ignoredMask = xproto.ModMaskLock | xproto.ModMask2

// connectX opens the X display. Tests replace it.
var connectX = func() (*xgb.Conn, error) {
	if os.Getenv("DISPLAY") == "" {
		return nil, errors.New("DISPLAY is not set")
	}
	return xgb.NewConn()
}

// x11Shortcut is a passive key grab on the root window. Each grab owns its
// own connection so Unregister can end the event reader by closing it.
type x11Shortcut struct {
	name   string
	mask   uint16
	keysym xproto.Keysym
	events chan hotkeys.State

	mu      sync.Mutex
	conn    *xgb.Conn
	root    xproto.Window
	keycode xproto.Keycode
	done    chan struct{}
}

func newShortcut(b hotkeys.Binding) (shortcut, error) {
	mask, sym, err := translate(b)
	if err != nil {
		return nil, err
	}
	return &x11Shortcut{
		name:   b.Normalized(),
		mask:   mask,
		keysym: sym,
		events: make(chan hotkeys.State, 8),
	}, nil
}

// Register connects to the X server and grabs the key combination with every
// lock-modifier variant. A combination already grabbed by another client
// fails with BadAccess.
func (s *x11Shortcut) Register() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return nil
	}

	conn, err := connectX()
	if err != nil {
		return fmt.Errorf("open X display: %w", err)
	}
	setup := xproto.Setup(conn)
	root := setup.DefaultScreen(conn).Root
	keycode, err := keycodeFor(conn, setup, s.keysym)
	if err != nil {
		conn.Close()
		return err
	}

	for i, extra := range lockMasks {
		cookie := xproto.GrabKeyChecked(conn, true, root, s.mask|extra, keycode, xproto.GrabModeAsync, xproto.GrabModeAsync)
		if err := cookie.Check(); err != nil {
			for _, undo := range lockMasks[:i] {
				xproto.UngrabKey(conn, keycode, root, s.mask|undo)
			}
			conn.Close()
			return fmt.Errorf("grab %s: %w", s.name, err)
		}
	}

	s.conn = conn
	s.root = root
	s.keycode = keycode
	s.done = make(chan struct{})
	go s.readEvents(conn, keycode, s.done)
	return nil
}

// Unregister releases the grab and closes the connection.
func (s *x11Shortcut) Unregister() error {
	s.mu.Lock()
	conn, done := s.conn, s.done
	s.conn, s.done = nil, nil
	s.mu.Unlock()
	if conn == nil {
		return nil
	}
	for _, extra := range lockMasks {
		xproto.UngrabKey(conn, s.keycode, s.root, s.mask|extra)
	}
	conn.Close()
	<-done
	return nil
}

func (s *x11Shortcut) run(ctx context.Context, emit func(hotkeys.State)) {
	for {
		select {
		case <-ctx.Done():
			return
		case state := <-s.events:
			emit(state)
		}
	}
}

// readEvents turns key events on the grab into transitions until the
// connection is closed. X autorepeat shows up as a release immediately
// followed by a press with the same timestamp; such pairs are dropped so a
// held key counts as one press.
func (s *x11Shortcut) readEvents(conn *xgb.Conn, keycode xproto.Keycode, done chan struct{}) {
	defer close(done)
	var pending xgb.Event
	for {
		ev := pending
		pending = nil
		if ev == nil {
			var xerr xgb.Error
			ev, xerr = conn.WaitForEvent()
			if ev == nil && xerr == nil {
				return
			}
			if xerr != nil {
				slog.Debug("[hotkey] X error on shortcut connection", "binding", s.name, "error", xerr)
				continue
			}
		}

		switch e := ev.(type) {
		case xproto.KeyPressEvent:
			if s.matches(e.Detail, e.State, keycode) {
				s.deliver(hotkeys.StatePressed)
			}
		case xproto.KeyReleaseEvent:
			if !s.matches(e.Detail, e.State, keycode) {
				continue
			}
			next, _ := conn.PollForEvent()
			if press, ok := next.(xproto.KeyPressEvent); ok && press.Detail == e.Detail && press.Time == e.Time {
				continue
			}
			pending = next
			s.deliver(hotkeys.StateReleased)
		}
	}
}

func (s *x11Shortcut) matches(detail xproto.Keycode, state uint16, keycode xproto.Keycode) bool {
	return detail == keycode && state&^ignoredMask == s.mask
}

// deliver drops the transition when the listener is far behind rather than
// blocking the X event reader.
func (s *x11Shortcut) deliver(state hotkeys.State) {
	select {
	case s.events <- state:
	default:
		slog.Warn("[hotkey] shortcut event dropped, listener is not keeping up", "binding", s.name, "state", state)
	}
}

// keycodeFor finds the keycode whose mapping contains sym.
func keycodeFor(conn *xgb.Conn, setup *xproto.SetupInfo, sym xproto.Keysym) (xproto.Keycode, error) {
	count := byte(setup.MaxKeycode - setup.MinKeycode + 1)
	reply, err := xproto.GetKeyboardMapping(conn, setup.MinKeycode, count).Reply()
	if err != nil {
		return 0, fmt.Errorf("read keyboard mapping: %w", err)
	}
	return findKeycode(setup.MinKeycode, int(reply.KeysymsPerKeycode), reply.Keysyms, sym)
}

func findKeycode(first xproto.Keycode, perKeycode int, keysyms []xproto.Keysym, sym xproto.Keysym) (xproto.Keycode, error) {
	if perKeycode <= 0 {
		return 0, errors.New("keyboard mapping reports no keysyms per keycode")
	}
	for i, candidate := range keysyms {
		if candidate == sym {
			return first + xproto.Keycode(i/perKeycode), nil
		}
	}
	return 0, fmt.Errorf("no keycode produces keysym %#x on this keyboard", uint32(sym))
}
