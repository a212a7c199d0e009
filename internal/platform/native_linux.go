//go:build linux

package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

const (
	wmStateRemove = 0
	wmStateAdd    = 1

	// Source indication for EWMH client messages: 1 = normal application.
	sourceApplication = 1
)

var netAtomNames = []string{
	"_NET_CLIENT_LIST",
	"_NET_WM_PID",
	"_NET_WM_NAME",
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_STATE",
	"_NET_WM_STATE_SKIP_TASKBAR",
	"_NET_WM_STATE_SKIP_PAGER",
	"UTF8_STRING",
}

// Native drives the main window through the X server. It stays usable
// without a display: VisibilitySupported then reports false and every
// operation returns ErrUnsupported.
type Native struct {
	title string
	pid   uint32

	mu    sync.Mutex
	conn  *xgb.Conn
	root  xproto.Window
	atoms map[string]xproto.Atom
	win   xproto.Window
}

var connectX = func() (*xgb.Conn, error) {
	return xgb.NewConn()
}

// New connects to the X server named by DISPLAY. A native Wayland session
// or a missing display is not an error.
func New(title string) (*Native, error) {
	n := &Native{title: title, pid: uint32(os.Getpid())}
	if !x11Session() {
		slog.Info("[platform] no X11 session, native window operations disabled")
		return n, nil
	}
	conn, err := connectX()
	if err != nil {
		slog.Warn("[platform] failed to connect to X server, native window operations disabled", "error", err)
		return n, nil
	}
	atoms, err := internAtoms(conn, netAtomNames)
	if err != nil {
		conn.Close()
		return nil, err
	}
	n.conn = conn
	n.root = xproto.Setup(conn).DefaultScreen(conn).Root
	n.atoms = atoms
	return n, nil
}

// x11Session reports whether GTK will create X11 windows for this process.
func x11Session() bool {
	if os.Getenv("DISPLAY") == "" {
		return false
	}
	if os.Getenv("WAYLAND_DISPLAY") == "" {
		return true
	}
	return strings.HasPrefix(os.Getenv("GDK_BACKEND"), "x11")
}

func internAtoms(conn *xgb.Conn, names []string) (map[string]xproto.Atom, error) {
	cookies := make([]xproto.InternAtomCookie, len(names))
	for i, name := range names {
		cookies[i] = xproto.InternAtom(conn, false, uint16(len(name)), name)
	}
	atoms := make(map[string]xproto.Atom, len(names))
	for i, cookie := range cookies {
		reply, err := cookie.Reply()
		if err != nil {
			return nil, fmt.Errorf("intern atom %s: %w", names[i], err)
		}
		atoms[names[i]] = reply.Atom
	}
	return atoms, nil
}

// VisibilitySupported reports whether an X connection is available.
func (n *Native) VisibilitySupported() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.conn != nil
}

// IsVisible reports whether the main window is mapped and viewable.
func (n *Native) IsVisible() (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	win, err := n.window()
	if err != nil {
		return false, err
	}
	attrs, err := xproto.GetWindowAttributes(n.conn, win).Reply()
	if err != nil {
		n.win = 0
		return false, fmt.Errorf("get window attributes: %w", err)
	}
	return attrs.MapState == xproto.MapStateViewable, nil
}

// Focus asks the window manager to activate the main window.
func (n *Native) Focus() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	win, err := n.window()
	if err != nil {
		return err
	}
	return n.sendClientMessage(win, n.atoms["_NET_ACTIVE_WINDOW"], []uint32{sourceApplication, uint32(xproto.TimeCurrentTime), 0, 0, 0})
}

// SetSkipTaskbar adds or removes the skip-taskbar and skip-pager states.
// Mapped windows are changed through the window manager; withdrawn windows
// get the property written directly so the manager honours it on map.
func (n *Native) SetSkipTaskbar(skip bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	win, err := n.window()
	if err != nil {
		return err
	}
	skipTaskbar := n.atoms["_NET_WM_STATE_SKIP_TASKBAR"]
	skipPager := n.atoms["_NET_WM_STATE_SKIP_PAGER"]

	attrs, err := xproto.GetWindowAttributes(n.conn, win).Reply()
	if err != nil {
		n.win = 0
		return fmt.Errorf("get window attributes: %w", err)
	}
	if attrs.MapState == xproto.MapStateUnmapped {
		return n.rewriteWMState(win, skip, skipTaskbar, skipPager)
	}

	action := uint32(wmStateRemove)
	if skip {
		action = wmStateAdd
	}
	return n.sendClientMessage(win, n.atoms["_NET_WM_STATE"], []uint32{action, uint32(skipTaskbar), uint32(skipPager), sourceApplication, 0})
}

// SetActivationPolicy is a macOS concept.
func (n *Native) SetActivationPolicy(bool) error { return ErrUnsupported }

// Close drops the X connection.
func (n *Native) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.conn != nil {
		n.conn.Close()
		n.conn = nil
	}
	n.win = 0
	return nil
}

// window returns the cached main window, locating it on first use. The
// window leaves _NET_CLIENT_LIST while hidden, so the cache must survive
// unmapping. Caller holds n.mu.
func (n *Native) window() (xproto.Window, error) {
	if n.conn == nil {
		return 0, ErrUnsupported
	}
	if n.win != 0 {
		return n.win, nil
	}
	clients, err := n.cardinals(n.root, n.atoms["_NET_CLIENT_LIST"], xproto.AtomWindow)
	if err != nil {
		return 0, fmt.Errorf("read client list: %w", err)
	}
	var candidates []xproto.Window
	for _, c := range clients {
		win := xproto.Window(c)
		pids, err := n.cardinals(win, n.atoms["_NET_WM_PID"], xproto.AtomCardinal)
		if err != nil || len(pids) == 0 || pids[0] != n.pid {
			continue
		}
		candidates = append(candidates, win)
	}
	switch len(candidates) {
	case 0:
		return 0, ErrWindowNotFound
	case 1:
		n.win = candidates[0]
		return n.win, nil
	}
	for _, win := range candidates {
		if n.windowTitle(win) == n.title {
			n.win = win
			return win, nil
		}
	}
	n.win = candidates[0]
	return n.win, nil
}

func (n *Native) windowTitle(win xproto.Window) string {
	reply, err := xproto.GetProperty(n.conn, false, win, n.atoms["_NET_WM_NAME"], n.atoms["UTF8_STRING"], 0, 256).Reply()
	if err != nil || reply == nil {
		return ""
	}
	return string(reply.Value)
}

func (n *Native) cardinals(win xproto.Window, prop, typ xproto.Atom) ([]uint32, error) {
	reply, err := xproto.GetProperty(n.conn, false, win, prop, typ, 0, 1<<16).Reply()
	if err != nil {
		return nil, err
	}
	if reply == nil || reply.Format != 32 {
		return nil, nil
	}
	values := make([]uint32, 0, reply.ValueLen)
	for i := 0; i+4 <= len(reply.Value); i += 4 {
		values = append(values, xgb.Get32(reply.Value[i:]))
	}
	return values, nil
}

func (n *Native) rewriteWMState(win xproto.Window, skip bool, states ...xproto.Atom) error {
	wmState := n.atoms["_NET_WM_STATE"]
	current, err := n.cardinals(win, wmState, xproto.AtomAtom)
	if err != nil {
		return fmt.Errorf("read _NET_WM_STATE: %w", err)
	}
	next := make([]uint32, 0, len(current)+len(states))
	for _, atom := range current {
		keep := true
		for _, s := range states {
			if atom == uint32(s) {
				keep = false
				break
			}
		}
		if keep {
			next = append(next, atom)
		}
	}
	if skip {
		for _, s := range states {
			next = append(next, uint32(s))
		}
	}
	buf := make([]byte, 4*len(next))
	for i, v := range next {
		xgb.Put32(buf[4*i:], v)
	}
	if err := xproto.ChangePropertyChecked(n.conn, xproto.PropModeReplace, win, wmState, xproto.AtomAtom, 32, uint32(len(next)), buf).Check(); err != nil {
		return fmt.Errorf("write _NET_WM_STATE: %w", err)
	}
	return nil
}

func (n *Native) sendClientMessage(win xproto.Window, typ xproto.Atom, data []uint32) error {
	if len(data) != 5 {
		return errors.New("client message requires five data words")
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   typ,
		Data:   xproto.ClientMessageDataUnionData32New(data),
	}
	mask := uint32(xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify)
	if err := xproto.SendEventChecked(n.conn, false, n.root, mask, string(ev.Bytes())).Check(); err != nil {
		return fmt.Errorf("send client message: %w", err)
	}
	return nil
}
