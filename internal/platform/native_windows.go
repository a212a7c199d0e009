//go:build windows

package platform

import (
	"fmt"
	"log/slog"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32DLL = syscall.NewLazyDLL("user32.dll")

	procFindWindowW         = user32DLL.NewProc("FindWindowW")
	procIsWindow            = user32DLL.NewProc("IsWindow")
	procIsWindowVisible     = user32DLL.NewProc("IsWindowVisible")
	procSetForegroundWindow = user32DLL.NewProc("SetForegroundWindow")
	procGetWindowLongPtrW   = user32DLL.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW   = user32DLL.NewProc("SetWindowLongPtrW")
	procSetWindowPos        = user32DLL.NewProc("SetWindowPos")
)

const (
	gwlExStyle = -20

	wsExToolWindow = 0x00000080
	wsExAppWindow  = 0x00040000

	swpNoSize         = 0x0001
	swpNoMove         = 0x0002
	swpNoZOrder       = 0x0004
	swpNoActivate     = 0x0010
	swpFrameChanged   = 0x0020
	swpStyleRefreshes = swpNoSize | swpNoMove | swpNoZOrder | swpNoActivate | swpFrameChanged
)

// Native locates the main HWND by its title and drives it through user32.
type Native struct {
	title string

	mu   sync.Mutex
	hwnd uintptr
}

// New returns user32 helpers bound to the window titled title.
func New(title string) (*Native, error) {
	if title == "" {
		return nil, fmt.Errorf("window title is required")
	}
	if err := user32DLL.Load(); err != nil {
		return nil, fmt.Errorf("load user32.dll: %w", err)
	}
	return &Native{title: title}, nil
}

// VisibilitySupported is false on Windows: visibility toggling is delegated
// to the front end, which keeps the WebView2 focus handling intact.
func (n *Native) VisibilitySupported() bool { return false }

// IsVisible reports the WS_VISIBLE state of the main window.
func (n *Native) IsVisible() (bool, error) {
	hwnd, err := n.window()
	if err != nil {
		return false, err
	}
	r, _, _ := procIsWindowVisible.Call(hwnd)
	return r != 0, nil
}

// Focus brings the main window to the foreground.
func (n *Native) Focus() error {
	hwnd, err := n.window()
	if err != nil {
		return err
	}
	r, _, callErr := procSetForegroundWindow.Call(hwnd)
	if r == 0 {
		return fmt.Errorf("SetForegroundWindow: %w", callErr)
	}
	return nil
}

// SetSkipTaskbar hides the taskbar button by turning the main window into a
// tool window, and restores it by switching back to an app window.
func (n *Native) SetSkipTaskbar(skip bool) error {
	hwnd, err := n.window()
	if err != nil {
		return err
	}
	idx := gwlExStyle
	style, _, _ := procGetWindowLongPtrW.Call(hwnd, uintptr(idx))
	next := style
	if skip {
		next = (next | wsExToolWindow) &^ wsExAppWindow
	} else {
		next = (next | wsExAppWindow) &^ wsExToolWindow
	}
	if next == style {
		return nil
	}
	// SetWindowLongPtrW returns the previous value; zero with a non-zero
	// last error means failure.
	r, _, callErr := procSetWindowLongPtrW.Call(hwnd, uintptr(idx), next)
	if r == 0 && callErr != windows.ERROR_SUCCESS {
		return fmt.Errorf("SetWindowLongPtrW: %w", callErr)
	}
	if r, _, callErr := procSetWindowPos.Call(hwnd, 0, 0, 0, 0, 0, swpStyleRefreshes); r == 0 {
		slog.Debug("[platform] SetWindowPos after style change failed", "error", callErr)
	}
	return nil
}

// SetActivationPolicy is a macOS concept.
func (n *Native) SetActivationPolicy(bool) error { return ErrUnsupported }

// Close forgets the cached handle.
func (n *Native) Close() error {
	n.mu.Lock()
	n.hwnd = 0
	n.mu.Unlock()
	return nil
}

func (n *Native) window() (uintptr, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.hwnd != 0 {
		if ok, _, _ := procIsWindow.Call(n.hwnd); ok != 0 {
			return n.hwnd, nil
		}
		n.hwnd = 0
	}
	titlePtr, err := windows.UTF16PtrFromString(n.title)
	if err != nil {
		return 0, fmt.Errorf("invalid window title %q: %w", n.title, err)
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(titlePtr)))
	if hwnd == 0 {
		return 0, ErrWindowNotFound
	}
	n.hwnd = hwnd
	return hwnd, nil
}
