package window

import "errors"

const (
	// DefaultWidth is the fixed logical width applied by SetHeight.
	DefaultWidth = 700
	// DefaultTopMargin is the gap between the work-area top and the window.
	DefaultTopMargin = 54
)

var (
	// ErrNotFound is returned when the main window cannot be resolved.
	ErrNotFound = errors.New("main window not found")
	// ErrWorkArea is returned when no monitor work area can be resolved.
	ErrWorkArea = errors.New("monitor work area unavailable")
)

// Size is a logical width/height pair.
type Size struct {
	Width  int
	Height int
}

// Point is a logical screen coordinate.
type Point struct {
	X int
	Y int
}

// Rect is a logical screen rectangle.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Empty reports whether r has no usable area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Handle is the capability to drive the single main window.
// The window itself is owned by the host runtime; callers borrow a Handle
// for the duration of one operation and never retain it.
// All geometry is in logical pixels.
type Handle interface {
	IsVisible() (bool, error)
	Show() error
	Hide() error
	SetFocus() error
	Size() (Size, error)
	SetSize(size Size) error
	SetPosition(p Point) error
	SetAlwaysOnTop(enabled bool) error
	// WorkArea returns the work area of the monitor currently hosting the
	// window, or of the primary monitor when that cannot be determined.
	WorkArea() (Rect, error)
}

// Resolver looks up the main window at call time.
// ok is false when the window does not exist (not created yet or torn down).
type Resolver interface {
	MainWindow() (h Handle, ok bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func() (Handle, bool)

// MainWindow calls f.
func (f ResolverFunc) MainWindow() (Handle, bool) {
	return f()
}
