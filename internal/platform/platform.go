// Package platform holds the native window operations the Wails runtime does
// not expose: live visibility, foreground activation, the dock activation
// policy and the taskbar/panel skip flag.
package platform

import "errors"

var (
	// ErrUnsupported is returned for operations that have no meaning on the
	// current target.
	ErrUnsupported = errors.New("operation not supported on this platform")

	// ErrWindowNotFound is returned when the native main window cannot be
	// located.
	ErrWindowNotFound = errors.New("native main window not found")
)
