package testutil

import (
	"sync"

	"quickpanel/internal/window"
)

// FakeWindow is an in-memory window.Handle for tests.
// Error fields inject failures for the matching operation; a failing
// operation leaves the window state untouched.
type FakeWindow struct {
	mu sync.Mutex

	Visible     bool
	Focused     bool
	Bounds      window.Rect
	AlwaysOnTop bool
	Area        window.Rect

	VisibleErr  error
	ShowErr     error
	HideErr     error
	FocusErr    error
	SizeErr     error
	SetSizeErr  error
	PositionErr error
	TopErr      error
	AreaErr     error

	calls []string
}

// NewFakeWindow returns a visible window of size inside a 1920x1080 area.
func NewFakeWindow(size window.Size) *FakeWindow {
	return &FakeWindow{
		Visible: true,
		Bounds:  window.Rect{Width: size.Width, Height: size.Height},
		Area:    window.Rect{Width: 1920, Height: 1080},
	}
}

func (w *FakeWindow) record(call string) {
	w.calls = append(w.calls, call)
}

// Calls returns the operations invoked so far, in order.
func (w *FakeWindow) Calls() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.calls))
	copy(out, w.calls)
	return out
}

// ResetCalls clears the recorded call list.
func (w *FakeWindow) ResetCalls() {
	w.mu.Lock()
	w.calls = nil
	w.mu.Unlock()
}

// SetVisible changes the visibility as an external actor would.
func (w *FakeWindow) SetVisible(visible bool) {
	w.mu.Lock()
	w.Visible = visible
	w.mu.Unlock()
}

// IsShown reports the current visibility without recording a call.
func (w *FakeWindow) IsShown() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Visible
}

// Rect returns the current window bounds.
func (w *FakeWindow) Rect() window.Rect {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Bounds
}

func (w *FakeWindow) IsVisible() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("is-visible")
	if w.VisibleErr != nil {
		return false, w.VisibleErr
	}
	return w.Visible, nil
}

func (w *FakeWindow) Show() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("show")
	if w.ShowErr != nil {
		return w.ShowErr
	}
	w.Visible = true
	return nil
}

func (w *FakeWindow) Hide() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("hide")
	if w.HideErr != nil {
		return w.HideErr
	}
	w.Visible = false
	w.Focused = false
	return nil
}

func (w *FakeWindow) SetFocus() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("focus")
	if w.FocusErr != nil {
		return w.FocusErr
	}
	w.Focused = true
	return nil
}

func (w *FakeWindow) Size() (window.Size, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("size")
	if w.SizeErr != nil {
		return window.Size{}, w.SizeErr
	}
	return window.Size{Width: w.Bounds.Width, Height: w.Bounds.Height}, nil
}

func (w *FakeWindow) SetSize(size window.Size) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("set-size")
	if w.SetSizeErr != nil {
		return w.SetSizeErr
	}
	w.Bounds.Width = size.Width
	w.Bounds.Height = size.Height
	return nil
}

func (w *FakeWindow) SetPosition(p window.Point) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("set-position")
	if w.PositionErr != nil {
		return w.PositionErr
	}
	w.Bounds.X = p.X
	w.Bounds.Y = p.Y
	return nil
}

func (w *FakeWindow) SetAlwaysOnTop(enabled bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("always-on-top")
	if w.TopErr != nil {
		return w.TopErr
	}
	w.AlwaysOnTop = enabled
	return nil
}

func (w *FakeWindow) WorkArea() (window.Rect, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("work-area")
	if w.AreaErr != nil {
		return window.Rect{}, w.AreaErr
	}
	return w.Area, nil
}
