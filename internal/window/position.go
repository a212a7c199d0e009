package window

import (
	"fmt"
	"log/slog"
)

// TopCenter returns the top-left position that centers a window of size
// horizontally inside area with its top edge marginTop below the area top.
func TopCenter(area Rect, size Size, marginTop int) Point {
	return Point{
		X: area.X + (area.Width-size.Width)/2,
		Y: area.Y + marginTop,
	}
}

// PositionTopCenter places the window horizontally centered on its monitor,
// marginTop logical pixels below the work-area top.
// Callers must tolerate a mispositioned window when this fails.
func PositionTopCenter(h Handle, marginTop int) error {
	if h == nil {
		return ErrNotFound
	}
	area, err := h.WorkArea()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWorkArea, err)
	}
	if area.Empty() {
		return fmt.Errorf("%w: empty area %dx%d", ErrWorkArea, area.Width, area.Height)
	}
	size, err := h.Size()
	if err != nil {
		return fmt.Errorf("resolve window size: %w", err)
	}

	pos := TopCenter(area, size, marginTop)
	if err := h.SetPosition(pos); err != nil {
		return fmt.Errorf("set window position (%d,%d): %w", pos.X, pos.Y, err)
	}
	slog.Debug("[window] positioned top-center",
		"x", pos.X, "y", pos.Y,
		"width", size.Width, "height", size.Height,
		"areaWidth", area.Width, "marginTop", marginTop)
	return nil
}

// SetHeight resizes the window to width x height and re-centers it with
// marginTop. Only the resize decides the result; a failed re-center after a
// successful resize is logged and swallowed.
func SetHeight(h Handle, width, height, marginTop int) error {
	if h == nil {
		return ErrNotFound
	}
	if err := h.SetSize(Size{Width: width, Height: height}); err != nil {
		return fmt.Errorf("failed to resize window: %w", err)
	}
	if err := PositionTopCenter(h, marginTop); err != nil {
		slog.Warn("[window] failed to reposition window after resize", "error", err, "height", height)
	}
	return nil
}
