package window_test

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	"quickpanel/internal/testutil"
	"quickpanel/internal/window"
)

func TestTopCenter(t *testing.T) {
	tests := []struct {
		name   string
		area   window.Rect
		size   window.Size
		margin int
		want   window.Point
	}{
		{
			name:   "primary 1920x1080",
			area:   window.Rect{Width: 1920, Height: 1080},
			size:   window.Size{Width: 700, Height: 400},
			margin: 54,
			want:   window.Point{X: 610, Y: 54},
		},
		{
			name:   "secondary monitor offset",
			area:   window.Rect{X: 1920, Y: 25, Width: 2560, Height: 1415},
			size:   window.Size{Width: 700, Height: 500},
			margin: 54,
			want:   window.Point{X: 1920 + 930, Y: 79},
		},
		{
			name:   "window wider than area",
			area:   window.Rect{Width: 600, Height: 800},
			size:   window.Size{Width: 700, Height: 300},
			margin: 0,
			want:   window.Point{X: -50, Y: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := window.TopCenter(tt.area, tt.size, tt.margin); got != tt.want {
				t.Fatalf("TopCenter() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPositionTopCenterUsesWorkArea(t *testing.T) {
	w := testutil.NewFakeWindow(window.Size{Width: 700, Height: 300})
	w.Area = window.Rect{X: 0, Y: 30, Width: 1440, Height: 870}

	if err := window.PositionTopCenter(w, 54); err != nil {
		t.Fatalf("PositionTopCenter() error = %v", err)
	}
	got := w.Rect()
	if got.X != 370 || got.Y != 84 {
		t.Fatalf("position = (%d,%d), want (370,84)", got.X, got.Y)
	}
}

func TestPositionTopCenterFailures(t *testing.T) {
	hostErr := errors.New("host rejected")
	tests := []struct {
		name      string
		mutate    func(*testutil.FakeWindow)
		wantIs    error
		wantSub   string
		nilHandle bool
	}{
		{name: "nil handle", nilHandle: true, wantIs: window.ErrNotFound},
		{
			name:   "work area error",
			mutate: func(w *testutil.FakeWindow) { w.AreaErr = hostErr },
			wantIs: window.ErrWorkArea,
		},
		{
			name:   "empty work area",
			mutate: func(w *testutil.FakeWindow) { w.Area = window.Rect{} },
			wantIs: window.ErrWorkArea,
		},
		{
			name:    "size error",
			mutate:  func(w *testutil.FakeWindow) { w.SizeErr = hostErr },
			wantIs:  hostErr,
			wantSub: "resolve window size",
		},
		{
			name:    "position rejected",
			mutate:  func(w *testutil.FakeWindow) { w.PositionErr = hostErr },
			wantIs:  hostErr,
			wantSub: "set window position",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.nilHandle {
				err = window.PositionTopCenter(nil, 54)
			} else {
				w := testutil.NewFakeWindow(window.Size{Width: 700, Height: 300})
				tt.mutate(w)
				err = window.PositionTopCenter(w, 54)
			}
			if err == nil {
				t.Fatal("PositionTopCenter() expected error")
			}
			if !errors.Is(err, tt.wantIs) {
				t.Fatalf("error = %v, want errors.Is %v", err, tt.wantIs)
			}
			if tt.wantSub != "" && !strings.Contains(err.Error(), tt.wantSub) {
				t.Fatalf("error = %q, want substring %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestSetHeightResizesAndCenters(t *testing.T) {
	w := testutil.NewFakeWindow(window.Size{Width: 320, Height: 200})

	if err := window.SetHeight(w, window.DefaultWidth, 500, window.DefaultTopMargin); err != nil {
		t.Fatalf("SetHeight() error = %v", err)
	}

	got := w.Rect()
	if got.Height != 500 || got.Width != window.DefaultWidth {
		t.Fatalf("size = %dx%d, want %dx500", got.Width, got.Height, window.DefaultWidth)
	}
	if center := got.X + got.Width/2; center != w.Area.Width/2 {
		t.Fatalf("horizontal center = %d, want %d", center, w.Area.Width/2)
	}
	if got.Y != window.DefaultTopMargin {
		t.Fatalf("top = %d, want %d", got.Y, window.DefaultTopMargin)
	}
}

func TestSetHeightResizeFailureIsReturned(t *testing.T) {
	w := testutil.NewFakeWindow(window.Size{Width: 700, Height: 200})
	w.SetSizeErr = errors.New("resize refused")

	err := window.SetHeight(w, window.DefaultWidth, 500, window.DefaultTopMargin)
	if err == nil {
		t.Fatal("SetHeight() expected error")
	}
	if !strings.HasPrefix(err.Error(), "failed to resize window: ") {
		t.Fatalf("error = %q, want resize prefix", err.Error())
	}
	for _, call := range w.Calls() {
		if call == "set-position" {
			t.Fatal("SetHeight() must not reposition after a failed resize")
		}
	}
}

func TestSetHeightRepositionFailureIsLoggedOnly(t *testing.T) {
	logBuf := testutil.CaptureLogBuffer(t, slog.LevelWarn)
	w := testutil.NewFakeWindow(window.Size{Width: 700, Height: 200})
	w.AreaErr = errors.New("no monitor")

	if err := window.SetHeight(w, window.DefaultWidth, 420, window.DefaultTopMargin); err != nil {
		t.Fatalf("SetHeight() error = %v, want nil", err)
	}
	if got := w.Rect().Height; got != 420 {
		t.Fatalf("height = %d, want 420", got)
	}
	if !strings.Contains(logBuf.String(), "failed to reposition window after resize") {
		t.Fatalf("expected reposition warning, got log: %s", logBuf.String())
	}
}
