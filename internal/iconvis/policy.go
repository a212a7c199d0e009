// Package iconvis maps a "show the app icon" intent onto the one OS facility
// that controls it on the running platform: the dock activation policy, the
// taskbar skip flag, or the panel skip flag. Exactly one Policy is active per
// build; see NewPlatformPolicy.
package iconvis

import (
	"fmt"
	"log/slog"
)

// ActivationPolicy is the dock-capable platform's application mode.
type ActivationPolicy int

const (
	// ActivationRegular shows the dock icon; the app activates normally.
	ActivationRegular ActivationPolicy = iota
	// ActivationAccessory hides the dock icon; the app still receives input.
	ActivationAccessory
)

func (p ActivationPolicy) String() string {
	switch p {
	case ActivationRegular:
		return "regular"
	case ActivationAccessory:
		return "accessory"
	default:
		return fmt.Sprintf("ActivationPolicy(%d)", int(p))
	}
}

// Policy applies a visibility intent. Repeated calls with the same value
// must leave the same observable state as a single call.
type Policy interface {
	Name() string
	Apply(visible bool) error
}

// ActivationSetter changes the application activation policy.
type ActivationSetter interface {
	SetActivationPolicy(policy ActivationPolicy) error
}

// TaskbarWindow is a window whose taskbar/panel entry can be suppressed.
type TaskbarWindow interface {
	SetSkipTaskbar(skip bool) error
}

// WindowLocator returns the main window, or ok=false when it is absent.
type WindowLocator func() (w TaskbarWindow, ok bool)

// DockPolicy controls the dock icon through the activation policy.
type DockPolicy struct {
	app ActivationSetter
}

// NewDockPolicy creates a DockPolicy.
func NewDockPolicy(app ActivationSetter) *DockPolicy {
	return &DockPolicy{app: app}
}

func (p *DockPolicy) Name() string { return "dock" }

// Apply maps visible to ActivationRegular and hidden to ActivationAccessory.
func (p *DockPolicy) Apply(visible bool) error {
	policy := ActivationAccessory
	if visible {
		policy = ActivationRegular
	}
	slog.Info("[icon] setting activation policy", "policy", policy.String(), "visible", visible)
	if p.app == nil {
		return fmt.Errorf("failed to set activation policy: no application handle")
	}
	if err := p.app.SetActivationPolicy(policy); err != nil {
		slog.Error("[icon] failed to set activation policy", "policy", policy.String(), "error", err)
		return fmt.Errorf("failed to set activation policy: %w", err)
	}
	return nil
}

// skipFlagPolicy is shared by the taskbar and panel variants; only the
// surface name differs.
type skipFlagPolicy struct {
	surface string
	locate  WindowLocator
}

func (p *skipFlagPolicy) Name() string { return p.surface }

// Apply sets the skip flag to !visible. A missing window is logged and
// tolerated: the icon cannot be changed without a window, but callers must
// not fail because of it.
func (p *skipFlagPolicy) Apply(visible bool) error {
	var (
		w  TaskbarWindow
		ok bool
	)
	if p.locate != nil {
		w, ok = p.locate()
	}
	if !ok || w == nil {
		slog.Error("[icon] main window not found, icon visibility unchanged", "surface", p.surface)
		return nil
	}
	slog.Info("[icon] setting skip flag", "surface", p.surface, "visible", visible)
	if err := w.SetSkipTaskbar(!visible); err != nil {
		slog.Error("[icon] failed to set skip flag", "surface", p.surface, "error", err)
		return fmt.Errorf("failed to set %s visibility: %w", p.surface, err)
	}
	return nil
}

// TaskbarPolicy controls the taskbar button of the main window.
type TaskbarPolicy struct{ skipFlagPolicy }

// NewTaskbarPolicy creates a TaskbarPolicy.
func NewTaskbarPolicy(locate WindowLocator) *TaskbarPolicy {
	return &TaskbarPolicy{skipFlagPolicy{surface: "taskbar", locate: locate}}
}

// PanelPolicy controls the desktop panel entry of the main window.
type PanelPolicy struct{ skipFlagPolicy }

// NewPanelPolicy creates a PanelPolicy.
func NewPanelPolicy(locate WindowLocator) *PanelPolicy {
	return &PanelPolicy{skipFlagPolicy{surface: "panel", locate: locate}}
}
