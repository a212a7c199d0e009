//go:build windows

package iconvis

// NewPlatformPolicy returns the taskbar policy; app is unused on this target.
func NewPlatformPolicy(_ ActivationSetter, locate WindowLocator) Policy {
	return NewTaskbarPolicy(locate)
}
