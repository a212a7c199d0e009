//go:build !darwin && !windows

package iconvis

// NewPlatformPolicy returns the panel policy; app is unused on this target.
func NewPlatformPolicy(_ ActivationSetter, locate WindowLocator) Policy {
	return NewPanelPolicy(locate)
}
