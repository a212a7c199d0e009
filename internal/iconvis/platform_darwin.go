//go:build darwin

package iconvis

// NewPlatformPolicy returns the dock policy; locate is unused on this target.
func NewPlatformPolicy(app ActivationSetter, _ WindowLocator) Policy {
	return NewDockPolicy(app)
}
