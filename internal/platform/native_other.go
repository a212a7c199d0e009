//go:build !darwin && !windows && !linux

package platform

// Native is a stub for targets without native window helpers.
type Native struct{}

// New returns the stub.
func New(_ string) (*Native, error) { return &Native{}, nil }

// VisibilitySupported is always false here.
func (n *Native) VisibilitySupported() bool { return false }

// IsVisible is unsupported.
func (n *Native) IsVisible() (bool, error) { return false, ErrUnsupported }

// Focus is unsupported.
func (n *Native) Focus() error { return ErrUnsupported }

// SetSkipTaskbar is unsupported.
func (n *Native) SetSkipTaskbar(bool) error { return ErrUnsupported }

// SetActivationPolicy is unsupported.
func (n *Native) SetActivationPolicy(bool) error { return ErrUnsupported }

// Close does nothing.
func (n *Native) Close() error { return nil }
