package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles all platform backends for the current OS.
type Provider struct {
	Finder        WindowFinder
	WindowManager WindowManager
	Screenshotter Screenshotter
	Inputter      Inputter
	Hotkeys       Hotkeys
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("pagecap is not supported on %s/%s", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/desktop for the registration.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
