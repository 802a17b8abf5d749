// Package desktop provides the cross-platform backends for window
// lookup, screen capture, input injection, and global hotkeys.
package desktop

import (
	"github.com/pagecap/pagecap/internal/platform"
)

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		finder := NewFinder()
		return &platform.Provider{
			Finder:        finder,
			WindowManager: NewManager(),
			Screenshotter: NewScreenshotter(),
			Inputter:      NewInputter(),
			Hotkeys:       NewHookKeys(),
		}, nil
	}
}
