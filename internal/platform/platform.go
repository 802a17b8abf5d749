package platform

import (
	"image"

	"github.com/pagecap/pagecap/internal/model"
)

// WindowFinder locates application windows by title.
type WindowFinder interface {
	// FindWindow returns the first visible window whose title contains
	// any of the given titles, tried in order. The second return value
	// is false when no window matches; absence is a normal outcome,
	// not an error.
	FindWindow(titles []string) (*model.Window, bool)

	// ListWindows returns all titled windows currently on screen.
	ListWindows() ([]model.Window, error)
}

// WindowManager manages window focus.
type WindowManager interface {
	// Focus brings the window's owning application to the foreground.
	Focus(w *model.Window) error
}

// Screenshotter captures screen regions.
type Screenshotter interface {
	// CaptureRect grabs the screen rectangle covering bounds.
	CaptureRect(bounds Bounds) (image.Image, error)
}

// Inputter simulates mouse input and reads pointer state.
type Inputter interface {
	// Click issues one synthetic left click at absolute screen coordinates.
	Click(x, y int) error

	// PointerPosition returns the current pointer location in screen coordinates.
	PointerPosition() (x, y int)
}

// Hotkeys registers global keyboard handlers and tracks key state.
type Hotkeys interface {
	// Bind registers a handler fired on every press of key (e.g. "f10").
	// All bindings must be installed before Run is called.
	Bind(key string, fn func())

	// KeyHeld reports whether key is currently held down.
	KeyHeld(key string) bool

	// Run pumps hook events until Close is called. It blocks.
	Run() error

	// Close stops the event pump and removes all bindings.
	Close()
}
