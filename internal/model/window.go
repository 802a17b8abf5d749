package model

// Window is a snapshot of an on-screen application window.
//
// It is a point-in-time view into OS window state: the window may move,
// resize, or disappear at any moment, so callers re-locate rather than
// cache a Window across long intervals.
type Window struct {
	App    string `yaml:"app,omitempty" json:"app,omitempty"`
	PID    int    `yaml:"pid"           json:"pid"`
	Title  string `yaml:"title"         json:"title"`
	Bounds [4]int `yaml:"bounds"        json:"bounds"` // x, y, w, h in screen points
}

// X returns the window's left edge.
func (w *Window) X() int { return w.Bounds[0] }

// Y returns the window's top edge.
func (w *Window) Y() int { return w.Bounds[1] }

// Width returns the window's width.
func (w *Window) Width() int { return w.Bounds[2] }

// Height returns the window's height.
func (w *Window) Height() int { return w.Bounds[3] }
